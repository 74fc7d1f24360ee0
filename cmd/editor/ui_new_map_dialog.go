package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

type newMapDialog struct {
	Overlay *widget.Container
	width   *widget.TextInput
	height  *widget.TextInput
	errText *widget.Label
	onNew   func(width, height int) error
}

func newNewMapDialog(theme *widget.Theme, fontFace *text.Face, onNew func(width, height int) error) *newMapDialog {
	d := &newMapDialog{onNew: onNew}

	d.Overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(overlayColor)),
	)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 160),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(dialogColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Left: 8, Right: 8, Bottom: 8}),
			),
		),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	labelColor := &widget.LabelColor{Idle: inkColor, Disabled: inkMutedColor}
	title := widget.NewLabel(widget.LabelOpts.Text("New map (width x height in cells)", fontFace, labelColor))
	d.width = newSizeInput(fontFace, d.submit)
	d.height = newSizeInput(fontFace, d.submit)
	d.errText = widget.NewLabel(widget.LabelOpts.Text("", fontFace, &widget.LabelColor{Idle: errorInkColor}))

	sizeRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	sizeRow.AddChild(d.width)
	sizeRow.AddChild(widget.NewLabel(widget.LabelOpts.Text("x", fontFace, labelColor)))
	sizeRow.AddChild(d.height)

	buttonsRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	okBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Create", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			d.submit()
		}),
	)
	cancelBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Cancel", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			d.Close()
		}),
	)
	buttonsRow.AddChild(okBtn)
	buttonsRow.AddChild(cancelBtn)

	dialog.AddChild(title)
	dialog.AddChild(sizeRow)
	dialog.AddChild(d.errText)
	dialog.AddChild(buttonsRow)
	d.Overlay.AddChild(dialog)
	return d
}

func newSizeInput(fontFace *text.Face, submit func()) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(120, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(inputIdle),
			Disabled: solidNineSlice(inputDisabled),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     inkColor,
			Disabled: inkMutedColor,
			Caret:    inkColor,
		}),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			submit()
		}),
	)
}

// parseMapSize parses the width and height fields of the dialog.
func parseMapSize(w, h string) (int, int, error) {
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("width must be a positive number")
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("height must be a positive number")
	}
	return width, height, nil
}

func (d *newMapDialog) submit() {
	width, height, err := parseMapSize(d.width.GetText(), d.height.GetText())
	if err == nil && d.onNew != nil {
		err = d.onNew(width, height)
	}
	if err != nil {
		d.errText.Label = err.Error()
		return
	}
	d.Close()
}

// Open shows the dialog prefilled with the current map size.
func (d *newMapDialog) Open(width, height int) {
	d.width.SetText(strconv.Itoa(width))
	d.height.SetText(strconv.Itoa(height))
	d.errText.Label = ""
	d.width.Focus(true)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Show
}

func (d *newMapDialog) Close() {
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide
}

func (d *newMapDialog) Visible() bool {
	return d != nil && d.Overlay.GetWidget().Visibility == widget.Visibility_Show
}
