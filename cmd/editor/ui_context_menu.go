package main

import (
	"fmt"
	"image"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pixel2d/editor"
)

// contextMenu lists the sprites under a right click and offers removal of
// the top sprite of the clicked cell.
type contextMenu struct {
	Overlay  *widget.Container
	title    *widget.Label
	items    *widget.Container
	fontFace *text.Face
	cell     image.Point
	onDelete func(cell image.Point)
}

func newContextMenu(theme *widget.Theme, fontFace *text.Face, onDelete func(cell image.Point)) *contextMenu {
	m := &contextMenu{fontFace: fontFace, onDelete: onDelete}

	m.Overlay = widget.NewContainer(
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
	m.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	menu := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 120),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(dialogColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Left: 8, Right: 8, Bottom: 8}),
			),
		),
	)
	menu.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	m.title = widget.NewLabel(
		widget.LabelOpts.Text("Sprites", fontFace, &widget.LabelColor{Idle: inkColor, Disabled: inkMutedColor}),
	)
	m.items = widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(2),
			),
		),
	)

	buttonsRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	deleteBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Delete top", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if m.onDelete != nil {
				m.onDelete(m.cell)
			}
			m.Close()
		}),
	)
	closeBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Close", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			m.Close()
		}),
	)
	buttonsRow.AddChild(deleteBtn)
	buttonsRow.AddChild(closeBtn)

	menu.AddChild(m.title)
	menu.AddChild(m.items)
	menu.AddChild(buttonsRow)
	m.Overlay.AddChild(menu)
	return m
}

// Open shows the sprites under the pointer, top first. cell is the 0-based
// cell the delete action applies to.
func (m *contextMenu) Open(cell image.Point, sprites []*editor.MapSprite) {
	m.cell = cell
	m.title.Label = fmt.Sprintf("Sprites at %d, %d", cell.X+1, cell.Y+1)
	m.items.RemoveChildren()
	if len(sprites) == 0 {
		m.items.AddChild(m.itemLabel("(none)"))
	}
	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]
		m.items.AddChild(m.itemLabel(fmt.Sprintf("%s / %s at %d, %d", s.Tileset.Name, s.Entity.Name, s.Cell.X+1, s.Cell.Y+1)))
	}
	m.Overlay.GetWidget().Visibility = widget.Visibility_Show
	m.Overlay.RequestRelayout()
}

func (m *contextMenu) itemLabel(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, m.fontFace, &widget.LabelColor{Idle: inkColor, Disabled: inkMutedColor}),
	)
}

func (m *contextMenu) Close() {
	m.Overlay.GetWidget().Visibility = widget.Visibility_Hide
}

func (m *contextMenu) Visible() bool {
	return m != nil && m.Overlay.GetWidget().Visibility == widget.Visibility_Show
}
