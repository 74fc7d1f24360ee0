package main

import (

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pixel2d/editor"
)

func buildToolBar(theme *widget.Theme, fontFace *text.Face, cb UICallbacks, initialMode editor.BrushMode) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     inkColor,
		Hover:    inkColor,
		Pressed:  selectionColor,
		Disabled: inkMutedColor,
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, toolbarHeight),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 8, Right: 8}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(toolbarColor)),
	)

	var toolButtons []*widget.Button
	for _, mode := range editor.Modes {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(mode.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(64, 40),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}

	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if cb.OnModeSelected == nil {
				return
			}
			for idx, b := range toolButtons {
				if args.Active == b {
					cb.OnModeSelected(editor.Modes[idx])
					return
				}
			}
		}),
	)

	tb := &ToolBar{group: group, buttons: toolButtons}

	tb.gridBtn = widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Grid: On", fontFace, buttonTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(88, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if cb.OnToggleGrid != nil {
				cb.OnToggleGrid()
			}
		}),
	)
	tb.boxesBtn = widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Boxes: Off", fontFace, buttonTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if cb.OnToggleBoxes != nil {
				cb.OnToggleBoxes()
			}
		}),
	)
	newBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("New map", fontFace, buttonTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(88, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if cb.OnNewMapRequested != nil {
				cb.OnNewMapRequested()
			}
		}),
	)
	toolbar.AddChild(tb.gridBtn)
	toolbar.AddChild(tb.boxesBtn)
	toolbar.AddChild(newBtn)

	tb.SetTool(initialMode)
	return toolbar, tb
}
