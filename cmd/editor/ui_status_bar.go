package main

import (
	"fmt"
	"image"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// StatusBar shows the 1-based cursor cell and the most recent message.
type StatusBar struct {
	Container *widget.Container
	label     *widget.Label
	cursor    image.Point
	message   string
}

func buildStatusBar(fontFace *text.Face) *StatusBar {
	sb := &StatusBar{cursor: image.Pt(1, 1)}
	sb.Container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(200, statusBarHeight),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Left: 8, Right: 8, Bottom: 4}),
			),
		),
	)
	sb.label = widget.NewLabel(
		widget.LabelOpts.Text(sb.text(), fontFace, &widget.LabelColor{Idle: panelInkColor, Disabled: inkMutedColor}),
	)
	sb.Container.AddChild(sb.label)
	return sb
}

func (sb *StatusBar) SetCursor(p image.Point) {
	sb.cursor = p
	sb.refresh()
}

func (sb *StatusBar) SetMessage(format string, args ...any) {
	sb.message = fmt.Sprintf(format, args...)
	sb.refresh()
}

func (sb *StatusBar) text() string {
	s := fmt.Sprintf("Cell %d, %d", sb.cursor.X, sb.cursor.Y)
	if sb.message != "" {
		s += "    " + sb.message
	}
	return s
}

func (sb *StatusBar) refresh() {
	if sb.label != nil {
		sb.label.Label = sb.text()
	}
}
