package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pixel2d/editor"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	leftPanelWidth  = 260
	toolbarHeight   = 48
	statusBarHeight = 28
)

// BuildEditorUI lays out the toolbar on top, the palette on the left, the
// status bar at the bottom and the map canvas in the remaining space.
func BuildEditorUI(entries []any, cb UICallbacks, initialMode editor.BrushMode) *EditorUI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, cb, initialMode)
	leftPanel, palette := buildLeftPanelUI(&fontFace, entries, cb)
	status := buildStatusBar(&fontFace)
	canvas := buildCanvasPanel()

	body := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{false, true}, []bool{true}),
		)),
	)
	body.AddChild(leftPanel)
	body.AddChild(canvas)

	frame := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				StretchHorizontal: true,
				StretchVertical:   true,
			}),
		),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, true, false}),
		)),
	)
	frame.AddChild(toolbarContainer)
	frame.AddChild(body)
	frame.AddChild(status.Container)

	menu := newContextMenu(ui.PrimaryTheme, &fontFace, cb.OnDeleteTopSprite)
	newMap := newNewMapDialog(ui.PrimaryTheme, &fontFace, cb.OnNewMap)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(frame)
	root.AddChild(menu.Overlay)
	root.AddChild(newMap.Overlay)
	ui.Container = root

	return &EditorUI{
		UI:          ui,
		ToolBar:     toolBar,
		Palette:     palette,
		Status:      status,
		Canvas:      canvas,
		ContextMenu: menu,
		NewMap:      newMap,
	}
}

func buildCanvasPanel() *widget.Container {
	// The map is drawn by Ebiten underneath the UI; this container only
	// reserves the canvas area and reports its rectangle.
	return widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 240),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
}
