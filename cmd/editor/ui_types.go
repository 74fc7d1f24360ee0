package main

import (
	"fmt"
	"image"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/pixel2d/editor"
	"github.com/milk9111/pixel2d/tileset"
)

// ToolBar contains the radio-group state for the brush buttons and the
// overlay toggles.
type ToolBar struct {
	group    *widget.RadioGroup
	buttons  []*widget.Button
	gridBtn  *widget.Button
	boxesBtn *widget.Button
}

// SetTool activates the button of mode. Button indices follow editor.Modes.
func (tb *ToolBar) SetTool(mode editor.BrushMode) {
	idx := int(mode)
	if tb == nil || tb.group == nil || idx < 0 || idx >= len(tb.buttons) {
		return
	}
	if tb.group.Active() == tb.buttons[idx] {
		return
	}
	tb.group.SetActive(tb.buttons[idx])
}

func (tb *ToolBar) SetToolEnabled(mode editor.BrushMode, enabled bool) {
	idx := int(mode)
	if tb == nil || idx < 0 || idx >= len(tb.buttons) {
		return
	}
	tb.buttons[idx].GetWidget().Disabled = !enabled
}

func (tb *ToolBar) SetGridShown(shown bool) {
	if tb != nil {
		setToggleLabel(tb.gridBtn, "Grid", shown)
	}
}

func (tb *ToolBar) SetBoxesShown(shown bool) {
	if tb != nil {
		setToggleLabel(tb.boxesBtn, "Boxes", shown)
	}
}

func setToggleLabel(btn *widget.Button, name string, on bool) {
	if btn == nil {
		return
	}
	label := name + ": Off"
	if on {
		label = name + ": On"
	}
	if text := btn.Text(); text != nil {
		text.Label = label
	}
}

// PaletteEntry is one selectable tile or sprite in the palette list.
type PaletteEntry struct {
	Tileset string
	Sprite  bool
	ID      int
	Name    string
}

func (p PaletteEntry) Label() string {
	kind := "tile"
	if p.Sprite {
		kind = "sprite"
	}
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("#%d", p.ID)
	}
	return fmt.Sprintf("%s / %s (%s)", p.Tileset, name, kind)
}

// paletteEntries lists every tile, then every sprite, of each tileset in name order.
func paletteEntries(c *tileset.Catalog) []any {
	var entries []any
	for _, name := range c.Names() {
		ts := c.Tileset(name)
		for _, t := range ts.Tiles {
			entries = append(entries, PaletteEntry{Tileset: name, ID: t.ID, Name: t.Name})
		}
		for _, e := range ts.Entities {
			entries = append(entries, PaletteEntry{Tileset: name, Sprite: true, ID: e.ID, Name: e.Name})
		}
	}
	return entries
}

// EditorUI is the composed widget tree plus the stateful pieces the game updates.
type EditorUI struct {
	UI          *ebitenui.UI
	ToolBar     *ToolBar
	Palette     *widget.List
	Status      *StatusBar
	Canvas      *widget.Container
	ContextMenu *contextMenu
	NewMap      *newMapDialog
}

// ModalOpen reports whether an overlay currently owns the input.
func (u *EditorUI) ModalOpen() bool {
	return u.ContextMenu.Visible() || u.NewMap.Visible()
}

// UICallbacks connect widgets to the editor.
type UICallbacks struct {
	OnModeSelected    func(mode editor.BrushMode)
	OnPaletteSelected func(entry PaletteEntry)
	OnToggleGrid      func()
	OnToggleBoxes     func()
	OnNewMapRequested func()
	OnNewMap          func(width, height int) error
	OnDeleteTopSprite func(cell image.Point)
}
