package main

import (

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addPaletteSection(parent *widget.Container, fontFace *text.Face, entries []any, onSelected func(entry PaletteEntry)) *widget.List {
	paletteLabel := widget.NewLabel(
		widget.LabelOpts.Text("Palette", fontFace, &widget.LabelColor{Idle: panelInkColor, Disabled: inkMutedColor}),
	)
	parent.AddChild(paletteLabel)

	palette := widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(PaletteEntry); ok {
				return entry.Label()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if onSelected == nil {
				return
			}
			if entry, ok := args.Entry.(PaletteEntry); ok {
				onSelected(entry)
			}
		}),
	)
	palette.GetWidget().MinWidth = leftPanelWidth - 16
	palette.GetWidget().MinHeight = 480
	parent.AddChild(palette)
	return palette
}
