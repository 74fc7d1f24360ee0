package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
)

// Editor palette. The selection blue and the greys follow the canvas cursor
// and scroll bar colours so the chrome and the map read as one surface.
var (
	panelColor   = color.RGBA{0x2b, 0x2b, 0x2b, 0xff}
	toolbarColor = color.RGBA{0xef, 0xef, 0xef, 0xff}
	overlayColor = color.RGBA{0, 0, 0, 0xa0}
	dialogColor  = colornames.Gainsboro

	inkColor      = color.Black
	inkMutedColor = color.Gray{Y: 0x80}
	panelInkColor = colornames.White
	errorInkColor = colornames.Firebrick

	selectionColor = color.RGBA{0x00, 0x77, 0xff, 0xff}
	selectingColor = color.RGBA{0xcc, 0xe4, 0xff, 0xff}
	selectedColor  = color.RGBA{0xa8, 0xd0, 0xff, 0xff}
	listBackground = colornames.Whitesmoke

	buttonIdle     = color.RGBA{0xc8, 0xc8, 0xc8, 0xff}
	buttonHover    = color.RGBA{0xdc, 0xdc, 0xdc, 0xff}
	buttonPressed  = color.RGBA{0x77, 0x77, 0x77, 0xff}
	buttonDisabled = color.RGBA{0x55, 0x55, 0x55, 0xff}

	inputIdle     = colornames.White
	inputDisabled = colornames.Lightgray
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	list := &widget.ListParams{
		EntryFace: fontFace,
		EntryColor: &widget.ListEntryColor{
			Unselected:          inkColor,
			Selected:            selectionColor,
			DisabledUnselected:  inkMutedColor,
			DisabledSelected:    inkMutedColor,
			SelectingBackground: selectingColor,
			SelectedBackground:  selectedColor,
		},
		ScrollContainerImage: &widget.ScrollContainerImage{
			Idle: solidNineSlice(listBackground),
			Mask: solidNineSlice(listBackground),
		},
	}

	buttons := &widget.ButtonParams{
		Image: &widget.ButtonImage{
			Idle:     solidNineSlice(buttonIdle),
			Hover:    solidNineSlice(buttonHover),
			Pressed:  solidNineSlice(buttonPressed),
			Disabled: solidNineSlice(buttonDisabled),
		},
		TextFace:  fontFace,
		TextColor: &widget.ButtonTextColor{Idle: inkColor, Disabled: inkMutedColor},
	}

	return &widget.Theme{
		ListTheme:   list,
		PanelTheme:  &widget.PanelParams{BackgroundImage: solidNineSlice(panelColor)},
		ButtonTheme: buttons,
	}
}
