package windows

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CustomTheme is the editor theme: material green accents, matching the
// bar colour of the charts.
type CustomTheme struct{}

var _ fyne.Theme = (*CustomTheme)(nil)

var (
	green      = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	lightGreen = color.NRGBA{R: 0x81, G: 0xc7, B: 0x84, A: 0xff}
	darkGreen  = color.NRGBA{R: 0x38, G: 0x8e, B: 0x3c, A: 0xff}
)

func (m CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameButton:
		return green
	case theme.ColorNameHover:
		return lightGreen
	case theme.ColorNameFocus:
		return darkGreen
	}
	if variant == theme.VariantLight {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
		case theme.ColorNameHeaderBackground:
			return color.NRGBA{R: 0xe8, G: 0xf5, B: 0xe9, A: 0xff}
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0xc8, G: 0xe6, B: 0xc9, A: 0xff}
		}
	} else {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
		case theme.ColorNameHeaderBackground:
			return color.NRGBA{R: 0x1b, G: 0x3a, B: 0x1d, A: 0xff}
		case theme.ColorNameSelection:
			return darkGreen
		}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameScrollBar:
		return 12
	}
	return theme.DefaultTheme().Size(name)
}
