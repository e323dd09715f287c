package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	HiddenFg    tcell.Color
	MetaFg      tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ErrorFg     tcell.Color
	FlashBg     tcell.Color
	FlashFg     tcell.Color
}

// LightTheme keeps the terminal's own colors and adds accents that read
// well on a light background.
func LightTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.Color252,
		HeaderFg:    tcell.ColorBlack,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color25,
		SymlinkFg:   tcell.Color30,
		FileFg:      tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		MetaFg:      tcell.Color244,
		FooterBg:    tcell.Color252,
		FooterFg:    tcell.ColorBlack,
		ErrorFg:     tcell.Color160,
		FlashBg:     tcell.ColorGreen,
		FlashFg:     tcell.ColorBlack,
	}
}

// DarkTheme paints its own dark background.
func DarkTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.Color234,
		Foreground:  tcell.Color252,
		HeaderBg:    tcell.Color237,
		HeaderFg:    tcell.Color255,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color75,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.Color252,
		HiddenFg:    tcell.Color242,
		MetaFg:      tcell.Color245,
		FooterBg:    tcell.Color237,
		FooterFg:    tcell.Color255,
		ErrorFg:     tcell.Color203,
		FlashBg:     tcell.ColorGreen,
		FlashFg:     tcell.ColorBlack,
	}
}

// ThemeFor picks the dark or light theme.
func ThemeFor(dark bool) ColorTheme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}
