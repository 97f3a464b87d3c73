// Package ui draws the raylib heads-up display and the live tuning panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// Palette is the three colors a theme is built from.
type Palette struct {
	Background, Foreground, Accent [3]uint8
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return ThemeFor(Palette{
		Background: [3]uint8{15, 23, 42},
		Foreground: [3]uint8{226, 232, 240},
		Accent:     [3]uint8{139, 92, 246},
	})
}

// ThemeFor derives panel styling from a palette.
func ThemeFor(p Palette) Theme {
	bg := rgba(p.Background, 230)
	fg := rgba(p.Foreground, 255)
	return Theme{
		PanelBg:        bg,
		PanelBorder:    rgba(p.Accent, 160),
		SectionHeader:  rgba(p.Accent, 255),
		LabelColor:     rgba(p.Foreground, 180),
		ValueColor:     fg,
		BarBg:          rgba(p.Foreground, 40),
		BarFill:        rgba(p.Accent, 220),
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     110,
		BarHeight:      10,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}

func rgba(c [3]uint8, a uint8) rl.Color {
	return rl.Color{R: c[0], G: c[1], B: c[2], A: a}
}
