package ui

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var Theme = selectTheme()

func selectTheme() ColorTheme {
	if detectLightTerminal() {
		return NewBreakersTheme()
	}
	return NewMarianaTheme()
}

// detectLightTerminal detects if terminal has a light background via COLORFGBG.
// iTerm2 and other terminals set this as "foreground;background".
// Background 7 or 15 indicates light, 0-6 and 8 indicate dark.
func detectLightTerminal() bool {
	colorfgbg := os.Getenv("COLORFGBG")
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	if len(parts) != 2 {
		return false
	}
	bg := parts[1]
	return bg == "7" || bg == "15"
}

type ColorTheme struct {
	Foreground Color
	Background Color
	Caption    Color
	Border     Color
	Track      Color
	Handle     Color
	Checked    Color
	Entry      Color
	Focus      Color
}

// Base is the style every frame is cleared with.
func (t ColorTheme) Base() Style {
	return Style{FG: t.Foreground, BG: t.Background}
}

func NewBreakersTheme() ColorTheme {
	return ColorTheme{
		Foreground: tcell.GetColor("#333333"), // grey3
		Background: tcell.GetColor("#fbffff"), // white5
		Caption:    tcell.GetColor("#dae0e2"), // white3
		Border:     tcell.GetColor("#d9e0e4"), // white2
		Track:      tcell.GetColor("#d9e0e4"),
		Handle:     tcell.GetColor("#89bd82"), // green
		Checked:    tcell.GetColor("#89bd82"),
		Entry:      tcell.GetColor("#dae0e2"),
		Focus:      tcell.GetColor("#5fb3b3"), // blue2
	}
}

func NewMarianaTheme() ColorTheme {
	return ColorTheme{
		Foreground: tcell.GetColor("#d8dee9"), // white3
		Background: tcell.GetColor("#303841"), // blue3
		Caption:    tcell.GetColor("#4e5a65"),
		Border:     tcell.GetColor("#65737e"), // blue4
		Track:      tcell.GetColor("#4e5a65"),
		Handle:     tcell.GetColor("#99c794"), // green
		Checked:    tcell.GetColor("#99c794"),
		Entry:      tcell.GetColor("#3b4550"),
		Focus:      tcell.GetColor("#fac863"), // orange
	}
}
