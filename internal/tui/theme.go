package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{
	"cargosync",
	"base",
	"base16",
	"catppuccin",
	"charm",
	"dracula",
}

// currentTheme is nil until SetTheme picks a known theme.
var currentTheme *huh.Theme

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme returns the huh.Theme for the given theme name, or nil.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "cargosync":
		return cargosyncTheme()
	case "base":
		return huh.ThemeBase()
	case "base16":
		return huh.ThemeBase16()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	default:
		return nil
	}
}

// SetTheme sets the prompt theme by name. Unknown or empty names reset to
// the default theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return cargosyncTheme()
	}
	return currentTheme
}

// cargosyncTheme is the base theme with rust-orange accents.
func cargosyncTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.AdaptiveColor{Light: "#B7410E", Dark: "#F74C00"}
	muted := lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}

	t.Focused.Base = t.Focused.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent)
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(accent).Bold(true).Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
