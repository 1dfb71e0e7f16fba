package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCargosyncTheme(t *testing.T) {
	theme := cargosyncTheme()
	if theme == nil {
		t.Fatal("cargosyncTheme() returned nil")
	}

	if !theme.Focused.Title.GetBold() {
		t.Error("Focused.Title should be bold")
	}
	if theme.Focused.Base.GetBorderStyle() != lipgloss.RoundedBorder() {
		t.Error("Focused.Base should have rounded border")
	}
	_, right, _, left := theme.Focused.FocusedButton.GetPadding()
	if left != 1 || right != 1 {
		t.Errorf("FocusedButton padding = %d/%d, want 1/1", left, right)
	}
	if theme.Blurred.Base.GetBorderStyle() != lipgloss.HiddenBorder() {
		t.Error("Blurred.Base should hide its border")
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ValidThemes {
		t.Run(name, func(t *testing.T) {
			if !IsValidTheme(name) {
				t.Errorf("IsValidTheme(%q) = false", name)
			}
			if GetTheme(name) == nil {
				t.Errorf("GetTheme(%q) returned nil", name)
			}
		})
	}

	if IsValidTheme("solarized") {
		t.Error("unexpected valid theme")
	}
	if GetTheme("solarized") != nil {
		t.Error("expected nil for unknown theme")
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("") })

	SetTheme("dracula")
	if currentTheme == nil {
		t.Fatal("expected theme to be set")
	}

	SetTheme("unknown")
	if currentTheme != nil {
		t.Error("unknown theme should reset to default")
	}
	if currentThemeOrDefault() == nil {
		t.Error("default theme should never be nil")
	}
}

func TestIsCI(t *testing.T) {
	for _, env := range ciEnvs {
		t.Setenv(env, "")
	}
	if IsCI() {
		t.Fatal("expected no CI with all variables empty")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !IsCI() {
		t.Error("expected CI to be detected")
	}
	if IsInteractive() {
		t.Error("CI environments are never interactive")
	}
}
