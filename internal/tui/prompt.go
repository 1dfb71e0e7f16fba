package tui

import (
	"github.com/charmbracelet/huh"
)

// ConfirmFn is the confirmation prompt used by commands; tests replace it.
var ConfirmFn = Confirm

// Confirm shows a yes/no prompt and returns the answer.
func Confirm(title, description string) (bool, error) {
	var confirmed bool

	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)
	if description != "" {
		field = field.Description(description)
	}

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(currentThemeOrDefault())
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
