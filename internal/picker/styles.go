package picker

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Theme colors
	primaryColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	successColor = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#FE5F86", Dark: "#FE5F86"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

// GetTheme returns the huh theme for the builtin picker
func GetTheme() *huh.Theme {
	t := huh.ThemeCharm()
	t.Focused.Title = t.Focused.Title.Foreground(primaryColor)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(primaryColor)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(successColor)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(successColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
	t.Blurred.Title = t.Blurred.Title.Foreground(mutedColor)
	return t
}

// GetAccessibleTheme returns an accessible theme for screen readers
func GetAccessibleTheme() *huh.Theme {
	return huh.ThemeBase()
}
