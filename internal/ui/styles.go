package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the dropdown
type Styles struct {
	Title       lipgloss.Style
	Input       lipgloss.Style
	Item        lipgloss.Style
	SelectedBg  lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Empty       lipgloss.Style
	Help        lipgloss.Style
	Frame       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Input: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Item:  lipgloss.NewStyle(),
		SelectedBg: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Bold(true),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Empty:       lipgloss.NewStyle().Faint(true).Italic(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
	}
}
