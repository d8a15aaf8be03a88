package report

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor = lipgloss.Color("#A78BFA")
	SuccessColor = lipgloss.Color("#10B981")
	ErrorColor   = lipgloss.Color("#F87171")
	MutedColor   = lipgloss.Color("#9CA3AF")
	TextColor    = lipgloss.Color("#F9FAFB")

	Title   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)
	Text    = lipgloss.NewStyle().Foreground(TextColor)
	Success = lipgloss.NewStyle().Foreground(SuccessColor)
	Failure = lipgloss.NewStyle().Foreground(ErrorColor)
	Tag     = lipgloss.NewStyle().Foreground(PrimaryColor)
)
