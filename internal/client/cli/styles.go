package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Status badges
	CurrentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DueSoonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	OverdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	PaidStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	BannerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// StyleForStatus returns the badge style for a card status.
func StyleForStatus(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusPaid:
		return PaidStyle
	case models.StatusOverdue:
		return OverdueStyle
	case models.StatusDueSoon:
		return DueSoonStyle
	default:
		return CurrentStyle
	}
}
