package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/niyontwali/personal-job-at/pkg/domain"
)

var (
	// Base styles — neutral slate palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60a5fa")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	// Offline banner
	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a22")).
			Background(lipgloss.Color("#fbbf24")).
			Bold(true)

	// Status badge colors — matches the board's badge palette
	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusApplied:   lipgloss.Color("#60a5fa"),
		domain.StatusInReview:  lipgloss.Color("#fbbf24"),
		domain.StatusInterview: lipgloss.Color("#c084e0"),
		domain.StatusOffer:     lipgloss.Color("#4ade80"),
		domain.StatusRejected:  lipgloss.Color("#f87171"),
		domain.StatusWithdrawn: lipgloss.Color("#8890a0"),
		domain.StatusClosed:    lipgloss.Color("#606878"),
	}
)

// StatusStyle returns a bold style colored for the given status.
func StatusStyle(s domain.Status) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// StatusBadge returns a short colored badge string, e.g. "[In Review]".
func StatusBadge(s domain.Status) string {
	return StatusStyle(s).Render("[" + s.Label() + "]")
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
