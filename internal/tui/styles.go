package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vacmar/portfolio/internal/roadmap"
)

var (
	colorProject  = lipgloss.Color(roadmap.ProjectAccent)
	colorLearning = lipgloss.Color(roadmap.LearningAccent)
	colorMuted    = lipgloss.Color("#636363")
	colorText     = lipgloss.Color("#EEEEEE")
	colorSurface  = lipgloss.Color("#1E1E2E")
)

const selectionIndicator = "▎"

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorLearning).
			Bold(true)

	styleIntro = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	styleTab = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	styleTabActive = styleTab.
			Background(colorLearning).
			Bold(true)

	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)

	styleSelected = lipgloss.NewStyle().
			Background(colorSurface).
			Bold(true)

	styleMap = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	styleSection = lipgloss.NewStyle().
			Foreground(colorProject).
			Bold(true).
			MarginTop(1)

	styleChip = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface).
			Padding(0, 1)
)

// statusStyle colours text by node status.
func statusStyle(s roadmap.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(roadmap.StatusColor(s)))
}
