package tui

import "github.com/charmbracelet/lipgloss"

// Palette: lamplight on old paper.
var (
	ColorPrimary   = lipgloss.Color("#d4a373") // Amber
	ColorSecondary = lipgloss.Color("#8fb996") // Sage
	ColorMuted     = lipgloss.Color("#8d8d8d") // Gray
	ColorWarning   = lipgloss.Color("#e9c46a") // Gold
	ColorError     = lipgloss.Color("#e76f51") // Terracotta
	ColorInfo      = lipgloss.Color("#a8dadc") // Pale blue
	ColorSuccess   = lipgloss.Color("#90be6d") // Green
	ColorInk       = lipgloss.Color("#f1e9da") // Cream
)

// Text styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	// ModelStyle shows model and adapter names.
	ModelStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	CostStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// StepStyle names the current questionnaire step.
	StepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// ItemTitleStyle is a book or film title on a card.
	ItemTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInk)

	// TagStyle renders a genre tag.
	TagStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)

	// ReasonStyle renders the "why this fits" line.
	ReasonStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Italic(true)
)

// Box styles.
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	HighlightBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)

	// CardStyle frames one recommendation.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorPrimary).
			PaddingLeft(2).
			MarginBottom(1)

	// NoticeStyle is the blocking message box.
	NoticeStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorWarning).
			Padding(1, 3)
)
