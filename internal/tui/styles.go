package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#04B575")
	colorMuted  = lipgloss.Color("#626262")
	colorText   = lipgloss.Color("#FAFAFA")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorGold   = lipgloss.Color("#FFD700")
	colorSand   = lipgloss.Color("#FFEAA7")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	// PhaseStyle labels the sidebar: lobby, pile counts, match over
	PhaseStyle  = lipgloss.NewStyle().Foreground(colorSand).Bold(true)
	ClaimStyle  = lipgloss.NewStyle().Foreground(colorGold).Bold(true)
	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	TurnStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	NoticeStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	RedSuitStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	BlackSuitStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	promptStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	inputTextStyle = lipgloss.NewStyle().Foreground(colorText)
)

// pane draws a bordered box, highlighted when it has focus
func pane(width, height int, focused bool) lipgloss.Style {
	border := colorMuted
	if focused {
		border = colorAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Height(height)
}
