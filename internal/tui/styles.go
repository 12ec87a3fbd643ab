package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("241")
	colorSuccess = lipgloss.Color("#04B575")
	colorError   = lipgloss.Color("#FF5F87")
	colorInfo    = lipgloss.Color("#5FAFFF")
	colorFav     = lipgloss.Color("#FF5F87")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	filterStyle = lipgloss.NewStyle().Foreground(colorMuted)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	favStyle    = lipgloss.NewStyle().Foreground(colorFav)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(tileWidth)

	selectedTileStyle = tileStyle.BorderForeground(colorAccent)

	rowStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedRowStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	noticeStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(colorSuccess),
		"error":   lipgloss.NewStyle().Foreground(colorError),
		"info":    lipgloss.NewStyle().Foreground(colorInfo),
	}

	labelStyle        = lipgloss.NewStyle().Width(12)
	focusedLabelStyle = labelStyle.Bold(true).Foreground(colorAccent)
)

// tileWidth is the inner width of a grid tile.
const tileWidth = 28
