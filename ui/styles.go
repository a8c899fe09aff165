package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}
	ColorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "6", Dark: "6"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}

	StyleSuccess     = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError       = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleInfo        = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted       = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleWarning     = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleTitle       = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true)
	StyleBold        = lipgloss.NewStyle().Bold(true)
	StyleTableHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleTableRowAlt = lipgloss.NewStyle().Faint(true)

	StyleButton = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorPrimary).
			Padding(0, 2)
	StyleButtonDisabled = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 2)
	StyleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 3)
)

const (
	IconSuccess = "✔"
	IconError   = "✘"
	IconInfo    = "ℹ"
	IconWarning = "⚠"
)

func FormatSuccess(msg string) string { return StyleSuccess.Render(IconSuccess + " " + msg) }

func FormatError(msg string) string { return StyleError.Render(IconError + " " + msg) }

func FormatInfo(msg string) string { return StyleInfo.Render(IconInfo + " " + msg) }

func FormatWarning(msg string) string { return StyleWarning.Render(IconWarning + " " + msg) }

func FormatMuted(msg string) string { return StyleMuted.Render(msg) }
