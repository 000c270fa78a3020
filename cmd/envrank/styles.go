// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across all CLI
// output, tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple - titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - subtitles and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - ok status and positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - setup failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - mismatch and inconclusive statuses.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - mechanism names and values.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for the ok status.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for setup failure messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for mismatch and inconclusive statuses.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// MechStyle is for mechanism names and observed values.
	MechStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

// statusStyle picks the style matching an overall run status.
func statusStyle(status string) lipgloss.Style {
	if status == "ok" {
		return SuccessStyle
	}
	return WarningStyle
}
