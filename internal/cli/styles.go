// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

var (
	// PrimaryColor is the main theme color (invoice green).
	PrimaryColor = lipgloss.Color("#2ECC71")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))
)

// ConfidenceStyle picks a style for a confidence score: strong verdicts in
// green, weak ones in yellow, guesses in gray.
func ConfidenceStyle(confidence float64) lipgloss.Style {
	switch {
	case confidence >= 0.7:
		return SuccessStyle
	case confidence >= 0.5:
		return WarningStyle
	default:
		return SubtleStyle
	}
}

// FormatResult renders a classification result for terminal display.
func FormatResult(result model.ClassificationResult) string {
	header := TitleStyle.Render(string(result.Category))
	confidence := ConfidenceStyle(result.Confidence).Render(fmt.Sprintf("%.0f%%", result.Confidence*100))

	body := fmt.Sprintf("%s  %s", header, confidence)
	if result.Subcategory != "" {
		body += "\n" + BoldStyle.Render(result.Subcategory)
	}
	if result.Reason != "" {
		body += "\n" + SubtleStyle.Render(result.Reason)
	}
	body += "\n" + SubtleStyle.Render(fmt.Sprintf("origem: %s", result.Source))
	if result.AIStatus != "" {
		body += "\n" + WarningStyle.Render(fmt.Sprintf("IA indisponível: %s", result.AIStatus))
	}

	return BoxStyle.Render(body)
}
