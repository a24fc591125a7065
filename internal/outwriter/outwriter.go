// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/streetrisk/internal/contract"
	"golang.org/x/term"
)

// GetMaxSummaryWidth calculates the maximum width for the summary column in
// table output based on terminal width.
func GetMaxSummaryWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (rank, segment, score, label,
	// density, night, incidents) plus borders and padding.
	baseWidth := 70

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}

// truncateText shortens a string to at most width runes, marking the cut
// with an ellipsis.
func truncateText(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
