package outwriter

import (
	"os"

	"github.com/pynyc/tripmap/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for zone names in table output
// based on terminal width.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 && cfg.OutputFile != "" {
		termWidth = 80 // Files have no terminal to measure
	}
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Layer + Zone + Density + Bucket + Fill + Selected with borders/padding
	baseWidth := 60

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
