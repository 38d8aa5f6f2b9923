package outwriter

import (
	"os"

	"golang.org/x/term"
)

// getMaxTableVectorWidth calculates the maximum width for vectors in table output
// based on terminal width.
func getMaxTableVectorWidth() int {
	termWidth := 80 // Conservative default for narrow terminals and CI
	if detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && detectedWidth > 0 {
		termWidth = detectedWidth
	}

	// Reserve space for #, Standard, Score, Severity and Time with borders/padding
	available := termWidth - 70
	if available < 44 {
		// Shortest full CVSS 3.1 vector
		return 44
	}
	if available > 100 {
		return 100
	}
	return available
}
