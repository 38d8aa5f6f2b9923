package schema

import (
	"fmt"
	"math"
	"strings"
)

// SeverityFor maps a score to its severity band.
// Bands are half-open; boundary values belong to the higher band.
func SeverityFor(score float64) Severity {
	switch {
	case score == 0:
		return SeverityNone
	case score < 4.0:
		return SeverityLow
	case score < 7.0:
		return SeverityMedium
	case score < 9.0:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// EmojiFor returns the emoji shown next to a severity.
func EmojiFor(sev Severity) string {
	switch sev {
	case SeverityNone:
		return "😴"
	case SeverityLow:
		return "🥱"
	case SeverityMedium:
		return "😬"
	case SeverityHigh:
		return "😎"
	case SeverityCritical:
		return "🔥"
	default:
		return "❌"
	}
}

// RoundScore rounds a score to one decimal of precision.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// FormatScore renders a score with exactly one decimal.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

// ParseStandard accepts the standard ids as well as their version numbers.
func ParseStandard(s string) (Standard, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cvss3", "3", "3.1", "v3", "cvss:3.1":
		return V3, nil
	case "cvss4", "4", "4.0", "v4", "cvss:4.0":
		return V4, nil
	default:
		return "", fmt.Errorf("invalid standard '%s'. must be cvss3 (3.1) or cvss4 (4.0)", s)
	}
}

// TabFor returns the tab that shows a standard.
func TabFor(std Standard) Tab {
	if std == V4 {
		return TabCVSS4
	}
	return TabCVSS3
}

// StandardFor returns the standard shown by a tab, if any.
func StandardFor(tab Tab) (Standard, bool) {
	switch tab {
	case TabCVSS3:
		return V3, true
	case TabCVSS4:
		return V4, true
	default:
		return "", false
	}
}

// Title returns a human label for a standard.
func (s Standard) Title() string {
	if ms, ok := SchemaFor(s); ok {
		return ms.Title
	}
	return string(s)
}

// Prefix returns the vector prefix for a standard.
func (s Standard) Prefix() string {
	if ms, ok := SchemaFor(s); ok {
		return ms.Prefix
	}
	return ""
}
