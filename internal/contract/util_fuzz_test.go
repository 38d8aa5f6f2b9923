package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateVector fuzzes TruncateVector with random strings and widths.
func FuzzTruncateVector(f *testing.F) {
	f.Add("CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:N/A:N", 20)
	f.Add("", 0)
	f.Add("界界界界界", 4)

	f.Fuzz(func(t *testing.T, s string, width int) {
		got := TruncateVector(s, width)
		if width > 3 && utf8.RuneCountInString(s) > width && utf8.RuneCountInString(got) != width {
			t.Errorf("TruncateVector(%q, %d) = %q, want %d runes", s, width, got, width)
		}
	})
}

// FuzzParseBoolString makes sure ParseBoolString never panics.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "no", "1", "0", "TRUE", ""} {
		f.Add(seed)
	}
	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseBoolString(s)
	})
}
