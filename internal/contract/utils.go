package contract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/huangsam/cvsspop/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // CriticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // HighColor represents strong, distinct warning.
	MediumColor   = color.New(color.FgYellow)              // MediumColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // LowColor represents informational signal.
	NoneColor     = color.New(color.FgGreen)               // NoneColor represents no measurable impact.
	InvalidColor  = color.New(color.FgHiBlack)             // InvalidColor marks the invalid sentinel.
)

// GetColorLabel returns a colored severity label for console output (table).
func GetColorLabel(sev schema.Severity) string {
	text := string(sev)

	switch sev {
	case schema.SeverityCritical:
		return CriticalColor.Sprint(text)
	case schema.SeverityHigh:
		return HighColor.Sprint(text)
	case schema.SeverityMedium:
		return MediumColor.Sprint(text)
	case schema.SeverityLow:
		return LowColor.Sprint(text)
	case schema.SeverityNone:
		return NoneColor.Sprint(text)
	default:
		return InvalidColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// Logger receives warnings raised by background work.
type Logger interface {
	Warn(msg string, err error)
}

// StderrLogger writes warnings straight to stderr.
type StderrLogger struct{}

var _ Logger = StderrLogger{} // Compile-time check

// Warn implements the Logger interface.
func (StderrLogger) Warn(msg string, err error) {
	LogWarn(msg, err)
}

// BufferedLogger holds warnings until Flush is called.
// The TUI uses it so nothing is written to the terminal while the program owns it.
type BufferedLogger struct {
	mu    sync.Mutex
	lines []string
}

var _ Logger = &BufferedLogger{} // Compile-time check

// Warn implements the Logger interface.
func (l *BufferedLogger) Warn(msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("Warn %s: %v", msg, err))
}

// Lines returns the buffered warnings.
func (l *BufferedLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Flush writes every buffered warning to w and empties the buffer.
func (l *BufferedLogger) Flush(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		_, _ = fmt.Fprintln(w, line)
	}
	l.lines = nil
}

// GetStateDBFilePath returns the path to the SQLite DB file for popup state storage.
func GetStateDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cvsspop_state.db"
	}
	return filepath.Join(homeDir, ".cvsspop_state.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cvsspop_history.db"
	}
	return filepath.Join(homeDir, ".cvsspop_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateVector shortens a vector to maxWidth runes with an ellipsis suffix.
func TruncateVector(vector string, maxWidth int) string {
	runes := []rune(vector)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return vector
}
