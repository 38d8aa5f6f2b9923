package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/huangsam/cvsspop/core/session"
)

// Run shows the popup until the user quits or ctx is canceled.
func Run(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer, opts ...Option) error {
	opts = append([]Option{WithClipboard(OSC52Clipboard(out))}, opts...)
	program := tea.NewProgram(New(sess, opts...),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running popup: %w", err)
	}
	return nil
}
