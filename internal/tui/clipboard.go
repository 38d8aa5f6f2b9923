package tui

import (
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// ClipboardFunc places text on the system clipboard.
type ClipboardFunc func(text string) error

// OSC52Clipboard writes an OSC 52 sequence to w. Terminals that support it
// copy the payload to the local clipboard, including over SSH.
func OSC52Clipboard(w io.Writer) ClipboardFunc {
	return func(text string) error {
		seq := osc52.New(text)
		if os.Getenv("TMUX") != "" {
			seq = seq.Tmux()
		} else if strings.HasPrefix(os.Getenv("TERM"), "screen") {
			seq = seq.Screen()
		}
		_, err := seq.WriteTo(w)
		return err
	}
}
