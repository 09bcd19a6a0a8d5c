package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrClipboardUnavailable is returned when neither copy path worked
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard copies text to the system clipboard and falls back to an
// OSC 52 sequence written to the terminal.
type Clipboard struct {
	system   func(string) error // nil when no clipboard utility exists
	terminal io.Writer
}

// NewClipboard returns a clipboard that falls back to writing OSC 52 on
// out. A nil out uses stderr, which stays attached to the terminal while
// the TUI owns stdout.
func NewClipboard(out io.Writer) *Clipboard {
	if out == nil {
		out = os.Stderr
	}
	c := &Clipboard{terminal: out}
	if !clipboard.Unsupported {
		c.system = clipboard.WriteAll
	}
	return c
}

// Method names the path that succeeded
type Method string

const (
	MethodSystem   Method = "system clipboard"
	MethodTerminal Method = "terminal (OSC 52)"
)

// CopyHTML places html on the clipboard
func (c *Clipboard) CopyHTML(html string) (Method, error) {
	sysErr := c.copySystem(html)
	if sysErr == nil {
		return MethodSystem, nil
	}

	termErr := c.copyTerminal(html)
	if termErr == nil {
		return MethodTerminal, nil
	}
	return "", errors.Join(ErrClipboardUnavailable, sysErr, termErr)
}

func (c *Clipboard) copySystem(s string) (err error) {
	if c.system == nil {
		return errors.New("system clipboard unsupported")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("system clipboard: %v", r)
		}
	}()
	if err := c.system(s); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

func (c *Clipboard) copyTerminal(s string) error {
	if c.terminal == nil {
		return errors.New("no terminal to write to")
	}
	if _, err := osc52.New(s).WriteTo(c.terminal); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}
