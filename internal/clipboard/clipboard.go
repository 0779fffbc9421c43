// Package clipboard wraps the system clipboard for copying text out
// of the reader, like assistant replies and story links.
package clipboard

import (
	"fmt"

	"golang.design/x/clipboard"

	"github.com/pastelhq/pastel/internal/logger"
)

var initialized bool

// Init initializes the clipboard. Safe to call multiple times.
func Init() error {
	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.ComponentLogger("Clipboard").Warn("Initialization failed", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	return nil
}

// WriteText copies text to the clipboard.
func WriteText(text string) error {
	if !initialized {
		if err := Init(); err != nil {
			return err
		}
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// ReadText returns the clipboard's text contents, or "" when it holds
// none.
func ReadText() (string, error) {
	if !initialized {
		if err := Init(); err != nil {
			return "", err
		}
	}

	data := clipboard.Read(clipboard.FmtText)
	if data == nil {
		return "", nil
	}
	return string(data), nil
}
