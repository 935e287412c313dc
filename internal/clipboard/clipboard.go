package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
)

// ErrEmptyLog is returned when there is nothing to copy.
var ErrEmptyLog = errors.New("log is empty")

// LogCopier defines the interface for copying the conversion log.
type LogCopier interface {
	CopyLines(lines []string) error
}

// FyneClipboardManager implements LogCopier using Fyne's clipboard.
type FyneClipboardManager struct {
	clipboard fyne.Clipboard
}

// NewFyneClipboardManager creates a new FyneClipboardManager.
func NewFyneClipboardManager(clipboard fyne.Clipboard) *FyneClipboardManager {
	return &FyneClipboardManager{clipboard: clipboard}
}

// CopyLines places the log lines on the clipboard, one per line.
func (c *FyneClipboardManager) CopyLines(lines []string) error {
	if c.clipboard == nil {
		return fmt.Errorf("clipboard is not available")
	}
	if len(lines) == 0 {
		return ErrEmptyLog
	}
	c.clipboard.SetContent(strings.Join(lines, "\n"))
	return nil
}
