package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// logView is the read-only log pane. It implements convert.Log and must only be used on the
// UI thread.
type logView struct {
	entry *widget.Entry
	lines []string
}

func newLogView() *logView {
	entry := widget.NewMultiLineEntry()
	entry.Wrapping = fyne.TextWrapOff
	entry.Disable()
	return &logView{entry: entry}
}

// Append adds a line and scrolls to it.
func (v *logView) Append(line string) {
	v.lines = append(v.lines, line)
	v.render()
}

// Clear empties the pane.
func (v *logView) Clear() {
	v.lines = nil
	v.render()
}

// Lines returns a copy of the current log.
func (v *logView) Lines() []string {
	return append([]string(nil), v.lines...)
}

func (v *logView) render() {
	v.entry.SetText(strings.Join(v.lines, "\n"))
	if len(v.lines) > 0 {
		v.entry.CursorRow = len(v.lines) - 1
	}
	v.entry.Refresh()
}
