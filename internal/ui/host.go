package ui

import "fyne.io/fyne/v2"

// fyneHost hands runner callbacks to the Fyne event loop and waits for each to run, so status
// lines reach the log in order and the reader never runs ahead of the UI.
type fyneHost struct{}

func (fyneHost) Do(fn func()) {
	fyne.DoAndWait(fn)
}
