package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/afero"

	"github.com/Akaiko1/mp4-png-converter/internal/clipboard"
	"github.com/Akaiko1/mp4-png-converter/internal/config"
	"github.com/Akaiko1/mp4-png-converter/internal/controller"
	"github.com/Akaiko1/mp4-png-converter/internal/convert"
	"github.com/Akaiko1/mp4-png-converter/internal/frames"
	"github.com/Akaiko1/mp4-png-converter/internal/preview"
)

const (
	// UI Constants
	appID    = "io.github.akaiko1.mp4png"
	appTitle = "MP4 to PNG Converter"

	// Preferences
	prefOutputDir = "last_output_dir"

	// Messages
	msgReady      = "Select an MP4 file and an output directory."
	msgConverting = "Converting: "
	msgCopied     = "Log copied to clipboard!"
)

// ConverterApp is the desktop form around a controller.Controller. All fields are touched on
// the UI thread only.
type ConverterApp struct {
	// Core components
	app    fyne.App
	window fyne.Window
	config *config.Config
	logger *slog.Logger

	// Services
	controller *controller.Controller
	scanner    frames.FrameScanner
	renderer   preview.ThumbnailRenderer
	clipboard  clipboard.LogCopier

	// UI components
	inputEntry  *widget.Entry
	outputEntry *widget.Entry
	convertBtn  *widget.Button
	statusLabel *widget.Label
	previewImg  *canvas.Image
	log         *logView

	// Cancelled when the window closes; kills a running converter.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewConverterApp creates a ConverterApp with the given configuration.
func NewConverterApp(cfg *config.Config, logger *slog.Logger) *ConverterApp {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.MediaVideoIcon())

	window := fyneApp.NewWindow(appTitle)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))

	fs := afero.NewOsFs()
	ctx, cancel := context.WithCancel(context.Background())

	a := &ConverterApp{
		app:         fyneApp,
		window:      window,
		config:      cfg,
		logger:      logger,
		scanner:     frames.NewScanner(fs, cfg, logger),
		renderer:    preview.NewRenderer(fs, cfg.PreviewSize),
		clipboard:   clipboard.NewFyneClipboardManager(fyneApp.Clipboard()),
		statusLabel: widget.NewLabel(msgReady),
		log:         newLogView(),
		ctx:         ctx,
		cancel:      cancel,
	}

	runner := convert.NewRunner(cfg, a.log, fyneHost{}, convert.WithLogger(logger))
	a.controller = controller.New(fs, runner, a.log, a, logger)
	return a
}

// SetPaths pre-fills the form, e.g. from command line flags.
func (a *ConverterApp) SetPaths(input, output string) {
	if input != "" {
		a.controller.SetInputPath(input)
	}
	if output != "" {
		a.controller.SetOutputPath(output)
	}
}

// Run starts the application and blocks until the window closes.
func (a *ConverterApp) Run() {
	if a.controller.OutputPath() == "" {
		a.controller.SetOutputPath(a.app.Preferences().String(prefOutputDir))
	}

	a.window.SetContent(a.createMainContent())
	a.enableDragDrop()
	a.window.SetOnClosed(a.cancel)
	a.window.ShowAndRun()
}

// Alert implements controller.Alerter with an error dialog.
func (a *ConverterApp) Alert(err error) {
	a.showError("Error", err)
}

// createMainContent creates the main UI content.
func (a *ConverterApp) createMainContent() fyne.CanvasObject {
	a.inputEntry = widget.NewEntry()
	a.inputEntry.SetPlaceHolder("video.mp4")
	a.inputEntry.SetText(a.controller.InputPath())
	a.inputEntry.OnChanged = a.controller.SetInputPath

	a.outputEntry = widget.NewEntry()
	a.outputEntry.SetPlaceHolder("output directory")
	a.outputEntry.SetText(a.controller.OutputPath())
	a.outputEntry.OnChanged = a.controller.SetOutputPath

	inputBtn := widget.NewButton("Browse", a.handleBrowseInput)
	outputBtn := widget.NewButton("Browse", a.handleBrowseOutput)

	form := widget.NewForm(
		widget.NewFormItem("Select MP4 File:", container.NewBorder(nil, nil, nil, inputBtn, a.inputEntry)),
		widget.NewFormItem("Select Output Directory:", container.NewBorder(nil, nil, nil, outputBtn, a.outputEntry)),
	)

	a.convertBtn = widget.NewButtonWithIcon("Convert", theme.MediaPlayIcon(), a.handleConvert)
	a.convertBtn.Importance = widget.HighImportance
	copyBtn := widget.NewButtonWithIcon("Copy Log", theme.ContentCopyIcon(), a.handleCopyLog)

	a.previewImg = canvas.NewImageFromImage(nil)
	a.previewImg.FillMode = canvas.ImageFillContain
	size := float32(a.config.PreviewSize)
	a.previewImg.SetMinSize(fyne.NewSize(size, size))
	a.previewImg.Hide()

	buttons := container.NewGridWithColumns(2, a.convertBtn, copyBtn)
	header := container.NewVBox(form, buttons, a.statusLabel)
	return container.NewBorder(header, nil, nil, a.previewImg, a.log.entry)
}

// handleBrowseInput opens a file dialog filtered to the configured video extensions.
func (a *ConverterApp) handleBrowseInput() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("File Selection Error", err)
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()
		a.setInputPath(reader.URI().Path())
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(a.config.InputExtensions))
	fileDialog.Show()
}

// handleBrowseOutput opens a folder dialog.
func (a *ConverterApp) handleBrowseOutput() {
	folderDialog := dialog.NewFolderOpen(func(folder fyne.ListableURI, err error) {
		if err != nil {
			a.showError("Folder Selection Error", err)
			return
		}
		if folder == nil {
			return // User cancelled
		}
		a.setOutputPath(folder.Path())
	}, a.window)

	folderDialog.Show()
}

func (a *ConverterApp) setInputPath(path string) {
	a.controller.SetInputPath(path)
	a.inputEntry.SetText(path)
}

func (a *ConverterApp) setOutputPath(path string) {
	a.controller.SetOutputPath(path)
	a.outputEntry.SetText(path)
}

// handleConvert submits the form and watches the session until it ends.
func (a *ConverterApp) handleConvert() {
	session, err := a.controller.Submit(a.ctx)
	if err != nil {
		return // already alerted
	}

	a.app.Preferences().SetString(prefOutputDir, session.Request.OutputDir)
	a.convertBtn.Disable()
	a.previewImg.Hide()
	a.statusLabel.SetText(msgConverting + session.Request.InputFile)

	go a.awaitSession(session)
}

// awaitSession runs off the UI thread and reports the outcome once the session is done.
func (a *ConverterApp) awaitSession(session *convert.Session) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("panic while finishing conversion", "panic", r)
		}
		// UI updates must use main thread dispatcher
		fyne.Do(func() {
			a.convertBtn.Enable()
		})
	}()

	if err := session.Wait(); err != nil {
		fyne.Do(func() {
			a.statusLabel.SetText("Conversion failed")
		})
		return
	}

	result, err := a.scanner.Scan(a.ctx, session.Request.OutputDir)
	if err != nil {
		a.logger.Warn("could not list frames", "dir", session.Request.OutputDir, "error", err)
		fyne.Do(func() {
			a.statusLabel.SetText("Conversion complete")
		})
		return
	}

	thumb, thumbErr := a.renderer.Thumbnail(result.First())
	if thumbErr != nil {
		a.logger.Debug("no preview", "error", thumbErr)
	}

	fyne.Do(func() {
		a.statusLabel.SetText(fmt.Sprintf("Extracted %d frames into: %s", result.Count, result.Dir))
		if thumbErr == nil {
			a.previewImg.Image = thumb
			a.previewImg.Show()
			a.previewImg.Refresh()
		}
	})
}

// handleCopyLog copies the log pane to the clipboard.
func (a *ConverterApp) handleCopyLog() {
	if err := a.clipboard.CopyLines(a.log.Lines()); err != nil {
		if errors.Is(err, clipboard.ErrEmptyLog) {
			dialog.ShowInformation("No Data", "Nothing to copy yet.", a.window)
			return
		}
		a.showError("Clipboard Error", err)
		return
	}
	dialog.ShowInformation("Success", msgCopied, a.window)
}

// showError shows an error dialog.
func (a *ConverterApp) showError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.window)
}

// enableDragDrop routes a dropped video to the input field and a dropped folder to the
// output field.
func (a *ConverterApp) enableDragDrop() {
	a.window.SetOnDropped(func(position fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			return
		}
		uri := uris[0] // Take first dropped item
		if uri.Scheme() != "file" {
			dialog.ShowError(fmt.Errorf("invalid file path"), a.window)
			return
		}

		path := uri.Path()
		info, err := os.Stat(path)
		switch {
		case err != nil:
			a.showError("Drop Error", err)
		case info.IsDir():
			a.setOutputPath(path)
		case a.acceptsInput(path):
			a.setInputPath(path)
		default:
			dialog.ShowError(fmt.Errorf("please drop a video file or a folder"), a.window)
		}
	})
}

func (a *ConverterApp) acceptsInput(path string) bool {
	ext := filepath.Ext(path)
	for _, allowed := range a.config.InputExtensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}
