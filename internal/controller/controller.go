// Package controller holds the conversion form state and validates a submission before
// handing it to the runner.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/Akaiko1/mp4-png-converter/internal/convert"
)

const msgStarting = "Starting conversion..."

// ErrBusy is returned when a submission arrives before the previous session has ended.
var ErrBusy = errors.New("a conversion is already running")

// Starter launches a conversion session.
type Starter interface {
	Start(ctx context.Context, req convert.Request) *convert.Session
}

// Alerter shows errors that happen before a session exists.
type Alerter interface {
	Alert(err error)
}

// Controller stores the two user-chosen paths and submits them.
type Controller struct {
	fs      afero.Fs
	runner  Starter
	log     convert.Log
	alerter Alerter
	logger  *slog.Logger

	inputPath  string
	outputPath string
	active     *convert.Session
}

// New creates a Controller. Directory creation goes through fs.
func New(fs afero.Fs, runner Starter, log convert.Log, alerter Alerter, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fs:      fs,
		runner:  runner,
		log:     log,
		alerter: alerter,
		logger:  logger,
	}
}

// SetInputPath stores the video to convert.
func (c *Controller) SetInputPath(path string) { c.inputPath = path }

// SetOutputPath stores the directory receiving the frames.
func (c *Controller) SetOutputPath(path string) { c.outputPath = path }

// InputPath returns the stored video path.
func (c *Controller) InputPath() string { return c.inputPath }

// OutputPath returns the stored output directory.
func (c *Controller) OutputPath() string { return c.outputPath }

// Active returns the most recent session, or nil before the first submission.
func (c *Controller) Active() *convert.Session {
	return c.active
}

// Busy reports whether the most recent session has not yet closed Done, i.e. its terminal
// log line may still be pending.
func (c *Controller) Busy() bool {
	if c.active == nil {
		return false
	}
	select {
	case <-c.active.Done():
		return false
	default:
		return true
	}
}

// Submit validates the stored paths, creates the output directory if needed, clears the log
// and starts a session. Errors here are also passed to the Alerter; nothing is launched.
func (c *Controller) Submit(ctx context.Context) (*convert.Session, error) {
	req := convert.NewRequest(c.inputPath, c.outputPath)
	if err := req.Validate(); err != nil {
		return nil, c.reject(err)
	}
	if c.Busy() {
		return nil, c.reject(ErrBusy)
	}
	if err := c.ensureOutputDir(req.OutputDir); err != nil {
		return nil, c.reject(err)
	}

	c.log.Clear()
	c.log.Append(msgStarting)

	s := c.runner.Start(ctx, req)
	c.active = s
	c.logger.Info("conversion started", "session", s.ID.String(), "input", req.InputFile, "output", req.OutputDir)
	return s, nil
}

func (c *Controller) ensureOutputDir(dir string) error {
	info, err := c.fs.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("output path %q is not a directory", dir)
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to stat output directory %q: %w", dir, err)
	}

	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}
	c.logger.Debug("created output directory", "dir", dir)
	return nil
}

func (c *Controller) reject(err error) error {
	c.logger.Warn("submission rejected", "error", err)
	if c.alerter != nil {
		c.alerter.Alert(err)
	}
	return err
}
