package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/Akaiko1/mp4-png-converter/internal/config"
)

const (
	msgComplete = "Conversion complete."
	msgErrorFmt = "Error: %v"
)

// Log is the append-only line sink shown to the user.
type Log interface {
	Append(line string)
	Clear()
}

// Host runs fn on the event loop that owns the Log. The runner calls Do once per status line
// read, so the UI gets control back between any two reads.
type Host interface {
	Do(fn func())
}

// CommandFunc creates the converter process. exec.CommandContext is the default.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Option customizes a Runner.
type Option func(*Runner)

// WithCommand replaces the process factory.
func WithCommand(fn CommandFunc) Option {
	return func(r *Runner) {
		r.command = fn
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Runner launches the converter without blocking its caller and mirrors frame lines to a Log.
type Runner struct {
	config  *config.Config
	log     Log
	host    Host
	logger  *slog.Logger
	command CommandFunc
}

// NewRunner creates a Runner writing to log through host.
func NewRunner(cfg *config.Config, log Log, host Host, opts ...Option) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Runner{
		config:  cfg,
		log:     log,
		host:    host,
		logger:  slog.Default(),
		command: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the conversion for req and returns at once with a running session. Failures
// are written to the log and recorded on the session, never returned. Cancelling ctx kills the
// process; there is no other way to stop it.
func (r *Runner) Start(ctx context.Context, req Request) *Session {
	s := newSession(req)
	s.setState(Running)
	go r.run(ctx, s)
	return s
}

func (r *Runner) run(ctx context.Context, s *Session) {
	logger := r.logger.With("session", s.ID.String())
	started := time.Now()

	err := r.execute(ctx, s, logger)

	if err != nil {
		logger.Error("conversion failed", "input", s.Request.InputFile, "error", err)
		r.host.Do(func() {
			r.log.Append(fmt.Sprintf(msgErrorFmt, err))
		})
	} else {
		logger.Info("conversion complete",
			"input", s.Request.InputFile,
			"output", s.Request.OutputDir,
			"frame_lines", s.FrameLines(),
			"elapsed", time.Since(started).Round(time.Millisecond),
		)
		r.host.Do(func() {
			r.log.Append(msgComplete)
		})
	}
	// Terminal only once the last line is in the log.
	s.finish(err)
	close(s.done)
}

// execute starts the process, drains its status stream and reaps it.
func (r *Runner) execute(ctx context.Context, s *Session, logger *slog.Logger) error {
	if err := s.Request.Validate(); err != nil {
		return err
	}

	args := BuildArgs(s.Request, r.config)
	cmd := r.command(ctx, r.config.FFmpegPath, args...)
	logger.Debug("launching converter", "path", cmd.Path, "args", args)

	status, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("attach status stream: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", r.config.FFmpegPath, err)
	}

	lastOther, scanErr := r.drain(s, status)
	if scanErr != nil {
		// Nobody reads the pipe any more; a child still writing would block Wait forever.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("read status stream: %w", scanErr)
	}
	// The pipe must be fully read before Wait closes it.
	waitErr := cmd.Wait()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) && lastOther != "" {
			return fmt.Errorf("%s exited with status %d: %s", r.config.FFmpegPath, exitErr.ExitCode(), lastOther)
		}
		return fmt.Errorf("%s: %w", r.config.FFmpegPath, waitErr)
	}
	return nil
}

// drain reads status lines until EOF, yielding to the host after every read. It returns the
// last non-frame line, which usually explains a failure.
func (r *Runner) drain(s *Session, status io.Reader) (string, error) {
	sc := bufio.NewScanner(status)
	sc.Buffer(make([]byte, 0, 4096), maxStatusLine)
	sc.Split(scanStatusLines)

	var lastOther string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		frame := isFrameLine(line, r.config.FrameMarker)
		if frame {
			s.countFrameLine()
		} else if line != "" {
			lastOther = line
		}

		r.host.Do(func() {
			if frame {
				r.log.Append(line)
			}
		})
	}
	return lastOther, sc.Err()
}
