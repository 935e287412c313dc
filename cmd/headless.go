package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/afero"

	"github.com/Akaiko1/mp4-png-converter/internal/config"
	"github.com/Akaiko1/mp4-png-converter/internal/controller"
	"github.com/Akaiko1/mp4-png-converter/internal/convert"
)

// errConversionFailed is returned after the failure has already been printed to the log.
var errConversionFailed = errors.New("conversion failed")

// consoleLog prints each log line as it is appended.
type consoleLog struct {
	w io.Writer
}

func (l consoleLog) Append(line string) { fmt.Fprintln(l.w, line) }
func (l consoleLog) Clear()             {}

// serialHost runs callbacks one at a time on the reader goroutine.
type serialHost struct {
	mu sync.Mutex
}

func (h *serialHost) Do(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

// stderrAlerter prints validation errors that precede the log.
type stderrAlerter struct{}

func (stderrAlerter) Alert(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func runHeadless(ctx context.Context, cfg *config.Config, logger *slog.Logger, input, output string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := consoleLog{w: w}
	runner := convert.NewRunner(cfg, log, &serialHost{}, convert.WithLogger(logger))
	ctrl := controller.New(afero.NewOsFs(), runner, log, stderrAlerter{}, logger)
	ctrl.SetInputPath(input)
	ctrl.SetOutputPath(output)

	session, err := ctrl.Submit(ctx)
	if err != nil {
		return err
	}
	if err := session.Wait(); err != nil {
		return errConversionFailed
	}
	return nil
}
