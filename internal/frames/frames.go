package frames

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/Akaiko1/mp4-png-converter/internal/config"
)

// Result describes the frame files found in an output directory.
type Result struct {
	Dir    string
	Frames []string // sorted; zero-padded names sort in frame order
	Count  int
}

// First returns the path of the first frame, or "" when none were written.
func (r *Result) First() string {
	if r == nil || len(r.Frames) == 0 {
		return ""
	}
	return r.Frames[0]
}

// FrameScanner defines the interface for listing extracted frames.
type FrameScanner interface {
	Scan(ctx context.Context, dir string) (*Result, error)
}

// Scanner implements FrameScanner over an afero filesystem.
type Scanner struct {
	fs     afero.Fs
	glob   string
	logger *slog.Logger
}

// NewScanner creates a Scanner matching cfg.FrameGlob.
func NewScanner(fs afero.Fs, cfg *config.Config, logger *slog.Logger) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{fs: fs, glob: cfg.FrameGlob, logger: logger}
}

// Scan lists the frame files in dir.
func (s *Scanner) Scan(ctx context.Context, dir string) (*Result, error) {
	if dir == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	info, err := s.fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", dir)
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	result := &Result{Dir: dir}
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(s.glob, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("bad frame pattern %q: %w", s.glob, err)
		}
		if ok {
			result.Frames = append(result.Frames, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(result.Frames)
	result.Count = len(result.Frames)
	s.logger.Debug("scanned frames", "dir", dir, "count", result.Count)
	return result, nil
}
