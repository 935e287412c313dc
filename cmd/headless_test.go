package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akaiko1/mp4-png-converter/internal/config"
	"github.com/Akaiko1/mp4-png-converter/internal/convert"
	"github.com/Akaiko1/mp4-png-converter/internal/logging"
)

func TestRunHeadlessMissingPaths(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(&bytes.Buffer{}, "error")

	err := runHeadless(context.Background(), config.DefaultConfig(), logger, "", "", &out)

	assert.ErrorIs(t, err, convert.ErrMissingPaths)
	assert.Empty(t, out.String())
}

func TestRunHeadlessMissingConverter(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(&bytes.Buffer{}, "error")
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = filepath.Join(t.TempDir(), "no-such-ffmpeg")
	outputDir := filepath.Join(t.TempDir(), "frames")

	err := runHeadless(context.Background(), cfg, logger, "clip.mp4", outputDir, &out)

	require.ErrorIs(t, err, errConversionFailed)
	assert.DirExists(t, outputDir)
	assert.Contains(t, out.String(), "Starting conversion...\n")
	assert.Contains(t, out.String(), "Error: start ")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)

	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "mp4png dev\n", out.String())
}
