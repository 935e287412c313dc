// Package convert runs the external frame extractor for one request at a time and narrates its
// progress into a log owned by the host event loop.
package convert

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrMissingPaths is returned when either path of a Request is empty.
var ErrMissingPaths = errors.New("please select an input file and output directory")

// Request is one conversion: a source video and the directory receiving its frames.
type Request struct {
	InputFile string
	OutputDir string
}

// NewRequest trims both paths.
func NewRequest(inputFile, outputDir string) Request {
	return Request{
		InputFile: strings.TrimSpace(inputFile),
		OutputDir: strings.TrimSpace(outputDir),
	}
}

// Validate checks that both paths are present. Existence is left to the converter.
func (r Request) Validate() error {
	if r.InputFile == "" || r.OutputDir == "" {
		return ErrMissingPaths
	}
	return nil
}

// FramePath is the output file pattern passed to the converter.
func (r Request) FramePath(pattern string) string {
	return filepath.Join(r.OutputDir, pattern)
}
