package convert

import (
	"bytes"
	"strings"
)

// maxStatusLine bounds a single status line; ffmpeg banners stay well below it.
const maxStatusLine = 1 << 20

// scanStatusLines is a bufio.SplitFunc that ends a line at '\n' or '\r'. ffmpeg redraws its
// stats line with carriage returns, so '\n' alone would merge many updates into one line.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// isFrameLine reports whether a status line carries a frame count.
func isFrameLine(line, marker string) bool {
	return strings.Contains(line, marker)
}
