package convert

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scanAll(input string) []string {
	sc := bufio.NewScanner(strings.NewReader(input))
	sc.Split(scanStatusLines)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func TestScanStatusLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"newlines", "a\nb\n", []string{"a", "b"}},
		{"carriage returns", "frame=1\rframe=2\r", []string{"frame=1", "frame=2"}},
		{"no trailing terminator", "a\nb", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanAll(tt.input))
		})
	}
}

func TestIsFrameLine(t *testing.T) {
	assert.True(t, isFrameLine("frame=42", "frame="))
	assert.True(t, isFrameLine("frame=  120 fps= 30 q=-0.0 size=N/A", "frame="))
	assert.False(t, isFrameLine("fps=29.97", "frame="))
	assert.False(t, isFrameLine("Stream #0:0: Video: h264", "frame="))
}
