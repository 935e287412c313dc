package convert

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Akaiko1/mp4-png-converter/internal/config"
)

// valueAfter returns the argument following flag, or "" when flag is absent.
func valueAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func TestBuildArgs(t *testing.T) {
	cfg := config.DefaultConfig()
	req := NewRequest("clip.mp4", "/tmp/frames")

	args := BuildArgs(req, cfg)

	assert.Equal(t, "clip.mp4", valueAfter(args, "-i"))
	assert.Equal(t, "png", valueAfter(args, "-vcodec"))
	assert.Equal(t, "pipe:2", valueAfter(args, "-progress"))
	assert.Contains(t, args, "image2")
	assert.Contains(t, args, "-nostats")
	assert.Contains(t, args, "-y")
	assert.Contains(t, args, filepath.Join("/tmp/frames", "frame_%04d.png"))
	assert.NotContains(t, args, "-vf", "frames keep the source resolution")
}

func TestBuildArgsWithoutOverwrite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Overwrite = false

	args := BuildArgs(NewRequest("clip.mp4", "out"), cfg)

	assert.NotContains(t, args, "-y")
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"both set", NewRequest("clip.mp4", "/tmp/frames"), false},
		{"missing input", NewRequest("", "/tmp/frames"), true},
		{"missing output", NewRequest("clip.mp4", ""), true},
		{"whitespace only", NewRequest("  ", "\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingPaths)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "failed", Failed.String())
	assert.True(t, Failed.Terminal())
	assert.False(t, Running.Terminal())
}
