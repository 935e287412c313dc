package preview

import (
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, fs afero.Fs, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
	}
	f, err := fs.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestThumbnailFitsBox(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/out/frame_0001.png", 640, 360)

	img, err := NewRenderer(fs, 160).Thumbnail("/out/frame_0001.png")

	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestThumbnailKeepsSmallFrames(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/out/frame_0001.png", 32, 24)

	img, err := NewRenderer(fs, 160).Thumbnail("/out/frame_0001.png")

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 24), img.Bounds())
}

func TestThumbnailErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/broken.png", []byte("not a png"), 0o644))
	r := NewRenderer(fs, 160)

	_, err := r.Thumbnail("")
	assert.Error(t, err)

	_, err = r.Thumbnail("/out/missing.png")
	assert.ErrorContains(t, err, "open frame")

	_, err = r.Thumbnail("/out/broken.png")
	assert.ErrorContains(t, err, "decode frame")
}
