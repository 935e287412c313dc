package preview

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
)

// ThumbnailRenderer defines the interface for rendering frame previews.
type ThumbnailRenderer interface {
	Thumbnail(path string) (image.Image, error)
}

// Renderer decodes frames from a filesystem and scales them down for display.
type Renderer struct {
	fs   afero.Fs
	size int
}

// NewRenderer creates a Renderer fitting previews into a size x size box. A size of 0 keeps
// the frame at its native resolution.
func NewRenderer(fs afero.Fs, size int) *Renderer {
	return &Renderer{fs: fs, size: size}
}

// Thumbnail decodes the image at path and fits it within the preview box, keeping its aspect
// ratio. Frames smaller than the box are returned unscaled.
func (r *Renderer) Thumbnail(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("no frame to preview")
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame %q: %w", path, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %q: %w", path, err)
	}

	if r.size <= 0 {
		return img, nil
	}
	b := img.Bounds()
	if b.Dx() <= r.size && b.Dy() <= r.size {
		return img, nil
	}
	return imaging.Fit(img, r.size, r.size, imaging.Lanczos), nil
}
