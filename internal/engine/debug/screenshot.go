// Package debug provides developer conveniences around the render loop.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes frames grabbed from the default framebuffer as PNGs.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots saves into dir, which is created on first use.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture would be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000"))
	return filepath.Join(s.dir, name)
}

// Save writes bottom-up RGBA pixels, as returned by glReadPixels, and
// returns the file name.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("screenshot: %d bytes for %dx%d", len(pixels), width, height)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating screenshot dir: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*row : (height-y)*row]
		copy(img.Pix[y*img.Stride:], src)
	}

	name := s.Filename()
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	return name, nil
}
