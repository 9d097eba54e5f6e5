package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestScreenshotFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "showroom")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// 1x2, bottom row red then top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := s.Save(pixels, 1, 2)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(dir, "showroom_2024-05-01_12-30-00.000.png"); name != want {
		t.Errorf("expected %s, got %s", want, name)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}

	if r, _, b, _ := img.At(0, 0).RGBA(); b>>8 != 255 || r != 0 {
		t.Errorf("expected blue on top, got r=%d b=%d", r>>8, b>>8)
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r>>8 != 255 || b != 0 {
		t.Errorf("expected red at the bottom, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestScreenshotSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	_, err := s.Save(make([]byte, 7), 1, 2)
	if err == nil || !strings.Contains(err.Error(), "1x2") {
		t.Errorf("expected size error, got %v", err)
	}
}
