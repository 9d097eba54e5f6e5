package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, c)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestTexturesSources(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "green paint.png"), pngBytes(t, color.NRGBA{G: 255, A: 255}), 0o644); err != nil {
		t.Fatal(err)
	}
	embedded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, color.NRGBA{R: 255, A: 255}))

	doc := gltf.NewDocument()
	doc.Images = []*gltf.Image{
		{Name: "red", URI: embedded, MimeType: "image/png"},
		{Name: "green", URI: "green%20paint.png"},
		{Name: "broken", URI: "missing.png"},
	}
	doc.Textures = []*gltf.Texture{
		{Source: gltf.Index(0)},
		{Source: gltf.Index(1)},
		{Source: gltf.Index(0)},
		{Source: gltf.Index(2)},
		{},
	}

	textures, err := Textures(context.Background(), doc, dir)
	if err != nil {
		t.Fatalf("Textures failed: %v", err)
	}
	if len(textures) != len(doc.Textures) {
		t.Fatalf("expected %d textures, got %d", len(doc.Textures), len(textures))
	}
	if textures[0] == nil || textures[0].RGBAAt(0, 0).R != 255 {
		t.Errorf("expected red embedded texture, got %v", textures[0])
	}
	if textures[1] == nil || textures[1].RGBAAt(0, 0).G != 255 {
		t.Errorf("expected green external texture, got %v", textures[1])
	}
	if textures[2] != textures[0] {
		t.Error("expected textures sharing an image to share the decode")
	}
	if textures[3] != nil {
		t.Error("expected nil for an unreadable image")
	}
	if textures[4] != nil {
		t.Error("expected nil for a texture without source")
	}
}

func TestTexturesExternalTGA(t *testing.T) {
	dir := t.TempDir()
	// 1x1 uncompressed true-colour TGA holding one blue pixel (BGR)
	tga := make([]byte, 18)
	tga[2], tga[12], tga[14], tga[16] = 2, 1, 1, 24
	tga = append(tga, 255, 0, 0)
	if err := os.WriteFile(filepath.Join(dir, "lamp.tga"), tga, 0o644); err != nil {
		t.Fatal(err)
	}

	doc := gltf.NewDocument()
	doc.Images = []*gltf.Image{{Name: "lamp", URI: "lamp.tga"}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}

	textures, err := Textures(context.Background(), doc, dir)
	if err != nil {
		t.Fatalf("Textures failed: %v", err)
	}
	if textures[0] == nil {
		t.Fatal("expected the TGA to decode from its extension")
	}
	if c := textures[0].RGBAAt(0, 0); c.B != 255 || c.R != 0 {
		t.Errorf("expected blue, got %v", c)
	}
}

func TestTexturesCancelled(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Images = []*gltf.Image{{URI: "a.png"}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Textures(ctx, doc, t.TempDir()); err == nil {
		t.Error("expected context error")
	}
}
