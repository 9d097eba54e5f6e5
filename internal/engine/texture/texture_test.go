package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n...."), MimePNG},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, MimeJPEG},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), MimeWebP},
		{"bmp", []byte("BM\x00\x00"), MimeBMP},
		{"unknown", []byte{1, 2, 3}, ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.data); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDecodePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(buf.Bytes(), "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Rect.Dx() != 2 || img.Rect.Dy() != 2 {
		t.Errorf("expected 2x2, got %v", img.Rect)
	}
	if c := img.RGBAAt(1, 0); c.R != 255 || c.A != 255 {
		t.Errorf("expected opaque red, got %v", c)
	}
}

func TestDecodeUnknown(t *testing.T) {
	_, err := Decode([]byte{0, 1, 2, 3}, "")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

// TGA image types and descriptor bits.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaOriginTop    = 0x20
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	data := tgaHeader(tgaTrueColor, 1, 2, 24, 0)
	// first stored row is the bottom one, pixels are BGR
	data = append(data, 0, 0, 255, 255, 0, 0)

	img, err := Decode(data, MimeTGA)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if c := img.RGBAAt(0, 1); c.R != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("expected red at bottom, got %v", c)
	}
	if c := img.RGBAAt(0, 0); c.B != 255 || c.R != 0 || c.A != 255 {
		t.Errorf("expected blue at top, got %v", c)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 32, tgaOriginTop|8)
	// run of 2 green pixels, then 1 raw white pixel
	data = append(data, 0x81, 0, 255, 0, 255)
	data = append(data, 0x00, 255, 255, 255, 255)

	img, err := Decode(data, MimeTGA)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []color.RGBA{
		{G: 255, A: 255},
		{G: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	for x, w := range want {
		if got := img.RGBAAt(x, 0); got != w {
			t.Errorf("pixel %d: expected %v, got %v", x, w, got)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"truncated", tgaHeader(tgaTrueColor, 2, 2, 24, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data, MimeTGA); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMimeByExt(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"textures/body.TGA", MimeTGA},
		{"a%20b.jpeg", MimeJPEG},
		{"x.png", MimePNG},
		{"x.webp", MimeWebP},
		{"x.bmp", MimeBMP},
		{"noext", ""},
		{"x.ktx2", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MimeByExt(tt.name); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
