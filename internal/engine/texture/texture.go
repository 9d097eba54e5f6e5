// Package texture decodes the images referenced by model materials and
// uploads them to the GPU.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Supported MIME types. glTF core only allows PNG and JPEG; the rest come
// from extensions and older exporters.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeWebP = "image/webp"
	MimeBMP  = "image/bmp"
	MimeTGA  = "image/x-tga"
)

// ErrUnknownFormat is returned when neither the MIME type nor the magic
// bytes identify the image.
var ErrUnknownFormat = errors.New("texture: unknown image format")

// Decode decodes data into RGBA. mimeType may be empty, in which case the
// format is sniffed.
func Decode(data []byte, mimeType string) (*image.RGBA, error) {
	if mimeType == "" {
		mimeType = Sniff(data)
	}

	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)
	switch mimeType {
	case MimePNG:
		img, err = png.Decode(r)
	case MimeJPEG:
		img, err = jpeg.Decode(r)
	case MimeWebP:
		img, err = webp.Decode(r)
	case MimeBMP:
		img, err = bmp.Decode(r)
	case MimeTGA:
		img, err = tga.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, mimeType)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", mimeType, err)
	}
	return ToRGBA(img), nil
}

// Sniff guesses the MIME type from magic bytes. TGA has no magic, so it is
// never sniffed.
func Sniff(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return MimePNG
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return MimeJPEG
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return MimeWebP
	case bytes.HasPrefix(data, []byte("BM")):
		return MimeBMP
	}
	return ""
}

// MimeByExt maps a file name or URI extension to a MIME type, or "" when
// the extension is not known.
func MimeByExt(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return MimePNG
	case ".jpg", ".jpeg":
		return MimeJPEG
	case ".webp":
		return MimeWebP
	case ".bmp":
		return MimeBMP
	case ".tga":
		return MimeTGA
	}
	return ""
}

// ToRGBA converts img to *image.RGBA, returning it unchanged if it already is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
