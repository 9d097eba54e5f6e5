package loader

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/texture"
	"github.com/Faultbox/showroom/internal/logger"
)

// Textures decodes the source image of every texture in doc. The result
// is indexed like doc.Textures, which is what material.Material.Texture
// refers to. Images that cannot be read or decoded are logged and left
// nil so a broken texture only costs its own surface. External URIs are
// resolved relative to dir.
func Textures(ctx context.Context, doc *gltf.Document, dir string) ([]*image.RGBA, error) {
	log := logger.Named("loader")
	decoded := make(map[int]*image.RGBA, len(doc.Images))
	out := make([]*image.RGBA, len(doc.Textures))

	for ti, tex := range doc.Textures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if tex == nil || tex.Source == nil {
			log.Debug("texture without core source", zap.Int("texture", ti))
			continue
		}
		src := *tex.Source
		if img, ok := decoded[src]; ok {
			out[ti] = img
			continue
		}
		if src < 0 || src >= len(doc.Images) {
			log.Warn("texture source out of range", zap.Int("texture", ti), zap.Int("image", src))
			continue
		}

		img, err := decodeImage(doc, doc.Images[src], dir)
		if err != nil {
			log.Warn("texture decode failed",
				zap.Int("texture", ti),
				zap.Int("image", src),
				zap.Error(err))
		}
		decoded[src] = img
		out[ti] = img
	}
	return out, nil
}

func decodeImage(doc *gltf.Document, img *gltf.Image, dir string) (*image.RGBA, error) {
	data, err := imageData(doc, img, dir)
	if err != nil {
		return nil, err
	}
	mime := img.MimeType
	if mime == "" {
		mime = texture.Sniff(data)
	}
	if mime == "" && img.URI != "" && !img.IsEmbeddedResource() {
		mime = texture.MimeByExt(img.URI)
	}
	return texture.Decode(data, mime)
}

func imageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		bv := *img.BufferView
		if bv < 0 || bv >= len(doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range", bv)
		}
		return modeler.ReadBufferView(doc, doc.BufferViews[bv])
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		name, err := url.PathUnescape(img.URI)
		if err != nil {
			return nil, fmt.Errorf("bad image uri %q: %w", img.URI, err)
		}
		return os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	}
	return nil, fmt.Errorf("image %q has no data", img.Name)
}
