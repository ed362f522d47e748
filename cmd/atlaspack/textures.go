package main

import (
	"fmt"
	"image"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-texatlas/atlas"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func decodeImage(log logger.Logger, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("decoded %s: %s %v", path, format, img.Bounds())
	return img, nil
}

// loadTextures decodes every input in order. With resize set, inputs are first
// scaled down to a square power of two edge.
func loadTextures(log logger.Logger, paths []string, resize bool) ([]atlas.Texture, error) {
	textures := make([]atlas.Texture, 0, len(paths))
	for _, path := range paths {
		img, err := decodeImage(log, path)
		if err != nil {
			return nil, err
		}
		if resize {
			b := img.Bounds()
			img = atlas.ResizeToPow2(img)
			if img.Bounds() != b {
				log.Infof("%s resized from %dx%d to %d", path, b.Dx(), b.Dy(), img.Bounds().Dx())
			}
		}
		tx, err := atlas.NewImageTexture(img)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		textures = append(textures, tx)
	}
	return textures, nil
}
