package render

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/infrastructure/cache"
)

// DirAssets loads template background artwork from a directory, keeping the
// decoded images in the shared cache so a batch decodes each template once.
type DirAssets struct {
	dir   string
	cache *cache.NamespaceLRU
}

// NewDirAssets creates an asset store rooted at dir
func NewDirAssets(dir string, lru *cache.NamespaceLRU) *DirAssets {
	return &DirAssets{
		dir:   dir,
		cache: lru,
	}
}

// Background loads and decodes one artwork file by name
func (a *DirAssets) Background(name string) (image.Image, error) {
	if val, found := a.cache.Get(constant.TemplateNamespace, name); found {
		if img, ok := val.(image.Image); ok {
			return img, nil
		}
	}

	f, err := os.Open(filepath.Join(a.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	a.cache.Set(constant.TemplateNamespace, name, img)
	return img, nil
}
