// Package assets loads and caches the images and fonts the overlay draws
// with. Decoding happens on the CPU so the cache can be exercised without a
// display; the renderer converts to GPU textures on its own side.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"encounterhud/pkg/hud/paths"
)

// Cache holds decoded images, prescaled portraits and font faces keyed so
// repeated frames hit memory instead of disk.
type Cache struct {
	mu        sync.Mutex
	paths     paths.Paths
	images    map[string]image.Image
	portraits map[string]image.Image
	icons     map[string]string // status key -> icon file path
	sources   map[string]*text.GoTextFaceSource
	faces     map[string]*text.GoTextFace
}

func New(p paths.Paths) *Cache {
	return &Cache{
		paths:     p,
		images:    make(map[string]image.Image),
		portraits: make(map[string]image.Image),
		sources:   make(map[string]*text.GoTextFaceSource),
		faces:     make(map[string]*text.GoTextFace),
	}
}

// Image decodes the image at path, resolving relative paths against the
// artifact directory, and caches the result.
func (c *Cache) Image(path string) (image.Image, error) {
	if !filepath.IsAbs(path) {
		path = c.paths.FromBase(path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[path]; ok {
		return img, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	c.images[path] = img
	return img, nil
}

// Portrait returns the image at path scaled by the given factor. Scaling is
// done once per (path, scale) pair with a bilinear filter.
func (c *Cache) Portrait(path string, scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = 1
	}

	img, err := c.Image(path)
	if err != nil {
		return nil, err
	}
	if scale == 1 {
		return img, nil
	}

	key := fmt.Sprintf("%s:%.3f", path, scale)
	c.mu.Lock()
	defer c.mu.Unlock()
	if scaled, ok := c.portraits[key]; ok {
		return scaled, nil
	}

	b := img.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	c.portraits[key] = dst
	return dst, nil
}

// ImageSize reports the pixel dimensions of the image at path.
func (c *Cache) ImageSize(path string) (int, int, bool) {
	img, err := c.Image(path)
	if err != nil {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}

// InvalidateImages drops all decoded images and prescaled portraits so the
// next frame re-reads them from disk.
func (c *Cache) InvalidateImages() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.portraits = make(map[string]image.Image)
	c.mu.Unlock()
}

// RefreshStatusIcons rescans the status icon directory. Each image file
// registers under its lowercased stem, so "Poisoned.png" serves the status
// key "poisoned". A missing directory simply leaves no icons.
func (c *Cache) RefreshStatusIcons() {
	icons := make(map[string]string)
	entries, err := os.ReadDir(c.paths.StatusIconDir())
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
				continue
			}
			key := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
			icons[key] = filepath.Join(c.paths.StatusIconDir(), name)
		}
	}

	c.mu.Lock()
	c.icons = icons
	c.mu.Unlock()
}

// StatusIcon returns the decoded icon for a status key, or false when no
// icon file matches. The key should come from state.StatusKey.
func (c *Cache) StatusIcon(key string) (image.Image, bool) {
	c.mu.Lock()
	if c.icons == nil {
		c.mu.Unlock()
		c.RefreshStatusIcons()
		c.mu.Lock()
	}
	path, ok := c.icons[key]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	img, err := c.Image(path)
	if err != nil {
		return nil, false
	}
	return img, true
}

// HasStatusIcon reports whether an icon file is registered for the key
// without decoding it.
func (c *Cache) HasStatusIcon(key string) bool {
	c.mu.Lock()
	if c.icons == nil {
		c.mu.Unlock()
		c.RefreshStatusIcons()
		c.mu.Lock()
	}
	_, ok := c.icons[key]
	c.mu.Unlock()
	return ok
}

// Face returns a cached text face for the family at the given size. A font
// file named after the family in the fonts directory wins; otherwise a
// bundled Go font stands in, monospace when the family name suggests one.
func (c *Cache) Face(family string, size float64) *text.GoTextFace {
	if size <= 0 {
		size = 12
	}
	key := fmt.Sprintf("%s:%.1f", family, size)

	c.mu.Lock()
	defer c.mu.Unlock()
	if face, ok := c.faces[key]; ok {
		return face
	}

	src := c.sourceLocked(family)
	face := &text.GoTextFace{Source: src, Size: size}
	c.faces[key] = face
	return face
}

func (c *Cache) sourceLocked(family string) *text.GoTextFaceSource {
	name := strings.ToLower(strings.TrimSpace(family))
	if src, ok := c.sources[name]; ok {
		return src
	}

	src := c.loadFamilyFile(name)
	if src == nil {
		src = fallbackSource(name)
	}
	c.sources[name] = src
	return src
}

// loadFamilyFile looks for <family>.ttf or <family>.otf under the fonts
// directory, with spaces in the family name also tried as underscores.
func (c *Cache) loadFamilyFile(name string) *text.GoTextFaceSource {
	stems := []string{name, strings.ReplaceAll(name, " ", "_")}
	for _, stem := range stems {
		for _, ext := range []string{".ttf", ".otf"} {
			data, err := os.ReadFile(filepath.Join(c.paths.FontsDir(), stem+ext))
			if err != nil {
				continue
			}
			src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
			if err != nil {
				log.Printf("font %s%s: %v", stem, ext, err)
				continue
			}
			return src
		}
	}
	return nil
}

var monospaceHints = []string{"mono", "consolas", "courier", "code"}

func fallbackSource(name string) *text.GoTextFaceSource {
	data := goregular.TTF
	for _, hint := range monospaceHints {
		if strings.Contains(name, hint) {
			data = gomono.TTF
			break
		}
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		// The bundled Go fonts are known-good TTF data.
		log.Printf("bundled font: %v", err)
	}
	return src
}
