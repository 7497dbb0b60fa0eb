// Package localfs serves template imagery from a local directory, resizing
// on request.
package localfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/resinwood/internal/domain"
)

const (
	MaxWidth     = 2048
	jpegQuality  = 80
	maxCacheSize = 256
)

type Store struct {
	root string

	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	data        []byte
	contentType string
}

func New(root string) *Store {
	return &Store{root: root, cache: map[string]cached{}}
}

// Image returns the named file. width > 0 scales it down to that width,
// keeping the aspect ratio; images are never enlarged.
func (s *Store) Image(ctx context.Context, name string, width int) ([]byte, string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, "", err
	}
	if width < 0 {
		width = 0
	}
	if width > MaxWidth {
		width = MaxWidth
	}
	key := fmt.Sprintf("%s@%d", clean, width)
	if c, ok := s.get(key); ok {
		return c.data, c.contentType, nil
	}

	raw, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("read image %s: %w", clean, err)
	}
	ct := contentType(clean)
	if width == 0 {
		s.put(key, cached{raw, ct})
		return raw, ct, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	out, ct, err := resize(raw, clean, width)
	if err != nil {
		return nil, "", err
	}
	s.put(key, cached{out, ct})
	log.Debug().Str("image", clean).Int("width", width).Int("bytes", len(out)).Msg("image resized")
	return out, ct, nil
}

func resize(raw []byte, name string, width int) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", name, err)
	}
	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if strings.EqualFold(path.Ext(name), ".png") {
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/jpeg", nil
}

// cleanName rejects names that would escape the root directory.
func cleanName(name string) (string, error) {
	n := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, `\`, "/")), "/")
	if n == "" || n == "." || strings.HasPrefix(n, "..") {
		return "", domain.ErrNotFound
	}
	return n, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (s *Store) get(key string) (cached, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cache[key]
	return c, ok
}

func (s *Store) put(key string, c cached) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= maxCacheSize {
		clear(s.cache)
	}
	s.cache[key] = c
}
