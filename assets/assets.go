// Package assets loads pet frame images and preloads whole animation sets.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds simultaneous decodes during a preload.
const DefaultConcurrency = 8

// Preloader fetches a set of frames ahead of playback. It returns an error
// describing every frame that failed; frames that loaded stay usable.
type Preloader interface {
	Preload(ctx context.Context, paths []string) error
}

// Library decodes frames from a file system and caches them by path. It is
// safe for concurrent use.
type Library struct {
	fsys        fs.FS
	concurrency int

	mu     sync.RWMutex
	images map[string]image.Image
}

// NewLibrary serves frames from fsys. Paths passed to the library are
// cleaned of a leading "./" before lookup.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{
		fsys:        fsys,
		concurrency: DefaultConcurrency,
		images:      make(map[string]image.Image),
	}
}

// NewDirLibrary serves frames relative to dir on disk.
func NewDirLibrary(dir string) *Library {
	return NewLibrary(os.DirFS(dir))
}

// SetConcurrency changes how many frames decode at once.
func (l *Library) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	l.concurrency = n
}

// Image returns a cached frame.
func (l *Library) Image(path string) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.images[cleanAssetPath(path)]
	return img, ok
}

// Len counts cached frames.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images)
}

// Load decodes one frame, caching it on success.
func (l *Library) Load(path string) (image.Image, error) {
	clean := cleanAssetPath(path)
	if img, ok := l.Image(clean); ok {
		return img, nil
	}
	b, err := fs.ReadFile(l.fsys, clean)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	l.mu.Lock()
	l.images[clean] = img
	l.mu.Unlock()
	return img, nil
}

// Preload decodes every path concurrently and waits for all of them. A
// failing frame never cancels the others.
func (l *Library) Preload(ctx context.Context, paths []string) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	g.SetLimit(l.concurrency)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", p, err))
				mu.Unlock()
				return nil
			}
			if _, err := l.Load(p); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", p, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) == 0 {
		return nil
	}
	return &PreloadError{Failed: len(errs), Total: len(paths), Err: errors.Join(errs...)}
}

// PreloadError reports a partially failed preload.
type PreloadError struct {
	Failed int
	Total  int
	Err    error
}

func (e *PreloadError) Error() string {
	return fmt.Sprintf("%d of %d frames failed to load: %v", e.Failed, e.Total, e.Err)
}

func (e *PreloadError) Unwrap() error { return e.Err }

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "./")
	return strings.TrimPrefix(s, "/")
}
