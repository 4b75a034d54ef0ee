package scratch

import (
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gogpu/scratch/internal/cache"
	intImage "github.com/gogpu/scratch/internal/image"
)

// DefaultMaxMaskBytes caps how much of a mask source is read.
const DefaultMaxMaskBytes = 32 << 20

// SourceLoader is the default ImageLoader. Sources with an http or https
// scheme are fetched over HTTP; anything else is a path read from FS, or
// from the OS file system when FS is nil. Bundled masks are served by
// pointing FS at an embed.FS.
//
// PNG, JPEG, GIF, WebP, BMP and SVG masks are decoded.
type SourceLoader struct {
	// Client performs remote fetches. Nil means http.DefaultClient.
	Client *http.Client

	// FS resolves local paths. Nil means the OS file system.
	FS fs.FS

	// MaxBytes limits the size of a source. Zero means DefaultMaxMaskBytes.
	MaxBytes int64
}

// Load fetches and decodes source. Every failure is a *LoadError.
func (l *SourceLoader) Load(ctx context.Context, source string) (image.Image, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	img, format, err := intImage.DecodeBytes(data)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	Logger().Debug("scratch: mask decoded",
		"source", source, "format", format, "bytes", len(data),
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

func (l *SourceLoader) maxBytes() int64 {
	if l.MaxBytes > 0 {
		return l.MaxBytes
	}
	return DefaultMaxMaskBytes
}

func (l *SourceLoader) read(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if isRemote(source) {
		return l.fetch(ctx, source)
	}
	if l.FS != nil {
		name := strings.TrimPrefix(path.Clean(filepath.ToSlash(source)), "/")
		return l.readFile(l.FS.Open(name))
	}
	return l.readFile(os.Open(filepath.Clean(source)))
}

func (l *SourceLoader) fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return l.limit(resp.Body)
}

func (l *SourceLoader) limit(r io.Reader) ([]byte, error) {
	n := l.maxBytes()
	data, err := io.ReadAll(io.LimitReader(r, n+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > n {
		return nil, fmt.Errorf("mask larger than %d bytes", n)
	}
	return data, nil
}

func (l *SourceLoader) readFile(f fs.File, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return l.limit(f)
}

func isRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// DefaultMaskCacheBytes is the decoded-pixel budget of a CachingLoader
// created with a non-positive budget.
const DefaultMaskCacheBytes = 64 << 20

// CachingLoader remembers decoded masks by source so a card can be reset
// and redrawn without fetching again. Failed loads are not cached.
type CachingLoader struct {
	next  ImageLoader
	cache *cache.Cache[string, image.Image]
}

// NewCachingLoader wraps next with a cache of at most budget bytes of
// decoded pixels.
func NewCachingLoader(next ImageLoader, budget int64) *CachingLoader {
	if budget <= 0 {
		budget = DefaultMaskCacheBytes
	}
	return &CachingLoader{
		next:  next,
		cache: cache.New[string, image.Image](budget, cache.ImageCost),
	}
}

// Load returns the cached mask for source or loads it through the wrapped
// loader.
func (l *CachingLoader) Load(ctx context.Context, source string) (image.Image, error) {
	if img, ok := l.cache.Get(source); ok {
		Logger().Debug("scratch: mask cache hit", "source", source)
		return img, nil
	}
	img, err := l.next.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	l.cache.Set(source, img)
	return img, nil
}

// Forget drops source from the cache, for example after the file changed.
func (l *CachingLoader) Forget(source string) {
	l.cache.Delete(source)
}
