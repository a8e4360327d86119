package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

var errNoBrands = errors.New("catalog has no brands")

// Bundle is everything needed to show one brand's guide.
type Bundle struct {
	Slug  string
	Brand guide.Brand
	Guide *guide.Guide
}

// Registry caches bundles per slug in front of a Catalog. Unknown slugs
// are not cached.
type Registry struct {
	src     Catalog
	mu      sync.RWMutex
	bundles map[string]*Bundle
}

func NewRegistry(src Catalog) *Registry {
	return &Registry{
		src:     src,
		bundles: make(map[string]*Bundle),
	}
}

func (r *Registry) Get(ctx context.Context, slug string) (*Bundle, error) {
	r.mu.RLock()
	b, ok := r.bundles[slug]
	r.mu.RUnlock()
	if ok {
		return b, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock.
	if b, ok := r.bundles[slug]; ok {
		return b, nil
	}

	b, err := r.load(ctx, slug)
	if err != nil {
		return nil, err
	}
	r.bundles[slug] = b
	return b, nil
}

func (r *Registry) load(ctx context.Context, slug string) (*Bundle, error) {
	brand, err := r.src.Brand(ctx, slug)
	if err != nil {
		return nil, err
	}
	g, err := r.src.Guide(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("loading guide for %q: %w", slug, err)
	}
	return &Bundle{Slug: slug, Brand: brand, Guide: g}, nil
}

// Brands lists every brand slug in the underlying catalog.
func (r *Registry) Brands(ctx context.Context) ([]string, error) {
	return r.src.Brands(ctx)
}

// Check reports whether the catalog can list at least one brand.
func (r *Registry) Check(ctx context.Context) error {
	slugs, err := r.src.Brands(ctx)
	if err != nil {
		return err
	}
	if len(slugs) == 0 {
		return errNoBrands
	}
	return nil
}
