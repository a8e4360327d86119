// Package catalog supplies brands and guide content to the rest of the
// service. Content is read-only at runtime: it comes from files in a
// content directory or from a libSQL database populated by the importer.
package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

// ErrNotFound is returned for an unknown brand slug.
var ErrNotFound = errors.New("not found")

// DefaultGuideSlug names the guide used by brands without their own.
const DefaultGuideSlug = "default"

// Catalog looks up brands and the guide each brand is shown.
type Catalog interface {
	Brand(ctx context.Context, slug string) (guide.Brand, error)
	Guide(ctx context.Context, slug string) (*guide.Guide, error)
	Brands(ctx context.Context) ([]string, error)
}

// prepare orders steps by their explicit order, when any is given, and
// checks structural invariants.
func prepare(g *guide.Guide, name string) error {
	slices.SortStableFunc(g.Steps, func(a, b guide.Step) int {
		return cmp.Compare(a.Order, b.Order)
	})
	if err := g.Validate(); err != nil {
		return fmt.Errorf("guide %q: %w", name, err)
	}
	return nil
}
