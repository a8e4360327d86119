package catalog

import (
	"context"
	"errors"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/alexk15655-dotcom/MCGuide/internal/database"
	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
	"github.com/alexk15655-dotcom/MCGuide/internal/migrations"
)

const brandsYAML = `
acme:
  name: Acme Pay
  logo: /logos/acme.svg
  primary: "#ff6600"
  secondary: "#222222"
  background: "#0b0b0b"
beta:
  name: Beta
  logo: /logos/beta.svg
  primary: "#00aaff"
  secondary: "#ffffff"
  background: "#101820"
`

const stepsJSON = `{
  "languages": ["en", "ru"],
  "defaultLanguage": "en",
  "languageNames": {"en": "English", "ru": "Русский"},
  "steps": [
    {"id": "second", "order": 2, "title": {"en": "Second"}, "content": {"en": "b"}},
    {"id": "first", "order": 1, "title": {"en": "Welcome to {brand}"}, "content": {"en": "a"},
     "notes": {"en": "note"}}
  ]
}`

const betaGuideYAML = `
languages: [en]
defaultLanguage: en
steps:
  - id: only
    title: {en: Beta only}
    content: {en: "Line one\nLine two"}
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"brands.yaml":     {Data: []byte(brandsYAML)},
		"steps.json":      {Data: []byte(stepsJSON)},
		"guides/beta.yml": {Data: []byte(betaGuideYAML)},
		"guides/README":   {Data: []byte("ignored")},
	}
}

func TestLoad(t *testing.T) {
	src, err := Load(testFS())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ctx := context.Background()

	slugs, _ := src.Brands(ctx)
	if !slices.Equal(slugs, []string{"acme", "beta"}) {
		t.Errorf("brands = %v", slugs)
	}

	b, err := src.Brand(ctx, "acme")
	if err != nil || b.Name != "Acme Pay" || b.Primary != "#ff6600" {
		t.Errorf("Brand(acme) = %+v, %v", b, err)
	}

	g, err := src.Guide(ctx, "acme")
	if err != nil {
		t.Fatalf("Guide(acme): %v", err)
	}
	if g.Steps[0].ID != "first" || g.Steps[1].ID != "second" {
		t.Errorf("steps not ordered: %s, %s", g.Steps[0].ID, g.Steps[1].ID)
	}

	beta, _ := src.Guide(ctx, "beta")
	if len(beta.Steps) != 1 || beta.Steps[0].Content["en"] != "Line one\nLine two" {
		t.Errorf("beta guide = %+v", beta)
	}
}

func TestLoadNotFound(t *testing.T) {
	src, err := Load(testFS())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ctx := context.Background()

	if _, err := src.Brand(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Brand err = %v", err)
	}
	if _, err := src.Guide(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Guide err = %v", err)
	}
}

func TestLoadRejectsBadContent(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{"missing brands", fstest.MapFS{"steps.json": {Data: []byte(stepsJSON)}}},
		{"missing steps", fstest.MapFS{"brands.yaml": {Data: []byte(brandsYAML)}}},
		{"default not offered", fstest.MapFS{
			"brands.yaml": {Data: []byte(brandsYAML)},
			"steps.yaml":  {Data: []byte("languages: [ru]\ndefaultLanguage: en\n")},
		}},
		{"override for unknown brand", fstest.MapFS{
			"brands.yaml":      {Data: []byte(brandsYAML)},
			"steps.json":       {Data: []byte(stepsJSON)},
			"guides/ghost.yml": {Data: []byte(betaGuideYAML)},
		}},
		{"malformed json", fstest.MapFS{
			"brands.yaml": {Data: []byte(brandsYAML)},
			"steps.json":  {Data: []byte("{")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.fs); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func openTestDB(t *testing.T) *SQLSource {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return NewSQLSource(db)
}

func TestSQLSourceImport(t *testing.T) {
	ctx := context.Background()
	files, err := Load(testFS())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	src := openTestDB(t)

	res, err := src.Import(ctx, files)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Brands != 2 || res.Guides != 2 {
		t.Errorf("import result = %+v", res)
	}

	// A second import replaces rather than duplicates.
	if _, err := src.Import(ctx, files); err != nil {
		t.Fatalf("re-Import: %v", err)
	}

	slugs, err := src.Brands(ctx)
	if err != nil || !slices.Equal(slugs, []string{"acme", "beta"}) {
		t.Errorf("Brands = %v, %v", slugs, err)
	}

	b, err := src.Brand(ctx, "beta")
	if err != nil || b.Background != "#101820" {
		t.Errorf("Brand(beta) = %+v, %v", b, err)
	}

	g, err := src.Guide(ctx, "acme")
	if err != nil {
		t.Fatalf("Guide(acme): %v", err)
	}
	if g.DefaultLanguage != "en" || len(g.Steps) != 2 || g.Steps[0].Notes["en"] != "note" {
		t.Errorf("default guide = %+v", g)
	}

	beta, err := src.Guide(ctx, "beta")
	if err != nil || beta.Steps[0].ID != "only" {
		t.Errorf("Guide(beta) = %+v, %v", beta, err)
	}

	if _, err := src.Guide(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Guide(nope) err = %v", err)
	}
}

type brokenSnapshot struct {
	*FileSource
	failSlug string
}

func (b brokenSnapshot) Brand(ctx context.Context, slug string) (guide.Brand, error) {
	if slug == b.failSlug {
		return guide.Brand{}, errBroken
	}
	return b.FileSource.Brand(ctx, slug)
}

var errBroken = errors.New("broken source")

func TestSQLSourceImportSourceError(t *testing.T) {
	ctx := context.Background()
	files, err := Load(testFS())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	src := openTestDB(t)
	if _, err := src.Import(ctx, files); err != nil {
		t.Fatalf("Import: %v", err)
	}

	_, err = src.Import(ctx, brokenSnapshot{FileSource: files, failSlug: "beta"})
	if !errors.Is(err, errBroken) {
		t.Fatalf("Import err = %v, want errBroken", err)
	}

	// The failed import rolled back and the earlier content is intact.
	slugs, err := src.Brands(ctx)
	if err != nil || !slices.Equal(slugs, []string{"acme", "beta"}) {
		t.Errorf("Brands after failed import = %v, %v", slugs, err)
	}
}

type countingCatalog struct {
	Catalog
	loads int
}

func (c *countingCatalog) Guide(ctx context.Context, slug string) (*guide.Guide, error) {
	c.loads++
	return c.Catalog.Guide(ctx, slug)
}

func TestRegistryCaches(t *testing.T) {
	ctx := context.Background()
	files, err := Load(testFS())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	src := &countingCatalog{Catalog: files}
	reg := NewRegistry(src)

	first, err := reg.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, _ := reg.Get(ctx, "acme")
	if first != second || src.loads != 1 {
		t.Errorf("bundle not cached: loads = %d", src.loads)
	}
	if first.Brand.Name != "Acme Pay" || first.Slug != "acme" {
		t.Errorf("bundle = %+v", first)
	}

	for i := 0; i < 2; i++ {
		if _, err := reg.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(nope) err = %v", err)
		}
	}
	if err := reg.Check(ctx); err != nil {
		t.Errorf("Check: %v", err)
	}
}
