package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

// Content file names, without extension.
const (
	brandsFile = "brands"
	stepsFile  = "steps"
	guidesDir  = "guides"
)

var extensions = []string{".json", ".yaml", ".yml"}

// FileSource serves content loaded once from a directory:
//
//	brands.{json,yaml,yml}        slug -> brand
//	steps.{json,yaml,yml}         the default guide
//	guides/<slug>.{json,yaml,yml} optional per-brand guide
type FileSource struct {
	brands    map[string]guide.Brand
	slugs     []string
	def       *guide.Guide
	overrides map[string]*guide.Guide
}

// OpenDir loads a FileSource from dir on disk.
func OpenDir(dir string) (*FileSource, error) {
	return Load(os.DirFS(dir))
}

// Load reads every content file from fsys.
func Load(fsys fs.FS) (*FileSource, error) {
	s := &FileSource{overrides: make(map[string]*guide.Guide)}

	if err := readDoc(fsys, brandsFile, &s.brands); err != nil {
		return nil, err
	}
	if len(s.brands) == 0 {
		return nil, fmt.Errorf("%s: no brands", brandsFile)
	}
	for slug := range s.brands {
		s.slugs = append(s.slugs, slug)
	}
	slices.Sort(s.slugs)

	s.def = new(guide.Guide)
	if err := readDoc(fsys, stepsFile, s.def); err != nil {
		return nil, err
	}
	if err := prepare(s.def, DefaultGuideSlug); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(fsys, guidesDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", guidesDir, err)
	}
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || !slices.Contains(extensions, ext) {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), ext)
		if _, ok := s.brands[slug]; !ok {
			return nil, fmt.Errorf("%s/%s: no brand %q", guidesDir, e.Name(), slug)
		}
		g := new(guide.Guide)
		if err := decodeFile(fsys, path.Join(guidesDir, e.Name()), g); err != nil {
			return nil, err
		}
		if err := prepare(g, slug); err != nil {
			return nil, err
		}
		s.overrides[slug] = g
	}
	return s, nil
}

// readDoc decodes the first of base.json, base.yaml, base.yml found.
func readDoc(fsys fs.FS, base string, v any) error {
	for _, ext := range extensions {
		name := base + ext
		if _, err := fs.Stat(fsys, name); err != nil {
			continue
		}
		return decodeFile(fsys, name, v)
	}
	return fmt.Errorf("%s: %w", base, fs.ErrNotExist)
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if path.Ext(name) == ".json" {
		err = json.Unmarshal(data, v)
	} else {
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

func (s *FileSource) Brand(_ context.Context, slug string) (guide.Brand, error) {
	b, ok := s.brands[slug]
	if !ok {
		return guide.Brand{}, fmt.Errorf("brand %q: %w", slug, ErrNotFound)
	}
	return b, nil
}

func (s *FileSource) Guide(_ context.Context, slug string) (*guide.Guide, error) {
	if _, ok := s.brands[slug]; !ok {
		return nil, fmt.Errorf("brand %q: %w", slug, ErrNotFound)
	}
	if g, ok := s.overrides[slug]; ok {
		return g, nil
	}
	return s.def, nil
}

func (s *FileSource) Brands(context.Context) ([]string, error) {
	return slices.Clone(s.slugs), nil
}

// DefaultGuide returns the guide shared by brands without an override.
func (s *FileSource) DefaultGuide() *guide.Guide { return s.def }

// Overrides returns the per-brand guides keyed by slug.
func (s *FileSource) Overrides() map[string]*guide.Guide { return s.overrides }
