package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

// SQLSource serves content stored as JSONB documents in the brands and
// guides tables. The default guide is stored under DefaultGuideSlug.
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

func (s *SQLSource) get(ctx context.Context, table, slug string, dest any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s WHERE slug = ?`, table), slug,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("querying %s %q: %w", table, slug, err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("decoding %s %q: %w", table, slug, err)
	}
	return nil
}

func (s *SQLSource) Brand(ctx context.Context, slug string) (guide.Brand, error) {
	var b guide.Brand
	if err := s.get(ctx, "brands", slug, &b); err != nil {
		return guide.Brand{}, fmt.Errorf("brand %q: %w", slug, err)
	}
	return b, nil
}

func (s *SQLSource) Guide(ctx context.Context, slug string) (*guide.Guide, error) {
	if _, err := s.Brand(ctx, slug); err != nil {
		return nil, err
	}
	g := new(guide.Guide)
	err := s.get(ctx, "guides", slug, g)
	if errors.Is(err, ErrNotFound) {
		slug = DefaultGuideSlug
		err = s.get(ctx, "guides", slug, g)
	}
	if err != nil {
		return nil, fmt.Errorf("guide %q: %w", slug, err)
	}
	if err := prepare(g, slug); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *SQLSource) Brands(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug FROM brands ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// ImportResult counts what Import wrote.
type ImportResult struct {
	Brands int
	Guides int
}

// Snapshot is a content source that can be copied as a whole. FileSource
// implements it.
type Snapshot interface {
	Catalog
	DefaultGuide() *guide.Guide
	Overrides() map[string]*guide.Guide
}

// Import replaces the database content with src in one transaction.
func (s *SQLSource) Import(ctx context.Context, src Snapshot) (ImportResult, error) {
	var res ImportResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"guides", "brands"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return res, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	slugs, err := src.Brands(ctx)
	if err != nil {
		return res, fmt.Errorf("listing brands: %w", err)
	}
	for _, slug := range slugs {
		b, err := src.Brand(ctx, slug)
		if err != nil {
			return res, fmt.Errorf("reading brand %q: %w", slug, err)
		}
		if err := putDoc(ctx, tx, "brands", slug, b); err != nil {
			return res, err
		}
		res.Brands++
	}

	if err := putDoc(ctx, tx, "guides", DefaultGuideSlug, src.DefaultGuide()); err != nil {
		return res, err
	}
	res.Guides++
	for slug, g := range src.Overrides() {
		if err := putDoc(ctx, tx, "guides", slug, g); err != nil {
			return res, err
		}
		res.Guides++
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("committing import: %w", err)
	}
	return res, nil
}

func putDoc(ctx context.Context, tx *sql.Tx, table, slug string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s %q: %w", table, slug, err)
	}
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (slug, data) VALUES (?, jsonb(?))`, table),
		slug, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing %s %q: %w", table, slug, err)
	}
	return nil
}
