// Package resolver turns a guide step into what should be displayed for a
// requested language. Every function here is pure: no state, no I/O.
//
// Language fallback is exactly two levels deep: the requested language,
// then the guide's default language. There is no chain through a third
// language.
package resolver

import (
	"errors"
	"fmt"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

// ErrStepOutOfRange is returned when a step index is outside the guide.
var ErrStepOutOfRange = errors.New("step index out of range")

// ResolveField returns the field's value in lang, else in def. ok is false
// when neither language has an entry, which callers render as nothing.
// An entry that exists but is empty still counts as present.
func ResolveField[T any](field guide.Localized[T], lang, def string) (v T, ok bool) {
	if field == nil {
		return v, false
	}
	if v, ok := field[lang]; ok {
		return v, true
	}
	if v, ok := field[def]; ok {
		return v, true
	}
	return v, false
}

// ResolveLocalizedText resolves a required text field. Empty values fall
// through to the default language and finally to "".
func ResolveLocalizedText(m guide.Localized[string], lang, def string) string {
	if v := m[lang]; v != "" {
		return v
	}
	return m[def]
}

// ResolveStepField is ResolveField addressed by field name.
func ResolveStepField(s guide.Step, name guide.Field, lang, def string) (any, bool) {
	switch name {
	case guide.FieldTitle:
		return ResolveField(s.Title, lang, def)
	case guide.FieldContent:
		return ResolveField(s.Content, lang, def)
	case guide.FieldListItems:
		return ResolveField(s.ListItems, lang, def)
	case guide.FieldNumberedSteps:
		return ResolveField(s.NumberedSteps, lang, def)
	case guide.FieldColumns:
		return ResolveField(s.Columns, lang, def)
	case guide.FieldErrorCards:
		return ResolveField(s.ErrorCards, lang, def)
	case guide.FieldNotes:
		return ResolveField(s.Notes, lang, def)
	case guide.FieldWarning:
		return ResolveField(s.Warning, lang, def)
	}
	return nil, false
}

// Step is a fully resolved, brand-substituted step. Optional parts are
// nil or empty when the step does not carry them in either language.
type Step struct {
	Index         int               `json:"index"`
	ID            string            `json:"id"`
	Language      string            `json:"language"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	ListItems     []string          `json:"listItems,omitempty"`
	NumberedSteps []string          `json:"numberedSteps,omitempty"`
	Columns       *guide.Columns    `json:"columns,omitempty"`
	ErrorCards    []guide.ErrorCard `json:"errorCards,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Warning       string            `json:"warning,omitempty"`
	Image         string            `json:"image,omitempty"`
}

// ResolveStep resolves the step at index for lang.
func ResolveStep(g *guide.Guide, b guide.Brand, index int, lang string) (Step, error) {
	if index < 0 || index >= len(g.Steps) {
		return Step{}, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, index, len(g.Steps))
	}
	s := g.Steps[index]
	def := g.DefaultLanguage
	t := func(text string) string { return SubstituteBrandName(text, b.Name) }

	out := Step{
		Index:    index,
		ID:       s.ID,
		Language: lang,
		Title:    t(ResolveLocalizedText(s.Title, lang, def)),
		Content:  t(ResolveLocalizedText(s.Content, lang, def)),
		Image:    s.Image,
	}
	if items, ok := ResolveField(s.ListItems, lang, def); ok {
		out.ListItems = substituteAll(items, b.Name)
	}
	if items, ok := ResolveField(s.NumberedSteps, lang, def); ok {
		out.NumberedSteps = substituteAll(items, b.Name)
	}
	if cols, ok := ResolveField(s.Columns, lang, def); ok {
		out.Columns = &guide.Columns{
			Decrease: t(cols.Decrease),
			Increase: t(cols.Increase),
		}
	}
	if cards, ok := ResolveField(s.ErrorCards, lang, def); ok {
		out.ErrorCards = make([]guide.ErrorCard, len(cards))
		for i, c := range cards {
			out.ErrorCards[i] = guide.ErrorCard{
				Title:       t(c.Title),
				Description: t(c.Description),
				Solution:    t(c.Solution),
				Image:       c.Image,
			}
		}
	}
	if v, ok := ResolveField(s.Notes, lang, def); ok {
		out.Notes = t(v)
	}
	if v, ok := ResolveField(s.Warning, lang, def); ok {
		out.Warning = t(v)
	}
	return out, nil
}

func substituteAll(items []string, brandName string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = SubstituteBrandName(item, brandName)
	}
	return out
}

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Current bool   `json:"current"`
}

// TableOfContents lists every step title in guide order.
func TableOfContents(g *guide.Guide, b guide.Brand, lang string, current int) []TOCEntry {
	out := make([]TOCEntry, len(g.Steps))
	for i, s := range g.Steps {
		out[i] = TOCEntry{
			Index:   i,
			ID:      s.ID,
			Title:   SubstituteBrandName(ResolveLocalizedText(s.Title, lang, g.DefaultLanguage), b.Name),
			Current: i == current,
		}
	}
	return out
}
