// Package guide defines the content model of a branded step-by-step guide.
// It has no dependencies outside the standard library.
package guide

import (
	"errors"
	"fmt"
)

// Localized maps a language code to a value in that language.
type Localized[T any] map[string]T

// Brand is the white-label identity a guide is rendered for.
type Brand struct {
	Name       string `json:"name" yaml:"name"`
	Logo       string `json:"logo" yaml:"logo"`
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Background string `json:"background" yaml:"background"`
}

// Columns is a two-sided comparison card.
type Columns struct {
	Decrease string `json:"decrease" yaml:"decrease"`
	Increase string `json:"increase" yaml:"increase"`
}

// ErrorCard describes one error a user may hit and how to resolve it.
type ErrorCard struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Solution    string `json:"solution" yaml:"solution"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Step is one page of a guide. Title and Content are required; every other
// localized field may be nil.
type Step struct {
	ID            string                 `json:"id" yaml:"id"`
	Order         int                    `json:"order,omitempty" yaml:"order,omitempty"`
	Title         Localized[string]      `json:"title" yaml:"title"`
	Content       Localized[string]      `json:"content" yaml:"content"`
	ListItems     Localized[[]string]    `json:"listItems,omitempty" yaml:"listItems,omitempty"`
	NumberedSteps Localized[[]string]    `json:"numberedSteps,omitempty" yaml:"numberedSteps,omitempty"`
	Columns       Localized[Columns]     `json:"columns,omitempty" yaml:"columns,omitempty"`
	ErrorCards    Localized[[]ErrorCard] `json:"errorCards,omitempty" yaml:"errorCards,omitempty"`
	Notes         Localized[string]      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Warning       Localized[string]      `json:"warning,omitempty" yaml:"warning,omitempty"`
	Image         string                 `json:"image,omitempty" yaml:"image,omitempty"`
}

// Guide is the ordered set of steps plus its language configuration.
type Guide struct {
	Languages       []string          `json:"languages" yaml:"languages"`
	DefaultLanguage string            `json:"defaultLanguage" yaml:"defaultLanguage"`
	LanguageNames   map[string]string `json:"languageNames" yaml:"languageNames"`
	Steps           []Step            `json:"steps" yaml:"steps"`
}

// Field names a localized step field.
type Field string

const (
	FieldTitle         Field = "title"
	FieldContent       Field = "content"
	FieldListItems     Field = "listItems"
	FieldNumberedSteps Field = "numberedSteps"
	FieldColumns       Field = "columns"
	FieldErrorCards    Field = "errorCards"
	FieldNotes         Field = "notes"
	FieldWarning       Field = "warning"
)

// Fields lists every localized step field in display order.
var Fields = []Field{
	FieldTitle,
	FieldContent,
	FieldListItems,
	FieldNumberedSteps,
	FieldColumns,
	FieldErrorCards,
	FieldNotes,
	FieldWarning,
}

// Offers reports whether code is one of the guide's configured languages.
func (g *Guide) Offers(code string) bool {
	for _, l := range g.Languages {
		if l == code {
			return true
		}
	}
	return false
}

// LanguageName returns the display label for code, or code itself.
func (g *Guide) LanguageName(code string) string {
	if name, ok := g.LanguageNames[code]; ok && name != "" {
		return name
	}
	return code
}

// StepIndex returns the position of the step with the given id.
func (g *Guide) StepIndex(id string) (int, bool) {
	for i, s := range g.Steps {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}

var (
	ErrNoLanguages     = errors.New("guide has no languages")
	ErrDefaultLanguage = errors.New("default language is not offered")
	ErrDuplicateStep   = errors.New("duplicate step id")
)

// Validate checks the structural invariants of a guide. It does not check
// that every field is translated.
func (g *Guide) Validate() error {
	if len(g.Languages) == 0 {
		return ErrNoLanguages
	}
	if !g.Offers(g.DefaultLanguage) {
		return fmt.Errorf("%w: %q", ErrDefaultLanguage, g.DefaultLanguage)
	}
	seen := make(map[string]struct{}, len(g.Steps))
	for _, s := range g.Steps {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateStep, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
