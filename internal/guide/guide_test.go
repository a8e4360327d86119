package guide

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		guide   Guide
		wantErr error
	}{
		{
			name: "valid",
			guide: Guide{
				Languages:       []string{"en", "ru"},
				DefaultLanguage: "en",
				Steps:           []Step{{ID: "a"}, {ID: "b"}},
			},
		},
		{
			name:    "no languages",
			guide:   Guide{DefaultLanguage: "en"},
			wantErr: ErrNoLanguages,
		},
		{
			name:    "default not offered",
			guide:   Guide{Languages: []string{"ru"}, DefaultLanguage: "en"},
			wantErr: ErrDefaultLanguage,
		},
		{
			name: "duplicate step",
			guide: Guide{
				Languages:       []string{"en"},
				DefaultLanguage: "en",
				Steps:           []Step{{ID: "a"}, {ID: "a"}},
			},
			wantErr: ErrDuplicateStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guide.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeStep(t *testing.T) {
	raw := `{
		"id": "limits",
		"title": {"en": "Limits", "ru": "Лимиты"},
		"content": {"en": "Body"},
		"columns": {"en": {"decrease": "down", "increase": "up"}},
		"errorCards": {"en": [{"title": "E1", "description": "d", "solution": "s", "image": "/e1.png"}]}
	}`

	var s Step
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Title["ru"] != "Лимиты" {
		t.Errorf("title[ru] = %q", s.Title["ru"])
	}
	if s.Columns["en"].Increase != "up" {
		t.Errorf("columns[en].increase = %q", s.Columns["en"].Increase)
	}
	if got := s.ErrorCards["en"][0].Image; got != "/e1.png" {
		t.Errorf("errorCards[en][0].image = %q", got)
	}
	if s.Notes != nil {
		t.Errorf("notes = %v, want nil", s.Notes)
	}
}

func TestStepIndexAndLanguageName(t *testing.T) {
	g := Guide{
		Languages:     []string{"en", "ru"},
		LanguageNames: map[string]string{"en": "English"},
		Steps:         []Step{{ID: "intro"}, {ID: "limits"}},
	}

	if i, ok := g.StepIndex("limits"); !ok || i != 1 {
		t.Errorf("StepIndex(limits) = %d, %v", i, ok)
	}
	if _, ok := g.StepIndex("missing"); ok {
		t.Error("StepIndex(missing) found")
	}
	if got := g.LanguageName("en"); got != "English" {
		t.Errorf("LanguageName(en) = %q", got)
	}
	if got := g.LanguageName("ru"); got != "ru" {
		t.Errorf("LanguageName(ru) = %q", got)
	}
}
