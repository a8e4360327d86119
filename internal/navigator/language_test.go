package navigator

import (
	"net/url"
	"testing"
)

func TestMatchPreference(t *testing.T) {
	tests := []struct {
		name       string
		languages  []string
		preference string
		want       string
		ok         bool
	}{
		{"exact", []string{"en", "ru"}, "ru", "ru", true},
		{"weighted list", []string{"en", "ru"}, "de-DE,de;q=0.9,ru;q=0.5", "ru", true},
		{"region stripped", []string{"en", "ar"}, "ar-EG", "ar", true},
		{"no overlap", []string{"en", "fr"}, "ru", "", false},
		{"empty preference", []string{"en"}, "", "", false},
		{"garbage", []string{"en"}, ";;;q=", "", false},
		{"no languages", nil, "en", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchPreference(tt.languages, tt.preference)
			if got != tt.want || ok != tt.ok {
				t.Errorf("MatchPreference(%v, %q) = (%q, %v), want (%q, %v)",
					tt.languages, tt.preference, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInitialLanguage(t *testing.T) {
	g := testGuide("en", "ru")

	if got := InitialLanguage(g, url.Values{"lang": {"ru"}}, ""); got != "ru" {
		t.Errorf("lang param = %q", got)
	}
	if got := InitialLanguage(g, url.Values{"lang": {"en"}}, "ru"); got != "en" {
		t.Errorf("lang param with preference = %q", got)
	}
	if got := InitialLanguage(g, nil, "fr"); got != "en" {
		t.Errorf("unmatched preference = %q", got)
	}
}
