package navigator

import (
	"net/url"

	"golang.org/x/text/language"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

// Address query parameters.
const (
	// LangParam carries the active language.
	LangParam = "lang"
	// StepParam deep-links to a step by id. It is read once, at mount.
	StepParam = "step"
)

// InitialLanguage picks the language a guide opens in. A recognized lang
// parameter wins outright. Otherwise the environment preference is matched
// against the guide's languages, and failing that the default is used.
// An unrecognized lang parameter is treated as if it were absent.
func InitialLanguage(g *guide.Guide, query url.Values, preference string) string {
	if code := query.Get(LangParam); code != "" && g.Offers(code) {
		return code
	}
	if code, ok := MatchPreference(g.Languages, preference); ok {
		return code
	}
	return g.DefaultLanguage
}

// MatchPreference matches an Accept-Language style preference list
// ("ru-RU,ru;q=0.9,en;q=0.8" or just "ru") against the offered languages.
func MatchPreference(languages []string, preference string) (string, bool) {
	if preference == "" || len(languages) == 0 {
		return "", false
	}
	prefs, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(prefs) == 0 {
		return "", false
	}

	supported := make([]language.Tag, 0, len(languages))
	codes := make([]string, 0, len(languages))
	for _, code := range languages {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		codes = append(codes, code)
	}
	if len(supported) == 0 {
		return "", false
	}

	_, idx, conf := language.NewMatcher(supported).Match(prefs...)
	// The matcher falls back to the first supported tag with No confidence.
	if conf == language.No {
		return "", false
	}
	return codes[idx], true
}
