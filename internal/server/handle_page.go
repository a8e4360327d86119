package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexk15655-dotcom/MCGuide/internal/catalog"
	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
	"github.com/alexk15655-dotcom/MCGuide/internal/navigator"
	"github.com/alexk15655-dotcom/MCGuide/internal/resolver"
)

type pageData struct {
	Lang        string
	Dir         resolver.Dir
	Title       string
	Description string
	Theme       *resolver.Theme
	LiveURL     string
	Guide       guideData
	Brands      []brandLink
}

type brandLink struct {
	Slug string
	Name string
}

// guideData is what the "guide" template draws, both for full pages and
// for live updates.
type guideData struct {
	navigator.View
	Slug     string
	StepID   string
	PrevHref string
	NextHref string
}

func newGuideData(slug string, g *guide.Guide, v navigator.View) guideData {
	d := guideData{View: v, Slug: slug}
	if v.Current != nil {
		d.StepID = v.Current.ID
	}
	if v.HasPrevious {
		d.PrevHref = stepHref(slug, g.Steps[v.Step-1].ID, v.Language)
	}
	if v.HasNext {
		d.NextHref = stepHref(slug, g.Steps[v.Step+1].ID, v.Language)
	}
	return d
}

func stepHref(slug, id, lang string) string {
	q := url.Values{}
	q.Set(navigator.LangParam, lang)
	if id != "" {
		q.Set(navigator.StepParam, id)
	}
	return (&url.URL{Path: "/" + slug, RawQuery: q.Encode()}).String()
}

// initialState is the state a freshly mounted navigator would have for r.
func initialState(g *guide.Guide, r *http.Request) navigator.State {
	q := r.URL.Query()
	lang := navigator.InitialLanguage(g, q, r.Header.Get("Accept-Language"))
	st := navigator.State{
		Language: lang,
		Dir:      resolver.Direction(lang),
		Menu:     navigator.MenuNone,
		Address:  r.URL.String(),
	}
	if i, ok := g.StepIndex(q.Get(navigator.StepParam)); ok {
		st.Step = i
	}
	return st
}

func handleGuidePage(labels *resolver.Labels, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := bundleFrom(r)
		st := initialState(b.Guide, r)
		view := navigator.BuildView(b.Guide, b.Brand, st, labels)
		theme := resolver.ThemeFor(b.Brand)

		live := url.URL{Path: "/api/" + b.Slug + "/live", RawQuery: r.URL.RawQuery}

		data := pageData{
			Lang:        st.Language,
			Dir:         st.Dir,
			Title:       b.Brand.Name + " - " + labels.Lookup(resolver.LabelGuide, st.Language, b.Guide.DefaultLanguage),
			Description: resolver.SubstituteBrandName(labels.Lookup(resolver.LabelGuideDescription, st.Language, b.Guide.DefaultLanguage), b.Brand.Name),
			Theme:       &theme,
			LiveURL:     live.String(),
			Guide:       newGuideData(b.Slug, b.Guide, view),
		}
		render(w, logger, http.StatusOK, "guide-page", data)
	}
}

func handleNotFoundPage(labels *resolver.Labels, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := "en"
		if code, ok := navigator.MatchPreference(labelLanguages, r.Header.Get("Accept-Language")); ok {
			lang = code
		}
		render(w, logger, http.StatusNotFound, "not-found", pageData{
			Lang:  lang,
			Dir:   resolver.Direction(lang),
			Title: labels.Lookup(resolver.LabelNotFound, lang, "en"),
		})
	}
}

// labelLanguages are the languages the built-in label table covers.
var labelLanguages = []string{"en", "ru", "ar"}

func handleBrandIndex(reg *catalog.Registry, labels *resolver.Labels, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := brandLinks(r.Context(), reg)
		if err != nil {
			logger.Error("listing brands", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		lang := "en"
		if code, ok := navigator.MatchPreference(labelLanguages, r.Header.Get("Accept-Language")); ok {
			lang = code
		}
		render(w, logger, http.StatusOK, "brand-index", pageData{
			Lang:   lang,
			Dir:    resolver.Direction(lang),
			Title:  labels.Lookup(resolver.LabelBrands, lang, "en"),
			Brands: links,
		})
	}
}

func brandLinks(ctx context.Context, reg *catalog.Registry) ([]brandLink, error) {
	slugs, err := reg.Brands(ctx)
	if err != nil {
		return nil, err
	}
	links := make([]brandLink, 0, len(slugs))
	for _, slug := range slugs {
		b, err := reg.Get(ctx, slug)
		if err != nil {
			return nil, err
		}
		links = append(links, brandLink{Slug: slug, Name: b.Brand.Name})
	}
	return links, nil
}

func render(w http.ResponseWriter, logger *slog.Logger, status int, name string, data any) {
	body, err := renderFragment(name, data)
	if err != nil {
		logger.Error("rendering template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
