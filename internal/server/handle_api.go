package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alexk15655-dotcom/MCGuide/internal/navigator"
	"github.com/alexk15655-dotcom/MCGuide/internal/resolver"
)

// GuideResponse describes a brand's guide without step bodies.
type GuideResponse struct {
	Brand           string                     `json:"brand"`
	Name            string                     `json:"name"`
	Logo            string                     `json:"logo,omitempty"`
	Language        string                     `json:"lang"`
	Dir             resolver.Dir               `json:"dir"`
	DefaultLanguage string                     `json:"defaultLanguage"`
	Languages       []navigator.LanguageOption `json:"languages"`
	Theme           resolver.Theme             `json:"theme"`
	Total           int                        `json:"total"`
	TOC             []resolver.TOCEntry        `json:"toc"`
	Labels          map[string]string          `json:"labels"`
}

// StepResponse is one resolved step.
type StepResponse struct {
	Step     resolver.Step `json:"step"`
	Total    int           `json:"total"`
	Progress float64       `json:"progress"`
	Dir      resolver.Dir  `json:"dir"`
}

func handleGetGuide(labels *resolver.Labels) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := bundleFrom(r)
		st := initialState(b.Guide, r)
		v := navigator.BuildView(b.Guide, b.Brand, st, labels)

		writeJSON(w, http.StatusOK, GuideResponse{
			Brand:           b.Slug,
			Name:            b.Brand.Name,
			Logo:            b.Brand.Logo,
			Language:        v.Language,
			Dir:             v.Dir,
			DefaultLanguage: b.Guide.DefaultLanguage,
			Languages:       v.Languages,
			Theme:           resolver.ThemeFor(b.Brand),
			Total:           v.Total,
			TOC:             v.TOC,
			Labels:          v.Labels,
		})
	}
}

func handleGetStep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := bundleFrom(r)

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "step index must be an integer")
			return
		}
		st := initialState(b.Guide, r)

		step, err := resolver.ResolveStep(b.Guide, b.Brand, index, st.Language)
		if err != nil {
			writeError(w, http.StatusNotFound, "step not found")
			return
		}
		progress, _ := resolver.ComputeProgress(index, len(b.Guide.Steps))

		writeJSON(w, http.StatusOK, StepResponse{
			Step:     step,
			Total:    len(b.Guide.Steps),
			Progress: progress,
			Dir:      st.Dir,
		})
	}
}
