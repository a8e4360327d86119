package navigator

import (
	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
	"github.com/alexk15655-dotcom/MCGuide/internal/resolver"
)

// State is a snapshot of the navigator's own fields.
type State struct {
	Step          int          `json:"step"`
	Language      string       `json:"lang"`
	Dir           resolver.Dir `json:"dir"`
	Menu          Menu         `json:"menu"`
	Transitioning bool         `json:"transitioning"`
	Address       string       `json:"address"`
}

// LanguageOption is one entry of the language picker.
type LanguageOption struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

// View is everything a page needs to draw the current step.
type View struct {
	State
	Brand       guide.Brand         `json:"brand"`
	Total       int                 `json:"total"`
	Progress    float64             `json:"progress"`
	Current     *resolver.Step      `json:"current,omitempty"`
	TOC         []resolver.TOCEntry `json:"toc"`
	Languages   []LanguageOption    `json:"languages"`
	Labels      map[string]string   `json:"labels"`
	HasPrevious bool                `json:"hasPrevious"`
	HasNext     bool                `json:"hasNext"`
}

// State returns the current state.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state()
}

func (n *Navigator) state() State {
	return State{
		Step:          n.step,
		Language:      n.lang,
		Dir:           n.dir,
		Menu:          n.menu,
		Transitioning: n.transitioning,
		Address:       n.address.String(),
	}
}

// View resolves the current step and its surroundings.
func (n *Navigator) View() View {
	n.mu.Lock()
	st := n.state()
	b := n.brand
	n.mu.Unlock()

	return BuildView(n.guide, b, st, n.labels)
}

// BuildView resolves st against g. It is shared with pages that render
// without a mounted navigator.
func BuildView(g *guide.Guide, b guide.Brand, st State, labels *resolver.Labels) View {
	total := len(g.Steps)
	v := View{
		State:       st,
		Brand:       b,
		Total:       total,
		TOC:         resolver.TableOfContents(g, b, st.Language, st.Step),
		Labels:      labels.For(st.Language, g.DefaultLanguage),
		HasPrevious: st.Step > 0,
		HasNext:     st.Step < total-1,
	}
	if p, err := resolver.ComputeProgress(st.Step, total); err == nil {
		v.Progress = p
	}
	if s, err := resolver.ResolveStep(g, b, st.Step, st.Language); err == nil {
		v.Current = &s
	}
	for _, code := range g.Languages {
		v.Languages = append(v.Languages, LanguageOption{
			Code:    code,
			Name:    g.LanguageName(code),
			Current: code == st.Language,
		})
	}
	return v
}
