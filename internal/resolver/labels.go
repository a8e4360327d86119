package resolver

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

// Label names a piece of interface text.
type Label string

const (
	LabelStep             Label = "step"
	LabelBack             Label = "back"
	LabelNext             Label = "next"
	LabelDecreases        Label = "decreases"
	LabelIncreases        Label = "increases"
	LabelSolution         Label = "solution"
	LabelContents         Label = "contents"
	LabelLanguage         Label = "language"
	LabelGoToStep         Label = "goToStep"
	LabelNotFound         Label = "notFound"
	LabelGuide            Label = "guide"
	LabelGuideDescription Label = "guideDescription"
	LabelBrands           Label = "brands"
)

// baseLabelLanguage is consulted when neither the requested nor the guide
// default language has a label.
const baseLabelLanguage = "en"

//go:embed labels.yaml
var labelsYAML []byte

// Labels is the interface text table keyed by (label, language).
type Labels struct {
	table map[Label]guide.Localized[string]
}

var defaultLabels = mustParseLabels(labelsYAML)

// DefaultLabels returns the embedded label table.
func DefaultLabels() *Labels { return defaultLabels }

// ParseLabels decodes a YAML label table.
func ParseLabels(data []byte) (*Labels, error) {
	var table map[Label]guide.Localized[string]
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing labels: %w", err)
	}
	return &Labels{table: table}, nil
}

func mustParseLabels(data []byte) *Labels {
	l, err := ParseLabels(data)
	if err != nil {
		panic(err)
	}
	return l
}

// Lookup resolves label the same way content text is resolved, then falls
// back to English and finally to the label name.
func (l *Labels) Lookup(label Label, lang, def string) string {
	m := l.table[label]
	if v := ResolveLocalizedText(m, lang, def); v != "" {
		return v
	}
	if v := m[baseLabelLanguage]; v != "" {
		return v
	}
	return string(label)
}

// For resolves every known label for lang, keyed by label name.
func (l *Labels) For(lang, def string) map[string]string {
	out := make(map[string]string, len(l.table))
	for label := range l.table {
		out[string(label)] = l.Lookup(label, lang, def)
	}
	return out
}
