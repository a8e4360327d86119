package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

// BrandPlaceholder is replaced with the active brand name in authored text.
const BrandPlaceholder = "{brand}"

// SubstituteBrandName replaces every BrandPlaceholder in text with
// brandName. Placeholders and braces are removed from brandName first, and
// replacement repeats until no placeholder is left, so a token spliced
// together from the name and its neighbors is replaced too. The result
// never contains BrandPlaceholder, which makes the substitution idempotent.
func SubstituteBrandName(text, brandName string) string {
	if !strings.Contains(text, BrandPlaceholder) {
		return text
	}
	name := strings.ReplaceAll(brandName, BrandPlaceholder, "")
	name = strings.NewReplacer("{", "", "}", "").Replace(name)
	// Each pass consumes at least one brace from text, so this terminates.
	for strings.Contains(text, BrandPlaceholder) {
		text = strings.ReplaceAll(text, BrandPlaceholder, name)
	}
	return text
}

// Theme is the set of style variables a brand publishes to the page.
type Theme struct {
	Primary      string `json:"primary"`
	Secondary    string `json:"secondary"`
	Background   string `json:"background"`
	PrimaryRGB   string `json:"primaryRgb"`
	SecondaryRGB string `json:"secondaryRgb"`
}

// ThemeFor derives the theme of b. Colors are not validated.
func ThemeFor(b guide.Brand) Theme {
	return Theme{
		Primary:      b.Primary,
		Secondary:    b.Secondary,
		Background:   b.Background,
		PrimaryRGB:   HexToRGB(b.Primary),
		SecondaryRGB: HexToRGB(b.Secondary),
	}
}

// Vars returns the theme as CSS custom properties.
func (t Theme) Vars() map[string]string {
	return map[string]string{
		"--primary":       t.Primary,
		"--secondary":     t.Secondary,
		"--background":    t.Background,
		"--primary-rgb":   t.PrimaryRGB,
		"--secondary-rgb": t.SecondaryRGB,
	}
}

// HexToRGB converts "#rgb" or "#rrggbb" to "r, g, b" for use inside rgba().
// Anything else is returned as given.
func HexToRGB(color string) string {
	hex := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color
	}
	return fmt.Sprintf("%d, %d, %d", v>>16&0xff, v>>8&0xff, v&0xff)
}
