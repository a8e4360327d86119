package resolver

import (
	"errors"
	"testing"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
)

func TestSubstituteBrandName(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		brand string
		want  string
	}{
		{"single", "Welcome to {brand}", "Acme", "Welcome to Acme"},
		{"repeated", "{brand} and {brand}", "Acme", "Acme and Acme"},
		{"no placeholder", "Plain text", "Acme", "Plain text"},
		{"empty", "", "Acme", ""},
		{"empty brand", "Hi {brand}!", "", "Hi !"},
		{"brand contains token", "Hi {brand}", "X{brand}Y", "Hi XY"},
		{"brand with braces", "Hi {brand}", "{Acme}", "Hi Acme"},
		{"token across boundary", "x {{brand}", "brand}", "x {brand"},
		{"name completes a token", "{b{brand}d}", "ran", "ran"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := SubstituteBrandName(tt.text, tt.brand)
			if once != tt.want {
				t.Errorf("once = %q, want %q", once, tt.want)
			}
			if twice := SubstituteBrandName(once, tt.brand); twice != once {
				t.Errorf("not idempotent: %q then %q", once, twice)
			}
		})
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FF8800", "255, 136, 0"},
		{"#0a0b0c", "10, 11, 12"},
		{"#fff", "255, 255, 255"},
		{"336699", "51, 102, 153"},
		{"rgb(1,2,3)", "rgb(1,2,3)"},
		{"#zzzzzz", "#zzzzzz"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := HexToRGB(tt.in); got != tt.want {
			t.Errorf("HexToRGB(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThemeVars(t *testing.T) {
	vars := ThemeFor(guide.Brand{Primary: "#112233", Secondary: "teal", Background: "#000"}).Vars()

	want := map[string]string{
		"--primary":       "#112233",
		"--secondary":     "teal",
		"--background":    "#000",
		"--primary-rgb":   "17, 34, 51",
		"--secondary-rgb": "teal",
	}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("%s = %q, want %q", k, vars[k], v)
		}
	}
}

func TestComputeProgress(t *testing.T) {
	for _, n := range []int{1, 3, 7, 12} {
		first, err := ComputeProgress(0, n)
		if err != nil {
			t.Fatalf("ComputeProgress(0, %d): %v", n, err)
		}
		if first != 100/float64(n) {
			t.Errorf("ComputeProgress(0, %d) = %v, want %v", n, first, 100/float64(n))
		}
		last, _ := ComputeProgress(n-1, n)
		if last != 100 {
			t.Errorf("ComputeProgress(%d, %d) = %v, want 100", n-1, n, last)
		}

		prev := 0.0
		for i := 0; i < n; i++ {
			p, _ := ComputeProgress(i, n)
			if p < prev {
				t.Errorf("progress decreased at %d/%d: %v < %v", i, n, p, prev)
			}
			prev = p
		}
	}
}

func TestComputeProgressUndefined(t *testing.T) {
	cases := [][2]int{{0, 0}, {-1, 3}, {3, 3}, {0, -2}}
	for _, c := range cases {
		if _, err := ComputeProgress(c[0], c[1]); !errors.Is(err, ErrProgressUndefined) {
			t.Errorf("ComputeProgress(%d, %d) err = %v", c[0], c[1], err)
		}
	}
}
