package server

import (
	"strings"
	"testing"
)

func TestRenderText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{"empty", "  ", nil, []string{"<p>"}},
		{"hard wraps", "one\ntwo", []string{"one<br", "two"}, nil},
		{"emphasis", "**bold** text", []string{"<strong>bold</strong>"}, nil},
		{"raw html dropped", "hi <script>alert(1)</script>", []string{"hi"}, []string{"<script", "alert(1)</script>"}},
		{"javascript link", "[x](javascript:alert(1))", nil, []string{"javascript:"}},
		{"external link", "see https://example.com", []string{`href="https://example.com"`, `rel="nofollow`}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(renderText(tt.in))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("renderText(%q) = %q, missing %q", tt.in, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("renderText(%q) = %q, contains %q", tt.in, got, bad)
				}
			}
		})
	}
}

func TestRenderInline(t *testing.T) {
	if got := renderInline("Contact *support*"); got != "Contact <em>support</em>" {
		t.Errorf("renderInline = %q", got)
	}
	if got := renderInline("a\n\nb"); !strings.Contains(string(got), "<p>a</p>") {
		t.Errorf("multi-paragraph input unwrapped: %q", got)
	}
}
