package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexk15655-dotcom/MCGuide/internal/catalog"
	"github.com/alexk15655-dotcom/MCGuide/internal/handler/health"
	"github.com/alexk15655-dotcom/MCGuide/internal/navigator"
)

const testBrands = `{
  "acme": {"name": "Acme Pay", "logo": "/logos/acme.svg", "primary": "#ff6600", "secondary": "#222222", "background": "#0b0b0b"},
  "beta": {"name": "Beta", "logo": "", "primary": "#00aaff", "secondary": "#ffffff", "background": "#101820"}
}`

const testSteps = `
languages: [en, ru, ar]
defaultLanguage: en
languageNames: {en: English, ru: Русский, ar: العربية}
steps:
  - id: welcome
    title: {en: "Welcome to {brand}", ru: "Добро пожаловать в {brand}", ar: "مرحبا بك في {brand}"}
    content: {en: "First line\nSecond line", ru: "Первая строка"}
  - id: limits
    title: {en: Limits, ru: Лимиты}
    content: {en: How limits work., ru: Как работают лимиты.}
    notes: {en: "Limits reset daily at {brand}."}
    columns:
      en: {decrease: Payouts, increase: Deposits}
  - id: errors
    title: {en: Errors}
    content: {en: "Common errors <script>alert(1)</script>"}
    errorCards:
      en:
        - {title: Declined, description: Card declined, solution: "Contact {brand}", image: /img/declined.png}
`

func testRegistry(t *testing.T) *catalog.Registry {
	t.Helper()
	src, err := catalog.Load(fstest.MapFS{
		"brands.json": {Data: []byte(testBrands)},
		"steps.yaml":  {Data: []byte(testSteps)},
	})
	if err != nil {
		t.Fatalf("loading test content: %v", err)
	}
	return catalog.NewRegistry(src)
}

// heldScheduler never fires, so a started transition stays locked.
type heldScheduler struct {
	mu    sync.Mutex
	count int
}

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

func (s *heldScheduler) AfterFunc(time.Duration, func()) navigator.Timer {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
	return heldTimer{}
}

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := testRegistry(t)
	return NewHandler(logger, Options{
		Catalog:   reg,
		Checks:    map[string]health.Checker{"catalog": health.CheckerFunc(reg.Check)},
		Scheduler: &heldScheduler{},
	})
}

func get(t *testing.T, h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
