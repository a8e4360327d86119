package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexk15655-dotcom/MCGuide/internal/catalog"
)

type ctxKey int

const ctxKeyBundle ctxKey = iota

// brandMiddleware resolves {brand} to a catalog bundle. Unknown slugs go
// to notFound; lookup failures are logged and answered with a 500.
func brandMiddleware(reg *catalog.Registry, logger *slog.Logger, notFound http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := chi.URLParam(r, "brand")
			if slug == "" {
				notFound(w, r)
				return
			}

			b, err := reg.Get(r.Context(), slug)
			if errors.Is(err, catalog.ErrNotFound) {
				notFound(w, r)
				return
			}
			if err != nil {
				logger.Error("loading brand", "brand", slug, "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyBundle, b)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bundleFrom(r *http.Request) *catalog.Bundle {
	return r.Context().Value(ctxKeyBundle).(*catalog.Bundle)
}

func apiNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "brand not found")
}
