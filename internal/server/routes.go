package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/alexk15655-dotcom/MCGuide/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	broker := NewBroker()
	labels := opts.Labels
	notFound := handleNotFoundPage(labels, logger)

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Guide API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, opts.Checks).Routes())
	r.Handle("/assets/*", handleAssets())

	r.Route("/api/{brand}", func(r chi.Router) {
		r.Use(brandMiddleware(opts.Catalog, logger, apiNotFound))
		r.Get("/guide", handleGetGuide(labels))
		r.Get("/steps/{index}", handleGetStep())
		r.Get("/live", handleLive(broker, liveConfig{
			labels:         labels,
			transitionLock: opts.TransitionLock,
			idleTimeout:    opts.LiveIdleTimeout,
			scheduler:      opts.Scheduler,
		}, logger))
	})

	r.Get("/", handleBrandIndex(opts.Catalog, labels, logger))
	r.With(brandMiddleware(opts.Catalog, logger, notFound)).Get("/{brand}", handleGuidePage(labels, logger))
	r.NotFound(notFound)
}
