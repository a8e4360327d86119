package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthStatus is one dependency's entry in the health response.
type HealthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type brandPath struct {
	Brand string `path:"brand" description:"Brand slug."`
	Lang  string `query:"lang" description:"Language code. Unknown codes fall back to Accept-Language, then the guide default."`
}

type stepPath struct {
	Brand string `path:"brand" description:"Brand slug."`
	Index int    `path:"index" minimum:"0" description:"Zero-based step index."`
	Lang  string `query:"lang" description:"Language code."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Guide API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Branded multi-language onboarding guides.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the status of the content catalog and database.")
	getHealthz.AddRespStructure(map[string]HealthStatus{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]HealthStatus{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/{brand}/guide
	getGuide, _ := r.NewOperationContext(http.MethodGet, "/api/{brand}/guide")
	getGuide.SetSummary("Get guide")
	getGuide.SetDescription("Languages, theme, labels and table of contents of a brand's guide.")
	getGuide.AddReqStructure(brandPath{})
	getGuide.AddRespStructure(GuideResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGuide.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGuide)

	// GET /api/{brand}/steps/{index}
	getStep, _ := r.NewOperationContext(http.MethodGet, "/api/{brand}/steps/{index}")
	getStep.SetSummary("Get step")
	getStep.SetDescription("One step resolved for a language, with brand name substituted and progress.")
	getStep.AddReqStructure(stepPath{})
	getStep.AddRespStructure(StepResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getStep.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getStep.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStep)

	// GET /api/{brand}/live
	getLive, _ := r.NewOperationContext(http.MethodGet, "/api/{brand}/live")
	getLive.SetSummary("Live guide session")
	getLive.SetDescription("Upgrades to a WebSocket. The server holds the navigation state; " +
		"clients send {\"op\": goto|next|previous|language|toggle|close|pointer} frames and " +
		"receive style, replaceState, view and error frames.")
	getLive.AddReqStructure(brandPath{})
	getLive.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	getLive.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getLive)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
