package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/franchises", handler.ListFranchises)
	mux.HandleFunc("GET /v1/franchises/resolve", handler.ResolveFranchise)
	mux.HandleFunc("GET /v1/franchises/{code}/players", handler.ListFranchisePlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/tenures", handler.ListPlayerTenures)
	mux.HandleFunc("GET /v1/timeline", handler.GetTimeline)
}
