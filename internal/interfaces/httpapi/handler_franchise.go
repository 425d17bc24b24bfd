package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListFranchises(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFranchises")
	defer span.End()

	entries := h.timelineService.ListFranchises(ctx)
	items := make([]franchiseDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, franchiseDTO{Code: e.Code, Name: e.Name, Color: e.Color})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ResolveFranchise(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveFranchise")
	defer span.End()

	req := resolveRequest{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	match, err := h.timelineService.Resolve(ctx, req.Query)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve franchise failed", "query", req.Query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDTO{Code: match.Code, Name: match.Name, Score: match.Score})
}

func (h *Handler) ListFranchisePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFranchisePlayers")
	defer span.End()

	req := franchiseCodeRequest{Code: strings.TrimSpace(r.PathValue("code"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.timelineService.RosterFor(ctx, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "list franchise players failed", "franchise", req.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerDTO, 0, len(roster.Players))
	for _, p := range roster.Players {
		players = append(players, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, rosterDTO{
		Franchise: franchiseDTO{Code: roster.Franchise.Code, Name: roster.Franchise.Name, Color: roster.Franchise.Color},
		Players:   players,
	})
}
