package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListPlayerTenures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerTenures")
	defer span.End()

	req := playerIDRequest{PlayerID: strings.TrimSpace(r.PathValue("playerID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	blocks, err := h.timelineService.ExtractBlocks(ctx, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "extract tenure blocks failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tenureDTO, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, tenureDTO{
			StartYear:   b.StartYear,
			EndYear:     b.EndYear,
			FranchiseID: b.FranchiseID,
			Seasons:     b.Seasons(),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, playerTenuresDTO{PlayerID: req.PlayerID, Blocks: items})
}

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTimeline")
	defer span.End()

	req := timelineRequest{Team: strings.TrimSpace(r.URL.Query().Get("team"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	timeline, err := h.timelineService.BuildTimeline(ctx, req.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "build timeline failed", "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, timeline)
}
