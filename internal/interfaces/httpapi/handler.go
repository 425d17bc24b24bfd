package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/dataset"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
	"github.com/riskibarqy/mlb-team-timeline/internal/usecase"
)

type Handler struct {
	timelineService *usecase.TimelineService
	stats           dataset.Stats
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(timelineService *usecase.TimelineService, stats dataset.Stats, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		timelineService: timelineService,
		stats:           stats,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, healthDTO{Status: "ok", Dataset: h.stats})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type resolveRequest struct {
	Query string `validate:"required,max=100"`
}

type timelineRequest struct {
	Team string `validate:"required,max=100"`
}

type franchiseCodeRequest struct {
	Code string `validate:"required,alpha,min=2,max=3"`
}

type playerIDRequest struct {
	PlayerID string `validate:"required,max=32"`
}
