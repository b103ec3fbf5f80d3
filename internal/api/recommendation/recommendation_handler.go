package recommendation

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-city-recommendations/internal/api"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	RecommendCities(w http.ResponseWriter, r *http.Request)
	DebugData(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	recommendationService RecommendationService
	logger                *slog.Logger
}

// NewHandlerImpl creates a new recommendation HandlerImpl instance.
func NewHandlerImpl(recommendationService RecommendationService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// RecommendCities godoc
// @Summary      Recommend Cities
// @Description  Returns three sections of destination recommendations (similar age, co-visitation, same city) for a user, topped up from the static popularity list when data signals are thin.
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        id query string true "User ID"
// @Success      200 {object} types.RecommendationsResponse "Recommendations"
// @Failure      400 {object} types.Response "Missing or malformed user ID"
// @Failure      404 {object} types.Response "User Not Found"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /recommendations/cities [get]
func (h *HandlerImpl) RecommendCities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "RecommendCities"))

	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		l.WarnContext(ctx, "Missing user ID parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing user ID parameter")
		return
	}

	recs, err := h.recommendationService.RecommendCities(ctx, rawID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUserID):
			l.WarnContext(ctx, "Invalid user ID format", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		case errors.Is(err, ErrNotFound):
			l.WarnContext(ctx, "User ID not found", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusNotFound, "User ID not found")
		default:
			l.ErrorContext(ctx, "Failed to compute recommendations", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to compute recommendations")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, recs)
}

// DebugData godoc
// @Summary      Recommendation Data Debug
// @Description  Reports user/trip counts, resolved trip field names and a sample user, for data inspection.
// @Tags         Recommendations
// @Produce      json
// @Success      200 {object} types.DebugData "Debug data"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /recommendations/debug [get]
func (h *HandlerImpl) DebugData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "DebugData"))

	data, err := h.recommendationService.DebugData(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to gather debug data", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to gather debug data")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, data)
}
