package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/service"
)

// StatisticsHandler serves aggregate task counts.
type StatisticsHandler struct {
	statsService service.StatisticsService
	logger       *slog.Logger
}

// NewStatisticsHandler creates a new StatisticsHandler
func NewStatisticsHandler(statsService service.StatisticsService, logger *slog.Logger) *StatisticsHandler {
	if statsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("statsService cannot be nil for StatisticsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatisticsHandler")
	}

	return &StatisticsHandler{
		statsService: statsService,
		logger:       logger.With(slog.String("component", "statistics_handler")),
	}
}

// Get handles GET /statistics requests.
func (h *StatisticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetStatistics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, statisticsToResponse(stats))
}
