package httpapi

import (
	"net/http"

	"github.com/riskibarqy/leetstreak/internal/usecase"
)

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.GetProgress")
	defer span.End()

	challengeID := r.PathValue("challengeID")
	userID := r.PathValue("userID")
	limit, err := queryInt(r, "limit", usecase.DefaultProgressLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	progress, err := h.progressService.Get(ctx, challengeID, userID, limit)
	if err != nil {
		h.logFailure(ctx, "get progress failed", err, "challenge_id", challengeID, "user_id", userID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progressToDTO(progress))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.GetDashboard")
	defer span.End()

	userID := r.PathValue("userID")
	dashboard, err := h.dashboardService.Get(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "get dashboard failed", err, "user_id", userID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}

func (h *Handler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.GetHeatmap")
	defer span.End()

	userID := r.PathValue("userID")
	days, err := queryInt(r, "days", usecase.DefaultHeatmapDays)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	heatmap, err := h.heatmapService.Get(ctx, userID, days)
	if err != nil {
		h.logFailure(ctx, "get heatmap failed", err, "user_id", userID, "days", days)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, heatmapToDTO(heatmap))
}
