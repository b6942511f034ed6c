package httpapi

import (
	"net/http"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.GetLeaderboard")
	defer span.End()

	challengeID := r.PathValue("challengeID")
	entries, err := h.leaderboardService.Get(ctx, challengeID)
	if err != nil {
		h.logFailure(ctx, "get leaderboard failed", err, "challenge_id", challengeID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(challengeID, entries))
}

func (h *Handler) InvalidateLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.InvalidateLeaderboard")
	defer span.End()

	challengeID := r.PathValue("challengeID")
	if err := h.leaderboardService.Invalidate(ctx, challengeID); err != nil {
		h.logFailure(ctx, "invalidate leaderboard failed", err, "challenge_id", challengeID)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "leaderboard invalidated", "challenge_id", challengeID)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"challenge_id": challengeID, "status": "invalidated"})
}

func (h *Handler) WarmLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.WarmLeaderboards")
	defer span.End()

	var req warmLeaderboardsRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.leaderboardWarmer.Warm(ctx, req.ChallengeIDs)
	if err != nil {
		h.logFailure(ctx, "warm leaderboards failed", err, "challenge_ids", req.ChallengeIDs)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
