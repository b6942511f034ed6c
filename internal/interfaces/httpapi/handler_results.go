package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/leetstreak/internal/usecase"
	"github.com/shopspring/decimal"
)

func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.RecordResult")
	defer span.End()

	challengeID := r.PathValue("challengeID")
	var req recordResultRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := h.parseDay(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.resultService.RecordResult(ctx, usecase.RecordResultInput{
		ChallengeID:      challengeID,
		UserID:           req.UserID,
		Date:             day,
		Completed:        *req.Completed,
		SubmissionsCount: req.SubmissionsCount,
		ProblemsSolved:   req.ProblemsSolved,
	})
	if err != nil {
		h.logFailure(ctx, "record daily result failed", err, "challenge_id", challengeID, "user_id", req.UserID, "date", req.Date)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, recordResultResponse{
		ID:           saved.ID,
		MembershipID: saved.MembershipID,
		Date:         formatDay(saved.Date),
		Completed:    saved.Completed,
	})
}

func (h *Handler) RecordPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.RecordPenalty")
	defer span.End()

	challengeID := r.PathValue("challengeID")
	var req recordPenaltyRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := h.parseDay(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid amount %q", usecase.ErrInvalidInput, req.Amount))
		return
	}

	saved, err := h.resultService.RecordPenalty(ctx, usecase.RecordPenaltyInput{
		ChallengeID: challengeID,
		UserID:      req.UserID,
		Date:        day,
		Amount:      amount,
		Reason:      req.Reason,
	})
	if err != nil {
		h.logFailure(ctx, "record penalty failed", err, "challenge_id", challengeID, "user_id", req.UserID, "date", req.Date)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, recordPenaltyResponse{
		ID:           saved.ID,
		MembershipID: saved.MembershipID,
		Date:         formatDay(saved.Date),
		Amount:       saved.Amount.StringFixed(2),
	})
}
