package httpapi

import (
	"net/http"

	"github.com/riskibarqy/transfer-market/internal/usecase"
)

type submitOfferRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) SubmitOffer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitOffer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req submitOfferRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.negotiationService.SubmitOffer(ctx, usecase.SubmitOfferInput{
		UserID:   principal.UserID,
		PlayerID: playerID,
		Amount:   req.Amount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit offer failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, offerResultToDTO(result))
}

func (h *Handler) GetNegotiation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNegotiation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := h.negotiationService.GetStatus(ctx, principal.UserID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get negotiation failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, negotiationStatusToDTO(status))
}

func (h *Handler) StopWatchingNegotiation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StopWatchingNegotiation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.negotiationService.StopWatching(ctx, principal.UserID, playerID); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
