package httpapi

import (
	"net/http"

	"github.com/riskibarqy/transfer-market/internal/usecase"
)

type purchaseRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
	Amount   int64 `json:"amount" validate:"required,gt=0"`
}

type exchangeRequest struct {
	CounterpartyClubID      int64   `json:"counterparty_club_id" validate:"required,gt=0"`
	OfferedCount            int     `json:"offered_count" validate:"required,oneof=1 2"`
	RequestedCount          int     `json:"requested_count" validate:"required,oneof=1 2"`
	OfferedPlayerIDs        []int64 `json:"offered_player_ids" validate:"required,min=1,max=2,dive,gt=0"`
	RequestedPlayerIDs      []int64 `json:"requested_player_ids" validate:"required,min=1,max=2,dive,gt=0"`
	CompensationDirectionID int64   `json:"compensation_direction_id" validate:"required,gt=0"`
	CompensationAmount      int64   `json:"compensation_amount" validate:"gte=0"`
}

type respondTransferRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

func (h *Handler) SignFreeAgent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignFreeAgent")
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

	res, err := h.transferService.PurchaseFreeAgent(ctx, principal.UserID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "sign free agent failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, resultToDTO(res))
}

func (h *Handler) ReleasePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReleasePlayer")
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

	res, err := h.transferService.ReleasePlayer(ctx, principal.UserID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "release player failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, resultToDTO(res))
}

func (h *Handler) PurchaseFromClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PurchaseFromClub")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req purchaseRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.transferService.PurchaseFromClub(ctx, usecase.PurchaseInput{
		UserID:   principal.UserID,
		PlayerID: req.PlayerID,
		Amount:   req.Amount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "purchase from club failed", "user_id", principal.UserID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, resultToDTO(res))
}

func (h *Handler) ProposeExchange(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProposeExchange")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req exchangeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.exchangeService.ProposeExchange(ctx, usecase.ProposeExchangeInput{
		UserID:                  principal.UserID,
		CounterpartyClubID:      req.CounterpartyClubID,
		OfferedCount:            req.OfferedCount,
		RequestedCount:          req.RequestedCount,
		OfferedPlayerIDs:        req.OfferedPlayerIDs,
		RequestedPlayerIDs:      req.RequestedPlayerIDs,
		CompensationDirectionID: req.CompensationDirectionID,
		CompensationAmount:      req.CompensationAmount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "propose exchange failed", "user_id", principal.UserID, "counterparty_club_id", req.CounterpartyClubID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, resultToDTO(res))
}

func (h *Handler) ListCompensationDirections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompensationDirections")
	defer span.End()

	directions, err := h.exchangeService.ListCompensationDirections(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list compensation directions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]compensationDirectionDTO, 0, len(directions))
	for _, d := range directions {
		items = append(items, compensationDirectionDTO{ID: d.ID, Name: d.Name, Kind: string(d.Kind)})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListIncomingTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListIncomingTransfers")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.transferService.ListIncoming(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list incoming transfers failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]transferDTO, 0, len(details))
	for _, d := range details {
		items = append(items, transferDetailToDTO(d))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTransfer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	transferID, err := pathID(r, "transferID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.transferService.GetTransfer(ctx, principal.UserID, transferID)
	if err != nil {
		h.logger.WarnContext(ctx, "get transfer failed", "user_id", principal.UserID, "transfer_id", transferID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, transferDetailToDTO(detail))
}

func (h *Handler) RespondToTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondToTransfer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	transferID, err := pathID(r, "transferID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req respondTransferRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.transferService.RespondToTransfer(ctx, usecase.RespondInput{
		UserID:     principal.UserID,
		TransferID: transferID,
		Decision:   req.Decision,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "respond to transfer failed", "user_id", principal.UserID, "transfer_id", transferID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, resultToDTO(res))
}
