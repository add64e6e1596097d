package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

func (h *Handler) ListMarket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMarket")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := usecase.MarketQuery{
		UserID:   principal.UserID,
		Search:   r.URL.Query().Get("q"),
		Position: player.Position(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("position")))),
	}
	var parseErr error
	setInt := func(dst *int, name string) {
		if parseErr == nil {
			*dst, parseErr = queryInt(r, name)
		}
	}
	setBool := func(dst *bool, name string) {
		if parseErr == nil {
			*dst, parseErr = queryBool(r, name)
		}
	}
	setInt(&query.RatingMin, "rating_min")
	setInt(&query.RatingMax, "rating_max")
	setInt(&query.Limit, "limit")
	setBool(&query.FreeAgentsOnly, "free_agents")
	setBool(&query.ApplySaved, "apply_saved")
	if parseErr == nil {
		query.ClubID, parseErr = queryInt64(r, "club_id")
	}
	if parseErr != nil {
		writeError(ctx, w, parseErr)
		return
	}

	listing, err := h.marketService.ListMarket(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list market failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, marketListingDTO{
		Items:        playersToDTO(listing.Players),
		Total:        listing.Total,
		SavedApplied: listing.SavedApplied,
	})
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.marketService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := playerDetailDTO{Player: playerToDTO(detail.Player)}
	if detail.Club != nil {
		c := clubToDTO(*detail.Club)
		out.Club = &c
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.marketService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyClub")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.marketService.GetMyClub(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my club failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, clubSquadToDTO(squad))
}

func (h *Handler) ListClubPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubPlayers")
	defer span.End()

	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.marketService.ListClubPlayers(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "list club players failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, clubSquadToDTO(squad))
}
