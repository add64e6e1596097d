package httpapi

import (
	"net/http"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/preference"
)

type marketFilterRequest struct {
	Search        string         `json:"search" validate:"max=100"`
	Positions     []string       `json:"positions" validate:"omitempty,max=4,dive,oneof=GK DEF MID FWD"`
	RatingMin     int            `json:"rating_min" validate:"gte=0,lte=99"`
	RatingMax     int            `json:"rating_max" validate:"gte=0,lte=99"`
	MinAge        int            `json:"min_age" validate:"gte=0"`
	CountryID     int64          `json:"country_id" validate:"gte=0"`
	PreferredFoot string         `json:"preferred_foot" validate:"omitempty,oneof=left right both"`
	MinAttributes map[string]int `json:"min_attributes" validate:"omitempty,dive,keys,required,endkeys,gte=0,lte=99"`
}

func (req marketFilterRequest) toDomain() preference.MarketFilter {
	filter := preference.MarketFilter{
		Search:        req.Search,
		RatingMin:     req.RatingMin,
		RatingMax:     req.RatingMax,
		MinAge:        req.MinAge,
		CountryID:     req.CountryID,
		PreferredFoot: player.Foot(req.PreferredFoot),
	}
	for _, pos := range req.Positions {
		filter.Positions = append(filter.Positions, player.Position(pos))
	}
	if len(req.MinAttributes) > 0 {
		filter.MinAttributes = make(map[player.Attribute]int, len(req.MinAttributes))
		for attr, min := range req.MinAttributes {
			filter.MinAttributes[player.Attribute(attr)] = min
		}
	}
	return filter
}

func (h *Handler) GetMarketPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMarketPreferences")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	prefs, err := h.marketService.GetPreferences(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get preferences failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, preferencesToDTO(prefs))
}

func (h *Handler) SaveMarketPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMarketPreferences")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req marketFilterRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	prefs, err := h.marketService.SavePreferences(ctx, principal.UserID, req.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "save preferences failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, preferencesToDTO(prefs))
}

func (h *Handler) ClearMarketPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearMarketPreferences")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.marketService.ClearPreferences(ctx, principal.UserID); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
