package httpapi

import (
	"slices"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/negotiation"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/preference"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/platform/money"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

type playerDTO struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name"`
	Position           string         `json:"position"`
	Age                int            `json:"age"`
	Rating             int            `json:"rating"`
	Attributes         map[string]int `json:"attributes"`
	CountryID          int64          `json:"countryId,omitempty"`
	PreferredFoot      string         `json:"preferredFoot,omitempty"`
	ClubID             int64          `json:"clubId,omitempty"`
	FreeAgent          bool           `json:"freeAgent"`
	SalePrice          int64          `json:"salePrice"`
	SalePriceFormatted string         `json:"salePriceFormatted"`
	ReleasePrice       int64          `json:"releasePrice"`
	Wage               int64          `json:"wage"`
	ImageURL           string         `json:"imageUrl,omitempty"`
}

type clubDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ShortName       string `json:"shortName"`
	Budget          int64  `json:"budget"`
	BudgetFormatted string `json:"budgetFormatted"`
}

type clubSquadDTO struct {
	Club    clubDTO     `json:"club"`
	Players []playerDTO `json:"players"`
}

type marketListingDTO struct {
	Items        []playerDTO `json:"items"`
	Total        int         `json:"total"`
	SavedApplied bool        `json:"savedFilterApplied"`
}

type playerDetailDTO struct {
	Player playerDTO `json:"player"`
	Club   *clubDTO  `json:"club,omitempty"`
}

type outcomeDTO struct {
	Kind          string `json:"kind"`
	FinalPrice    int64  `json:"finalPrice,omitempty"`
	ProposedPrice int64  `json:"proposedPrice,omitempty"`
	Reason        string `json:"reason,omitempty"`
	CooldownUntil string `json:"cooldownUntil,omitempty"`
}

type offerResultDTO struct {
	OfferID string     `json:"offerId"`
	Amount  int64      `json:"amount"`
	State   string     `json:"state"`
	Outcome outcomeDTO `json:"outcome"`
	Message string     `json:"message"`
}

type negotiationStatusDTO struct {
	PlayerID          int64       `json:"playerId"`
	State             string      `json:"state"`
	RemainingSeconds  int         `json:"remainingSeconds"`
	CooldownUntil     string      `json:"cooldownUntil,omitempty"`
	LastOutcome       *outcomeDTO `json:"lastOutcome,omitempty"`
	CanSubmitNewOffer bool        `json:"canSubmitNewOffer"`
}

type resultDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type compensationDirectionDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type transferDTO struct {
	ID                      int64       `json:"id"`
	Kind                    string      `json:"kind"`
	Status                  string      `json:"status"`
	RequestingClub          clubDTO     `json:"requestingClub"`
	ReceivingClub           clubDTO     `json:"receivingClub"`
	Player                  *playerDTO  `json:"player,omitempty"`
	Amount                  int64       `json:"amount,omitempty"`
	OfferedPlayers          []playerDTO `json:"offeredPlayers,omitempty"`
	RequestedPlayers        []playerDTO `json:"requestedPlayers,omitempty"`
	CompensationDirectionID int64       `json:"compensationDirectionId,omitempty"`
	CompensationAmount      int64       `json:"compensationAmount,omitempty"`
	CreatedAt               string      `json:"createdAt"`
	ResolvedAt              string      `json:"resolvedAt,omitempty"`
}

type notificationDTO struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	URL       string `json:"url,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

type marketFilterDTO struct {
	Search        string         `json:"search,omitempty"`
	Positions     []string       `json:"positions,omitempty"`
	RatingMin     int            `json:"rating_min,omitempty"`
	RatingMax     int            `json:"rating_max,omitempty"`
	MinAge        int            `json:"min_age,omitempty"`
	CountryID     int64          `json:"country_id,omitempty"`
	PreferredFoot string         `json:"preferred_foot,omitempty"`
	MinAttributes map[string]int `json:"min_attributes,omitempty"`
}

type preferencesDTO struct {
	SchemaVersion int             `json:"schemaVersion"`
	Active        bool            `json:"active"`
	Market        marketFilterDTO `json:"market"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

func playerToDTO(p player.Player) playerDTO {
	attrs := make(map[string]int, len(player.AllAttributes))
	for _, attr := range player.AllAttributes {
		v, _ := p.Attributes.Value(attr)
		attrs[string(attr)] = v
	}
	return playerDTO{
		ID:                 p.ID,
		Name:               p.Name,
		Position:           string(p.Position),
		Age:                p.Age,
		Rating:             p.Rating,
		Attributes:         attrs,
		CountryID:          p.CountryID,
		PreferredFoot:      string(p.PreferredFoot),
		ClubID:             p.ClubID,
		FreeAgent:          p.IsFreeAgent(),
		SalePrice:          p.Valuation.SalePrice,
		SalePriceFormatted: money.Format(p.Valuation.SalePrice),
		ReleasePrice:       p.Valuation.ReleasePrice,
		Wage:               p.Valuation.Wage,
		ImageURL:           p.ImageURL,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{
		ID:              c.ID,
		Name:            c.Name,
		ShortName:       c.ShortName,
		Budget:          c.Budget,
		BudgetFormatted: money.Format(c.Budget),
	}
}

func clubSquadToDTO(s usecase.ClubSquad) clubSquadDTO {
	return clubSquadDTO{Club: clubToDTO(s.Club), Players: playersToDTO(s.Players)}
}

func outcomeToDTO(o negotiation.Outcome) outcomeDTO {
	return outcomeDTO{
		Kind:          string(o.Kind),
		FinalPrice:    o.FinalPrice,
		ProposedPrice: o.ProposedPrice,
		Reason:        o.Reason,
		CooldownUntil: formatTime(o.CooldownUntil),
	}
}

func offerResultToDTO(r usecase.OfferResult) offerResultDTO {
	return offerResultDTO{
		OfferID: r.Offer.ID,
		Amount:  r.Offer.Amount,
		State:   string(r.State),
		Outcome: outcomeToDTO(r.Outcome),
		Message: r.Message,
	}
}

func negotiationStatusToDTO(s usecase.NegotiationStatus) negotiationStatusDTO {
	out := negotiationStatusDTO{
		PlayerID:          s.PlayerID,
		State:             string(s.State),
		RemainingSeconds:  s.RemainingSeconds,
		CanSubmitNewOffer: s.RemainingSeconds == 0 && s.State != negotiation.StateOfferSubmitted,
	}
	if s.RemainingSeconds > 0 {
		out.CooldownUntil = formatTime(s.CooldownUntil)
	}
	if s.LastOutcome != nil {
		o := outcomeToDTO(*s.LastOutcome)
		out.LastOutcome = &o
	}
	return out
}

func resultToDTO(r transfer.Result) resultDTO {
	return resultDTO{Code: r.Code, Message: r.Message}
}

func transferDetailToDTO(d usecase.TransferDetail) transferDTO {
	t := d.Transfer
	out := transferDTO{
		ID:                      t.ID,
		Kind:                    string(t.Kind),
		Status:                  string(t.Status),
		RequestingClub:          clubToDTO(d.RequestingClub),
		ReceivingClub:           clubToDTO(d.ReceivingClub),
		Amount:                  t.Amount,
		OfferedPlayers:          playersToDTO(d.OfferedPlayers),
		RequestedPlayers:        playersToDTO(d.RequestedPlayers),
		CompensationDirectionID: t.CompensationDirectionID,
		CompensationAmount:      t.CompensationAmount,
		CreatedAt:               formatTime(t.CreatedAt),
	}
	if d.Player != nil {
		p := playerToDTO(*d.Player)
		out.Player = &p
	}
	if t.ResolvedAt != nil {
		out.ResolvedAt = formatTime(*t.ResolvedAt)
	}
	return out
}

func notificationToDTO(n notification.Notification) notificationDTO {
	return notificationDTO{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		URL:       n.URL,
		Read:      n.Read,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

func preferencesToDTO(p preference.Preferences) preferencesDTO {
	f := p.Market
	market := marketFilterDTO{
		Search:        f.Search,
		RatingMin:     f.RatingMin,
		RatingMax:     f.RatingMax,
		MinAge:        f.MinAge,
		CountryID:     f.CountryID,
		PreferredFoot: string(f.PreferredFoot),
	}
	for _, pos := range f.Positions {
		market.Positions = append(market.Positions, string(pos))
	}
	if len(f.MinAttributes) > 0 {
		market.MinAttributes = make(map[string]int, len(f.MinAttributes))
		for attr, v := range f.MinAttributes {
			market.MinAttributes[string(attr)] = v
		}
	}
	slices.Sort(market.Positions)

	return preferencesDTO{
		SchemaVersion: p.SchemaVersion,
		Active:        f.Active(),
		Market:        market,
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
