package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/preference"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

// MarketQuery holds the quick filters of the market page. When ApplySaved is
// set the user's stored advanced filter is applied on top.
type MarketQuery struct {
	UserID         string
	Search         string
	Position       player.Position
	RatingMin      int
	RatingMax      int
	ClubID         int64
	FreeAgentsOnly bool
	ApplySaved     bool
	Limit          int
}

type MarketListing struct {
	Players      []player.Player
	Total        int
	SavedApplied bool
}

type PlayerDetail struct {
	Player player.Player
	Club   *club.Club
}

type ClubSquad struct {
	Club    club.Club
	Players []player.Player
}

type MarketService struct {
	playerRepo player.Repository
	clubRepo   club.Repository
	prefStore  preference.Store
	logger     *logging.Logger
	now        func() time.Time
}

func NewMarketService(playerRepo player.Repository, clubRepo club.Repository, prefStore preference.Store, logger *logging.Logger) *MarketService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MarketService{
		playerRepo: playerRepo,
		clubRepo:   clubRepo,
		prefStore:  prefStore,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MarketService) ListMarket(ctx context.Context, q MarketQuery) (_ MarketListing, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.ListMarket")
	defer func() { endSpan(span, err) }()

	quick := preference.MarketFilter{
		Search:    strings.TrimSpace(q.Search),
		RatingMin: q.RatingMin,
		RatingMax: q.RatingMax,
	}
	if q.Position != "" {
		quick.Positions = []player.Position{q.Position}
	}
	if err := quick.Validate(); err != nil {
		return MarketListing{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var saved preference.MarketFilter
	if q.ApplySaved && strings.TrimSpace(q.UserID) != "" {
		prefs, err := s.GetPreferences(ctx, q.UserID)
		if err != nil {
			return MarketListing{}, err
		}
		saved = prefs.Market
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return MarketListing{}, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if q.FreeAgentsOnly && !p.IsFreeAgent() {
			continue
		}
		if q.ClubID > 0 && p.ClubID != q.ClubID {
			continue
		}
		if !quick.Matches(p) || !saved.Matches(p) {
			continue
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b player.Player) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	total := len(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return MarketListing{Players: out, Total: total, SavedApplied: saved.Active()}, nil
}

func (s *MarketService) GetPlayer(ctx context.Context, playerID int64) (PlayerDetail, error) {
	if playerID <= 0 {
		return PlayerDetail{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, ok, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerDetail{}, fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return PlayerDetail{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	detail := PlayerDetail{Player: p}
	if !p.IsFreeAgent() {
		c, ok, err := s.clubRepo.GetByID(ctx, p.ClubID)
		if err != nil {
			return PlayerDetail{}, fmt.Errorf("get player club: %w", err)
		}
		if ok {
			detail.Club = &c
		}
	}
	return detail, nil
}

func (s *MarketService) ListClubs(ctx context.Context) ([]club.Club, error) {
	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return clubs, nil
}

func (s *MarketService) ListClubPlayers(ctx context.Context, clubID int64) (ClubSquad, error) {
	if clubID <= 0 {
		return ClubSquad{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	c, ok, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return ClubSquad{}, fmt.Errorf("get club: %w", err)
	}
	if !ok {
		return ClubSquad{}, fmt.Errorf("%w: club=%d", ErrNotFound, clubID)
	}
	return s.squad(ctx, c)
}

// GetMyClub returns the caller's club with its squad.
func (s *MarketService) GetMyClub(ctx context.Context, userID string) (ClubSquad, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ClubSquad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	c, ok, err := s.clubRepo.GetByManager(ctx, userID)
	if err != nil {
		return ClubSquad{}, fmt.Errorf("get club by manager: %w", err)
	}
	if !ok {
		return ClubSquad{}, fmt.Errorf("%w: user %s manages no club", ErrNotFound, userID)
	}
	return s.squad(ctx, c)
}

func (s *MarketService) squad(ctx context.Context, c club.Club) (ClubSquad, error) {
	players, err := s.playerRepo.ListByClub(ctx, c.ID)
	if err != nil {
		return ClubSquad{}, fmt.Errorf("list club players: %w", err)
	}
	return ClubSquad{Club: c, Players: players}, nil
}

// GetPreferences never fails for a user without saved settings; it returns an
// empty current-version document instead.
func (s *MarketService) GetPreferences(ctx context.Context, userID string) (preference.Preferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return preference.Preferences{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	prefs, ok, err := s.prefStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, preference.ErrUnsupportedSchema) {
			s.logger.WarnContext(ctx, "ignoring preferences with unsupported schema", "user_id", userID, "error", err)
			return preference.Preferences{UserID: userID, SchemaVersion: preference.CurrentSchemaVersion}, nil
		}
		return preference.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	if !ok {
		return preference.Preferences{UserID: userID, SchemaVersion: preference.CurrentSchemaVersion}, nil
	}
	return prefs, nil
}

func (s *MarketService) SavePreferences(ctx context.Context, userID string, filter preference.MarketFilter) (preference.Preferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return preference.Preferences{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	filter.Search = strings.TrimSpace(filter.Search)
	if err := filter.Validate(); err != nil {
		return preference.Preferences{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	prefs := preference.Preferences{
		UserID:        userID,
		SchemaVersion: preference.CurrentSchemaVersion,
		Market:        filter,
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.prefStore.Save(ctx, prefs); err != nil {
		return preference.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return prefs, nil
}

func (s *MarketService) ClearPreferences(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := s.prefStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}
	return nil
}
