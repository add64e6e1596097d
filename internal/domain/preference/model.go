package preference

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/platform/textnorm"
)

// CurrentSchemaVersion is bumped whenever MarketFilter changes shape.
const CurrentSchemaVersion = 1

var ErrUnsupportedSchema = errors.New("unsupported preferences schema version")

// MarketFilter is the saved advanced filter for the player market.
// Zero values mean "no constraint".
type MarketFilter struct {
	Search        string
	Positions     []player.Position
	RatingMin     int
	RatingMax     int
	MinAge        int
	CountryID     int64
	PreferredFoot player.Foot
	MinAttributes map[player.Attribute]int
}

// Active reports whether any constraint is set.
func (f MarketFilter) Active() bool {
	return f.Search != "" ||
		len(f.Positions) > 0 ||
		f.RatingMin > 0 ||
		f.RatingMax > 0 ||
		f.MinAge > 0 ||
		f.CountryID > 0 ||
		f.PreferredFoot != "" ||
		len(f.MinAttributes) > 0
}

func (f MarketFilter) Validate() error {
	if f.RatingMin < 0 || f.RatingMin > 99 || f.RatingMax < 0 || f.RatingMax > 99 {
		return fmt.Errorf("rating bounds must be between 0 and 99")
	}
	if f.RatingMax > 0 && f.RatingMin > f.RatingMax {
		return fmt.Errorf("rating min %d is greater than rating max %d", f.RatingMin, f.RatingMax)
	}
	if f.MinAge < 0 {
		return fmt.Errorf("min age cannot be negative")
	}
	for _, pos := range f.Positions {
		if _, ok := player.AllPositions[pos]; !ok {
			return fmt.Errorf("invalid position %q", pos)
		}
	}
	switch f.PreferredFoot {
	case "", player.FootLeft, player.FootRight, player.FootBoth:
	default:
		return fmt.Errorf("invalid preferred foot %q", f.PreferredFoot)
	}
	for attr, min := range f.MinAttributes {
		if _, ok := (player.Attributes{}).Value(attr); !ok {
			return fmt.Errorf("unknown attribute %q", attr)
		}
		if min < 0 || min > 99 {
			return fmt.Errorf("attribute %s threshold must be between 0 and 99", attr)
		}
	}

	return nil
}

// Matches applies every constraint of the filter to p.
func (f MarketFilter) Matches(p player.Player) bool {
	if f.Search != "" && !textnorm.ContainsFold(p.Name, f.Search) {
		return false
	}
	if len(f.Positions) > 0 && !containsPosition(f.Positions, p.Position) {
		return false
	}
	if f.RatingMin > 0 && p.Rating < f.RatingMin {
		return false
	}
	if f.RatingMax > 0 && p.Rating > f.RatingMax {
		return false
	}
	if f.MinAge > 0 && p.Age < f.MinAge {
		return false
	}
	if f.CountryID > 0 && p.CountryID != f.CountryID {
		return false
	}
	if f.PreferredFoot != "" && p.PreferredFoot != f.PreferredFoot {
		return false
	}
	for attr, min := range f.MinAttributes {
		value, ok := p.Attributes.Value(attr)
		if !ok || value < min {
			return false
		}
	}

	return true
}

func containsPosition(items []player.Position, target player.Position) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

// Preferences is a user's typed, versioned settings document.
type Preferences struct {
	UserID        string
	SchemaVersion int
	Market        MarketFilter
	UpdatedAt     time.Time
}
