package player

import "fmt"

// Position represents football position categories on the market.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Foot is the preferred kicking foot.
type Foot string

const (
	FootLeft  Foot = "left"
	FootRight Foot = "right"
	FootBoth  Foot = "both"
)

// Attribute names a single skill rating.
type Attribute string

const (
	AttributePace      Attribute = "pace"
	AttributeShooting  Attribute = "shooting"
	AttributePassing   Attribute = "passing"
	AttributeDribbling Attribute = "dribbling"
	AttributeDefending Attribute = "defending"
	AttributePhysical  Attribute = "physical"
)

var AllAttributes = []Attribute{
	AttributePace,
	AttributeShooting,
	AttributePassing,
	AttributeDribbling,
	AttributeDefending,
	AttributePhysical,
}

// Attributes holds 0-99 skill ratings.
type Attributes struct {
	Pace      int
	Shooting  int
	Passing   int
	Dribbling int
	Defending int
	Physical  int
}

func (a Attributes) Value(attr Attribute) (int, bool) {
	switch attr {
	case AttributePace:
		return a.Pace, true
	case AttributeShooting:
		return a.Shooting, true
	case AttributePassing:
		return a.Passing, true
	case AttributeDribbling:
		return a.Dribbling, true
	case AttributeDefending:
		return a.Defending, true
	case AttributePhysical:
		return a.Physical, true
	default:
		return 0, false
	}
}

// Valuation stores the market figures owned by the remote store.
type Valuation struct {
	SalePrice    int64
	ReleasePrice int64
	Wage         int64
}

// Player is a footballer listed on the transfer market.
// ClubID is zero for free agents.
type Player struct {
	ID            int64
	Name          string
	Position      Position
	Age           int
	Rating        int
	Attributes    Attributes
	CountryID     int64
	PreferredFoot Foot
	ClubID        int64
	Valuation     Valuation
	ImageURL      string
}

func (p Player) IsFreeAgent() bool {
	return p.ClubID == 0
}

func (p Player) OwnedBy(clubID int64) bool {
	return clubID != 0 && p.ClubID == clubID
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Age <= 0 {
		return fmt.Errorf("player age must be greater than zero")
	}
	if p.Rating < 0 || p.Rating > 99 {
		return fmt.Errorf("player rating must be between 0 and 99")
	}
	if p.Valuation.SalePrice <= 0 {
		return fmt.Errorf("player sale price must be greater than zero")
	}

	return nil
}
