package preference

import (
	"testing"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

func samplePlayer() player.Player {
	return player.Player{
		ID:            1,
		Name:          "Julián Álvarez",
		Position:      player.PositionForward,
		Age:           24,
		Rating:        84,
		CountryID:     54,
		PreferredFoot: player.FootRight,
		Attributes:    player.Attributes{Pace: 82, Shooting: 83, Passing: 78, Dribbling: 84, Defending: 45, Physical: 76},
	}
}

func TestMarketFilterMatches(t *testing.T) {
	t.Parallel()

	p := samplePlayer()
	cases := []struct {
		name   string
		filter MarketFilter
		want   bool
	}{
		{name: "empty filter", filter: MarketFilter{}, want: true},
		{name: "accent-insensitive search", filter: MarketFilter{Search: "alvarez"}, want: true},
		{name: "search miss", filter: MarketFilter{Search: "messi"}, want: false},
		{name: "position hit", filter: MarketFilter{Positions: []player.Position{player.PositionMidfielder, player.PositionForward}}, want: true},
		{name: "position miss", filter: MarketFilter{Positions: []player.Position{player.PositionGoalkeeper}}, want: false},
		{name: "rating range", filter: MarketFilter{RatingMin: 80, RatingMax: 85}, want: true},
		{name: "rating below min", filter: MarketFilter{RatingMin: 85}, want: false},
		{name: "min age", filter: MarketFilter{MinAge: 25}, want: false},
		{name: "country", filter: MarketFilter{CountryID: 54}, want: true},
		{name: "foot miss", filter: MarketFilter{PreferredFoot: player.FootLeft}, want: false},
		{name: "attributes hit", filter: MarketFilter{MinAttributes: map[player.Attribute]int{player.AttributePace: 80, player.AttributeShooting: 80}}, want: true},
		{name: "attributes miss", filter: MarketFilter{MinAttributes: map[player.Attribute]int{player.AttributeDefending: 50}}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(p); got != tc.want {
				t.Fatalf("Matches() = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestMarketFilterValidate(t *testing.T) {
	t.Parallel()

	invalid := []MarketFilter{
		{RatingMin: 90, RatingMax: 80},
		{RatingMax: 120},
		{MinAge: -1},
		{Positions: []player.Position{"WING"}},
		{PreferredFoot: "none"},
		{MinAttributes: map[player.Attribute]int{"stamina": 10}},
		{MinAttributes: map[player.Attribute]int{player.AttributePace: 100}},
	}
	for i, f := range invalid {
		if err := f.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, f)
		}
	}

	if err := (MarketFilter{RatingMin: 70, Positions: []player.Position{player.PositionDefender}}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMarketFilterActive(t *testing.T) {
	t.Parallel()

	if (MarketFilter{}).Active() {
		t.Fatalf("zero filter must be inactive")
	}
	if !(MarketFilter{MinAge: 20}).Active() {
		t.Fatalf("expected active filter")
	}
}
