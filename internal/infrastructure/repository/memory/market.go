package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

// Market is the shared in-process state behind the player, club and transfer
// repositories and the Gateway. It stands in for the remote store.
type Market struct {
	mu sync.RWMutex

	players     map[int64]player.Player
	playerOrder []int64
	clubs       map[int64]club.Club
	clubOrder   []int64
	transfers   map[int64]transfer.Transfer
	transferSeq int64
	directions  []exchange.CompensationDirection

	now func() time.Time
}

func NewMarket(clubs []club.Club, players []player.Player, directions []exchange.CompensationDirection) *Market {
	m := &Market{
		players:    make(map[int64]player.Player, len(players)),
		clubs:      make(map[int64]club.Club, len(clubs)),
		transfers:  make(map[int64]transfer.Transfer),
		directions: slices.Clone(directions),
		now:        time.Now,
	}
	for _, c := range clubs {
		m.clubs[c.ID] = c
		m.clubOrder = append(m.clubOrder, c.ID)
	}
	for _, p := range players {
		m.players[p.ID] = p
		m.playerOrder = append(m.playerOrder, p.ID)
	}
	return m
}

// NewSeededMarket returns a Market loaded with the demo league.
func NewSeededMarket() *Market {
	return NewMarket(SeedClubs(), SeedPlayers(), SeedCompensationDirections())
}

func (m *Market) addTransfer(t transfer.Transfer) transfer.Transfer {
	m.transferSeq++
	t.ID = m.transferSeq
	t.Status = transfer.StatusPending
	t.CreatedAt = m.now()
	m.transfers[t.ID] = t
	return t
}

func (m *Market) direction(id int64) (exchange.CompensationDirection, bool) {
	for _, d := range m.directions {
		if d.ID == id {
			return d, true
		}
	}
	return exchange.CompensationDirection{}, false
}
