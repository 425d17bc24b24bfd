package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
)

// PlayerRepository serves an immutable player snapshot; it needs no lock.
type PlayerRepository struct {
	active []player.Player
	index  map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	active := make([]player.Player, 0, len(players))

	for _, p := range players {
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = p
		if p.Active() {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Order < active[j].Order
	})

	return &PlayerRepository{
		active: active,
		index:  index,
	}
}

func (r *PlayerRepository) ListActive(_ context.Context) ([]player.Player, error) {
	out := make([]player.Player, 0, len(r.active))
	out = append(out, r.active...)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	p, ok := r.index[playerID]
	return p, ok, nil
}
