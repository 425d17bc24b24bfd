package memory

import (
	"context"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
)

type BattingRepository struct {
	byPlayer map[string][]batting.Appearance
}

func NewBattingRepository(items []batting.Appearance) *BattingRepository {
	byPlayer := make(map[string][]batting.Appearance)
	for _, item := range items {
		byPlayer[item.PlayerID] = append(byPlayer[item.PlayerID], item)
	}

	return &BattingRepository{byPlayer: byPlayer}
}

func (r *BattingRepository) ListByPlayer(_ context.Context, playerID string) ([]batting.Appearance, error) {
	rows := r.byPlayer[playerID]
	out := make([]batting.Appearance, 0, len(rows))
	out = append(out, rows...)

	return out, nil
}
