package memory

import (
	"context"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
)

type TeamSeasonRepository struct {
	index *teamseason.Index
}

func NewTeamSeasonRepository(items []teamseason.TeamSeason) *TeamSeasonRepository {
	return &TeamSeasonRepository{index: teamseason.NewIndex(items)}
}

func (r *TeamSeasonRepository) Index(_ context.Context) (teamseason.Lookup, error) {
	return r.index, nil
}
