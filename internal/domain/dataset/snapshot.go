package dataset

import (
	"context"
	"time"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
)

// Snapshot is the full record set read once at start-up.
type Snapshot struct {
	Source      string
	LoadedAt    time.Time
	Players     []player.Player
	Appearances []batting.Appearance
	TeamSeasons []teamseason.TeamSeason
}

// Stats summarises a snapshot for health output and logs.
type Stats struct {
	Source      string    `json:"source"`
	LoadedAt    time.Time `json:"loaded_at"`
	Players     int       `json:"players"`
	Appearances int       `json:"appearances"`
	TeamSeasons int       `json:"team_seasons"`
}

func (s Snapshot) Stats() Stats {
	return Stats{
		Source:      s.Source,
		LoadedAt:    s.LoadedAt,
		Players:     len(s.Players),
		Appearances: len(s.Appearances),
		TeamSeasons: len(s.TeamSeasons),
	}
}

// Loader reads a snapshot from a backing store.
type Loader interface {
	Load(ctx context.Context) (Snapshot, error)
}

// Batch is one unit of persisted rows, typically a multi-row INSERT.
type Batch struct {
	Table string
	Rows  int
	Query string
	Args  []any
}

// Sink persists a snapshot in independent batches.
type Sink interface {
	Truncate(ctx context.Context) error
	Plan(snapshot Snapshot) ([]Batch, error)
	Write(ctx context.Context, batch Batch) error
}
