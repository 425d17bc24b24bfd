package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/dataset"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
	qb "github.com/riskibarqy/mlb-team-timeline/internal/platform/querybuilder"
)

// SnapshotLoader reads the people, batting and teams tables once.
type SnapshotLoader struct {
	db     *sqlx.DB
	source string
	now    func() time.Time
}

func NewSnapshotLoader(db *sqlx.DB, dbName string) *SnapshotLoader {
	source := "postgres"
	if dbName != "" {
		source += ":" + dbName
	}
	return &SnapshotLoader{db: db, source: source, now: time.Now}
}

func (l *SnapshotLoader) Load(ctx context.Context) (dataset.Snapshot, error) {
	players, err := l.loadPlayers(ctx)
	if err != nil {
		return dataset.Snapshot{}, err
	}
	appearances, err := l.loadAppearances(ctx)
	if err != nil {
		return dataset.Snapshot{}, err
	}
	teamSeasons, err := l.loadTeamSeasons(ctx)
	if err != nil {
		return dataset.Snapshot{}, err
	}

	return dataset.Snapshot{
		Source:      l.source,
		LoadedAt:    l.now(),
		Players:     players,
		Appearances: appearances,
		TeamSeasons: teamSeasons,
	}, nil
}

func (l *SnapshotLoader) loadPlayers(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(peopleColumns...).From(peopleTable).OrderBy("source_order", "player_id").ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select people query")
	}

	var rows []peopleTableModel
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select people")
	}

	out := make([]player.Player, 0, len(rows))
	for i, row := range rows {
		out = append(out, player.Player{
			ID:        row.PlayerID,
			FirstName: row.NameFirst,
			LastName:  row.NameLast,
			FinalGame: timePtr(row.FinalGame),
			Order:     i,
		})
	}
	return out, nil
}

func (l *SnapshotLoader) loadAppearances(ctx context.Context) ([]batting.Appearance, error) {
	query, args, err := qb.Select(battingColumns...).From(battingTable).OrderBy("source_order").ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select batting query")
	}

	var rows []battingTableModel
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select batting")
	}

	out := make([]batting.Appearance, 0, len(rows))
	for i, row := range rows {
		out = append(out, batting.Appearance{
			PlayerID: row.PlayerID,
			Year:     row.YearID,
			TeamID:   row.TeamID,
			Stint:    row.Stint,
			Order:    i,
		})
	}
	return out, nil
}

func (l *SnapshotLoader) loadTeamSeasons(ctx context.Context) ([]teamseason.TeamSeason, error) {
	query, args, err := qb.Select(teamsColumns...).From(teamsTable).OrderBy("year_id", "team_id").ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select teams query")
	}

	var rows []teamsTableModel
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select teams")
	}

	out := make([]teamseason.TeamSeason, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamseason.TeamSeason{
			TeamID:      row.TeamID,
			Year:        row.YearID,
			FranchiseID: row.FranchID,
		})
	}
	return out, nil
}
