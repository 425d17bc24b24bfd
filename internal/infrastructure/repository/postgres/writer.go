package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/dataset"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
	qb "github.com/riskibarqy/mlb-team-timeline/internal/platform/querybuilder"
)

const DefaultBatchSize = 1000

// Statement is one prepared multi-row INSERT ready to execute.
type Statement = dataset.Batch

// Writer turns record sets into batched INSERT statements and executes them.
type Writer struct {
	db        *sqlx.DB
	batchSize int
}

func NewWriter(db *sqlx.DB, batchSize int) *Writer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Writer{db: db, batchSize: batchSize}
}

// Truncate empties the three tables in one statement.
func (w *Writer) Truncate(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, "TRUNCATE TABLE "+peopleTable+", "+battingTable+", "+teamsTable); err != nil {
		return crerr.Wrap(err, "truncate tables")
	}
	return nil
}

// Plan builds every INSERT needed for the snapshot. People and teams come
// first so a partially applied plan still leaves joinable rows.
func (w *Writer) Plan(snapshot dataset.Snapshot) ([]Statement, error) {
	people, err := w.PlayerStatements(snapshot.Players)
	if err != nil {
		return nil, err
	}
	teams, err := w.TeamSeasonStatements(snapshot.TeamSeasons)
	if err != nil {
		return nil, err
	}
	appearances, err := w.AppearanceStatements(snapshot.Appearances)
	if err != nil {
		return nil, err
	}

	out := make([]Statement, 0, len(people)+len(teams)+len(appearances))
	out = append(out, people...)
	out = append(out, teams...)
	return append(out, appearances...), nil
}

func (w *Writer) Write(ctx context.Context, stmt Statement) error {
	if _, err := w.db.ExecContext(ctx, stmt.Query, stmt.Args...); err != nil {
		return crerr.Wrapf(err, "insert %d rows into %s", stmt.Rows, stmt.Table)
	}
	return nil
}

func (w *Writer) PlayerStatements(items []player.Player) ([]Statement, error) {
	size := qb.RowsPerStatement(len(peopleColumns), w.batchSize)
	out := make([]Statement, 0, len(items)/size+1)
	for _, batch := range chunk(items, size) {
		b := qb.InsertInto(peopleTable).Columns(peopleColumns...).Suffix("ON CONFLICT (player_id) DO NOTHING")
		for _, p := range batch {
			if err := p.Validate(); err != nil {
				return nil, crerr.Wrapf(err, "%s row %d", peopleTable, p.Order)
			}
			b.Values(p.ID, p.FirstName, p.LastName, nullTime(p.FinalGame), p.Order)
		}
		stmt, err := build(peopleTable, b)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func (w *Writer) AppearanceStatements(items []batting.Appearance) ([]Statement, error) {
	size := qb.RowsPerStatement(len(battingColumns), w.batchSize)
	out := make([]Statement, 0, len(items)/size+1)
	for _, batch := range chunk(items, size) {
		b := qb.InsertInto(battingTable).Columns(battingColumns...).Suffix("ON CONFLICT (player_id, year_id, stint, team_id) DO NOTHING")
		for _, a := range batch {
			if err := a.Validate(); err != nil {
				return nil, crerr.Wrapf(err, "%s row %d", battingTable, a.Order)
			}
			b.Values(a.PlayerID, a.Year, a.Stint, a.TeamID, a.Order)
		}
		stmt, err := build(battingTable, b)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func (w *Writer) TeamSeasonStatements(items []teamseason.TeamSeason) ([]Statement, error) {
	size := qb.RowsPerStatement(len(teamsColumns), w.batchSize)
	out := make([]Statement, 0, len(items)/size+1)
	for _, batch := range chunk(items, size) {
		b := qb.InsertInto(teamsTable).Columns(teamsColumns...).Suffix("ON CONFLICT (team_id, year_id) DO NOTHING")
		for _, ts := range batch {
			if err := ts.Validate(); err != nil {
				return nil, crerr.Wrapf(err, "%s %s/%d", teamsTable, ts.TeamID, ts.Year)
			}
			b.Values(ts.TeamID, ts.Year, ts.FranchiseID)
		}
		stmt, err := build(teamsTable, b)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func build(table string, b *qb.InsertBuilder) (Statement, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return Statement{}, crerr.Wrapf(err, "build insert %s query", table)
	}
	return Statement{Table: table, Rows: b.Rows(), Query: query, Args: args}, nil
}
