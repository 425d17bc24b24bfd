// Package csvfile loads the player, batting and team-season record sets
// from a directory of Lahman-style CSV files.
package csvfile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/dataset"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultPeopleFile  = "People.csv"
	DefaultBattingFile = "Batting.csv"
	DefaultTeamsFile   = "Teams.csv"
)

var (
	peopleColumns  = []string{"playerid", "namefirst", "namelast", "finalgame"}
	battingColumns = []string{"playerid", "yearid", "teamid"}
	teamsColumns   = []string{"teamid", "yearid", "franchid"}
)

var finalGameLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01/02/2006",
}

type Loader struct {
	dir         string
	peopleFile  string
	battingFile string
	teamsFile   string
	now         func() time.Time
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:         dir,
		peopleFile:  DefaultPeopleFile,
		battingFile: DefaultBattingFile,
		teamsFile:   DefaultTeamsFile,
		now:         time.Now,
	}
}

// Load reads the three files concurrently. Any malformed file aborts the
// whole load.
func (l *Loader) Load(ctx context.Context) (dataset.Snapshot, error) {
	snapshot := dataset.Snapshot{Source: "csv:" + l.dir}

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := readFile(ctx, l.path(l.peopleFile), peopleColumns, readPlayers)
		snapshot.Players = items
		return err
	})
	p.Go(func(ctx context.Context) error {
		items, err := readFile(ctx, l.path(l.battingFile), battingColumns, readAppearances)
		snapshot.Appearances = items
		return err
	})
	p.Go(func(ctx context.Context) error {
		items, err := readFile(ctx, l.path(l.teamsFile), teamsColumns, readTeamSeasons)
		snapshot.TeamSeasons = items
		return err
	})
	if err := p.Wait(); err != nil {
		return dataset.Snapshot{}, crerr.Wrapf(err, "load csv dataset from %q", l.dir)
	}

	snapshot.LoadedAt = l.now()
	return snapshot, nil
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.dir, name)
}

func readFile[T any](ctx context.Context, path string, required []string, read func(context.Context, *table) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return decode(ctx, filepath.Base(path), f, required, read)
}

func decode[T any](ctx context.Context, name string, r io.Reader, required []string, read func(context.Context, *table) ([]T, error)) ([]T, error) {
	t, err := newTable(name, r, required...)
	if err != nil {
		return nil, err
	}
	return read(ctx, t)
}

func readPlayers(ctx context.Context, t *table) ([]player.Player, error) {
	var out []player.Player
	for {
		ok, err := t.next()
		if err != nil || !ok {
			return out, err
		}
		if len(out)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		id, err := t.requiredStr("playerid")
		if err != nil {
			return nil, err
		}
		p := player.Player{
			ID:        id,
			FirstName: t.str("namefirst"),
			LastName:  t.str("namelast"),
			FinalGame: parseFinalGame(t.str("finalgame")),
			Order:     len(out),
		}
		if err := p.Validate(); err != nil {
			return nil, t.invalid(err)
		}
		out = append(out, p)
	}
}

func readAppearances(ctx context.Context, t *table) ([]batting.Appearance, error) {
	var out []batting.Appearance
	for {
		ok, err := t.next()
		if err != nil || !ok {
			return out, err
		}
		if len(out)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		id, err := t.requiredStr("playerid")
		if err != nil {
			return nil, err
		}
		teamID, err := t.requiredStr("teamid")
		if err != nil {
			return nil, err
		}
		year, err := t.integer("yearid")
		if err != nil {
			return nil, err
		}
		stint, err := t.optionalInt("stint")
		if err != nil {
			return nil, err
		}
		a := batting.Appearance{
			PlayerID: id,
			Year:     year,
			TeamID:   teamID,
			Stint:    stint,
			Order:    len(out),
		}
		if err := a.Validate(); err != nil {
			return nil, t.invalid(err)
		}
		out = append(out, a)
	}
}

func readTeamSeasons(ctx context.Context, t *table) ([]teamseason.TeamSeason, error) {
	var out []teamseason.TeamSeason
	for {
		ok, err := t.next()
		if err != nil || !ok {
			return out, err
		}
		if len(out)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		teamID, err := t.requiredStr("teamid")
		if err != nil {
			return nil, err
		}
		year, err := t.integer("yearid")
		if err != nil {
			return nil, err
		}
		ts := teamseason.TeamSeason{
			TeamID:      teamID,
			Year:        year,
			FranchiseID: t.str("franchid"),
		}
		if err := ts.Validate(); err != nil {
			return nil, t.invalid(err)
		}
		out = append(out, ts)
	}
}

// parseFinalGame returns nil for blank or unparsable dates; both mean the
// player is still active.
func parseFinalGame(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range finalGameLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}
