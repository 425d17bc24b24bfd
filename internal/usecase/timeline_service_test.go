package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/franchise"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/tenure"
	rescache "github.com/riskibarqy/mlb-team-timeline/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/mlb-team-timeline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleService(t *testing.T) *TimelineService {
	t.Helper()

	directory := franchise.Default()
	resolver := rescache.NewFranchiseResolver(franchise.NewResolver(directory, franchise.DefaultThreshold), nil)
	return NewTimelineService(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewBattingRepository(memory.SeedAppearances()),
		memory.NewTeamSeasonRepository(memory.SeedTeamSeasons()),
		directory,
		resolver,
		logging.NewNop(),
		2,
	)
}

func TestTimelineService_Resolve(t *testing.T) {
	t.Parallel()

	service := newSampleService(t)
	ctx := context.Background()

	match, err := service.Resolve(ctx, "Red sox")
	require.NoError(t, err)
	assert.Equal(t, "BOS", match.Code)
	assert.Equal(t, "Boston Red Sox", match.Name)
	assert.GreaterOrEqual(t, match.Score, franchise.DefaultThreshold)

	for _, q := range []string{"", "   ", "Zzxyqq Nonexistent Team"} {
		_, err := service.Resolve(ctx, q)
		assert.ErrorIs(t, err, ErrNoMatch, q)
	}
}

func TestTimelineService_ExtractBlocks(t *testing.T) {
	t.Parallel()

	service := newSampleService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		playerID string
		want     []tenure.Block
	}{
		{
			name:     "franchise change across team ids",
			playerID: "bettsmo01",
			want: []tenure.Block{
				{StartYear: 2014, EndYear: 2019, FranchiseID: "BOS"},
				{StartYear: 2020, EndYear: 2024, FranchiseID: "LAD"},
			},
		},
		{
			name:     "mid-season trade year goes to the incoming franchise",
			playerID: "sotoju01",
			want: []tenure.Block{
				{StartYear: 2018, EndYear: 2021, FranchiseID: "WSN"},
				{StartYear: 2022, EndYear: 2023, FranchiseID: "SDP"},
				{StartYear: 2024, EndYear: 2024, FranchiseID: "NYY"},
			},
		},
		{
			name:     "unresolved team id is its own block",
			playerID: "ghostca01",
			want: []tenure.Block{
				{StartYear: 2022, EndYear: 2022, FranchiseID: "BOS"},
				{StartYear: 2023, EndYear: 2023, FranchiseID: ""},
				{StartYear: 2024, EndYear: 2024, FranchiseID: "BOS"},
			},
		},
		{name: "no batting rows", playerID: "pitchpa01", want: []tenure.Block{}},
		{name: "unknown player", playerID: "nobody99", want: []tenure.Block{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := service.ExtractBlocks(ctx, tc.playerID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := service.ExtractBlocks(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTimelineService_ExtractBlocks_BattingRowsWithoutPeopleRecord(t *testing.T) {
	t.Parallel()

	service := NewTimelineService(
		memory.NewPlayerRepository([]player.Player{{ID: "known"}}),
		memory.NewBattingRepository([]batting.Appearance{{PlayerID: "ghost", Year: 2020, TeamID: "BOS"}}),
		memory.NewTeamSeasonRepository([]teamseason.TeamSeason{{TeamID: "BOS", Year: 2020, FranchiseID: "BOS"}}),
		franchise.Default(),
		stubResolver{},
		logging.NewNop(),
		1,
	)

	got, err := service.ExtractBlocks(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, []tenure.Block{}, got)
}

func TestTimelineService_PlayersExclusiveTo(t *testing.T) {
	t.Parallel()

	service := newSampleService(t)
	ctx := context.Background()

	ids := func(code string) []string {
		players, err := service.PlayersExclusiveTo(ctx, code)
		require.NoError(t, err)
		out := make([]string, 0, len(players))
		for _, p := range players {
			out = append(out, p.ID)
		}
		return out
	}

	// tradeja01 played for BOS and NYY in 2024 and is excluded from both.
	assert.Equal(t, []string{"deverra01", "ghostca01"}, ids("BOS"))
	assert.Equal(t, []string{"judgeaa01", "sotoju01"}, ids("nyy"))
	assert.Equal(t, []string{"bettsmo01"}, ids("LAD"))
	assert.Empty(t, ids("CHC"))

	_, err := service.PlayersExclusiveTo(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTimelineService_RosterFor(t *testing.T) {
	t.Parallel()

	service := newSampleService(t)
	ctx := context.Background()

	roster, err := service.RosterFor(ctx, "lad")
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles Dodgers", roster.Franchise.Name)
	require.Len(t, roster.Players, 1)

	_, err = service.RosterFor(ctx, "ZZZ")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.RosterFor(ctx, "CHC")
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestTimelineService_BuildTimeline(t *testing.T) {
	t.Parallel()

	service := newSampleService(t)

	timeline, err := service.BuildTimeline(context.Background(), "Red sox")
	require.NoError(t, err)

	assert.Equal(t, "BOS", timeline.Franchise.Code)
	assert.Equal(t, TimelineTitle, timeline.Layout.Title)
	assert.Equal(t, TimelineXAxis, timeline.Layout.XAxisTitle)
	assert.Equal(t, 800, timeline.Layout.Height)
	assert.True(t, timeline.Layout.YAxisReversed)

	require.Len(t, timeline.Rows, 2)
	devers := timeline.Rows[0]
	assert.Equal(t, "Rafael Devers", devers.PlayerName)
	require.Len(t, devers.Segments, 1)
	seg := devers.Segments[0]
	assert.Equal(t, 2017, seg.Base)
	assert.Equal(t, 8, seg.Length)
	assert.Equal(t, "BOS", seg.Label)
	assert.Equal(t, "#BD3039", seg.Color)
	assert.Equal(t, "Rafael Devers\nTeam: Boston Red Sox\nYears: 2017-2024", seg.HoverText)
	assert.True(t, seg.ShowLegend)

	ghost := timeline.Rows[1]
	require.Len(t, ghost.Segments, 3)
	assert.False(t, ghost.Segments[0].ShowLegend, "BOS already in legend")
	unknown := ghost.Segments[1]
	assert.Equal(t, franchise.UnknownLabel, unknown.Label)
	assert.Equal(t, franchise.UnknownName, unknown.TeamName)
	assert.Equal(t, franchise.FallbackColor, unknown.Color)
	assert.True(t, unknown.ShowLegend)
	assert.False(t, ghost.Segments[2].ShowLegend)

	require.Len(t, timeline.Legend, 2)
	assert.Equal(t, "BOS (Boston Red Sox)", timeline.Legend[0].Key)
	assert.Equal(t, "Unknown (Unknown Team)", timeline.Legend[1].Key)
}

func TestTimelineService_BuildTimeline_Errors(t *testing.T) {
	t.Parallel()

	service := newSampleService(t)
	ctx := context.Background()

	_, err := service.BuildTimeline(ctx, "Zzxyqq Nonexistent Team")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, err.Error(), "Zzxyqq Nonexistent Team")

	_, err = service.BuildTimeline(ctx, "Chicago Cubs")
	assert.ErrorIs(t, err, ErrEmptyRoster)
	assert.Contains(t, err.Error(), "Chicago Cubs")
	assert.False(t, errors.Is(err, ErrNoMatch))
}

func TestRenderTimeline_HeightGrowsWithRows(t *testing.T) {
	t.Parallel()

	rows := make([]playerBlocks, 25)
	got := renderTimeline("q", franchise.Match{Code: "BOS"}, rows, franchise.Default())
	assert.Equal(t, 1000, got.Layout.Height)
	assert.Len(t, got.Rows, 25)
	assert.Empty(t, got.Legend)
}
