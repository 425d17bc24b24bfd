package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	peopleCSV = "\ufeffplayerID,birthYear,nameFirst,nameLast,debut,finalGame\n" +
		"bettsmo01,1992,Mookie,Betts,2014-06-29,\n" +
		"ortizda01,1975,David,Ortiz,1997-09-02,2016-10-02\n" +
		"oddda01,1990,Odd,Date,2010-04-01,not-a-date\n"
	battingCSV = "playerID,yearID,stint,teamID,lgID,G\n" +
		"bettsmo01,2019,1,BOS,AL,150\n" +
		"bettsmo01,2020,1,LAN,NL,55\n"
	teamsCSV = "yearID,lgID,teamID,franchID,name\n" +
		"2019,AL,BOS,BOS,Boston Red Sox\n" +
		"2020,NL,LAN,LAD,Los Angeles Dodgers\n"
)

func writeDataset(t *testing.T, people, batting, teams string) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		DefaultPeopleFile:  people,
		DefaultBattingFile: batting,
		DefaultTeamsFile:   teams,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	dir := writeDataset(t, peopleCSV, battingCSV, teamsCSV)
	loader := NewLoader(dir)
	fixed := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	loader.now = func() time.Time { return fixed }

	snapshot, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fixed, snapshot.LoadedAt)
	assert.Equal(t, "csv:"+dir, snapshot.Source)

	require.Len(t, snapshot.Players, 3)
	assert.Equal(t, "bettsmo01", snapshot.Players[0].ID)
	assert.Equal(t, "Mookie", snapshot.Players[0].FirstName)
	assert.True(t, snapshot.Players[0].Active())
	assert.False(t, snapshot.Players[1].Active())
	assert.Equal(t, 2016, snapshot.Players[1].FinalGame.Year())
	assert.True(t, snapshot.Players[2].Active(), "unparsable final game counts as active")
	assert.Equal(t, 2, snapshot.Players[2].Order)

	require.Len(t, snapshot.Appearances, 2)
	assert.Equal(t, "LAN", snapshot.Appearances[1].TeamID)
	assert.Equal(t, 2020, snapshot.Appearances[1].Year)
	assert.Equal(t, 1, snapshot.Appearances[1].Stint)
	assert.Equal(t, 1, snapshot.Appearances[1].Order)

	require.Len(t, snapshot.TeamSeasons, 2)
	assert.Equal(t, "LAD", snapshot.TeamSeasons[1].FranchiseID)

	stats := snapshot.Stats()
	assert.Equal(t, 3, stats.Players)
	assert.Equal(t, 2, stats.Appearances)
	assert.Equal(t, 2, stats.TeamSeasons)
}

func TestLoader_MissingStintColumnDefaultsToZero(t *testing.T) {
	t.Parallel()

	dir := writeDataset(t, peopleCSV, "PLAYERID,YEARID,TEAMID\nbettsmo01,2019,BOS\n", teamsCSV)
	snapshot, err := NewLoader(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Appearances, 1)
	assert.Equal(t, 0, snapshot.Appearances[0].Stint)
}

func TestLoader_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		batting string
		teams   string
		wantErr string
	}{
		{
			name:    "missing column",
			batting: "playerID,yearID\nbettsmo01,2019\n",
			teams:   teamsCSV,
			wantErr: `missing required column "teamid"`,
		},
		{
			name:    "bad year",
			batting: "playerID,yearID,teamID\nbettsmo01,twenty,BOS\n",
			teams:   teamsCSV,
			wantErr: "Batting.csv line 2",
		},
		{
			name:    "non-positive batting year",
			batting: "playerID,yearID,teamID\nbettsmo01,2019,BOS\nbettsmo01,0,BOS\n",
			teams:   teamsCSV,
			wantErr: "Batting.csv line 3: appearance year must be greater than zero",
		},
		{
			name:    "non-positive team season year",
			batting: battingCSV,
			teams:   "yearID,teamID,franchID\n-1,BOS,BOS\n",
			wantErr: "Teams.csv line 2: team season year must be greater than zero",
		},
		{
			name:    "empty teams file",
			batting: battingCSV,
			teams:   "",
			wantErr: "missing header row",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := writeDataset(t, peopleCSV, tc.batting, tc.teams)
			_, err := NewLoader(dir).Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(filepath.Join(t.TempDir(), "nope")).Load(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "open"))
}

func TestParseFinalGame(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseFinalGame(""))
	assert.Nil(t, parseFinalGame("garbage"))
	require.NotNil(t, parseFinalGame("2016-10-02"))
	require.NotNil(t, parseFinalGame("10/2/2016"))
	assert.Equal(t, time.October, parseFinalGame("10/2/2016").Month())
}
