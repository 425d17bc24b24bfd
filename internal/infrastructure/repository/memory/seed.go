package memory

import (
	"time"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/dataset"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
)

// SampleSource is the Snapshot.Source of SeedSnapshot.
const SampleSource = "sample"

// SeedSnapshot is a small, self-consistent record set used by the sample
// data source and by tests. It covers a franchise move across team ids, a
// retired player, a mid-season trade in a final season, an unresolved team
// id and an active player with no batting rows.
func SeedSnapshot() dataset.Snapshot {
	return dataset.Snapshot{
		Source:      SampleSource,
		Players:     SeedPlayers(),
		Appearances: SeedAppearances(),
		TeamSeasons: SeedTeamSeasons(),
	}
}

func SeedPlayers() []player.Player {
	retired := time.Date(2016, time.October, 2, 0, 0, 0, 0, time.UTC)

	return []player.Player{
		{ID: "bettsmo01", FirstName: "Mookie", LastName: "Betts", Order: 0},
		{ID: "judgeaa01", FirstName: "Aaron", LastName: "Judge", Order: 1},
		{ID: "sotoju01", FirstName: "Juan", LastName: "Soto", Order: 2},
		{ID: "deverra01", FirstName: "Rafael", LastName: "Devers", Order: 3},
		{ID: "ortizda01", FirstName: "David", LastName: "Ortiz", FinalGame: &retired, Order: 4},
		{ID: "tradeja01", FirstName: "Jack", LastName: "Trade", Order: 5},
		{ID: "ghostca01", FirstName: "Casey", LastName: "Ghost", Order: 6},
		{ID: "pitchpa01", FirstName: "Pat", LastName: "Pitcher", Order: 7},
	}
}

func SeedAppearances() []batting.Appearance {
	var out []batting.Appearance
	add := func(playerID, teamID string, stint int, years ...int) {
		for _, year := range years {
			out = append(out, batting.Appearance{
				PlayerID: playerID,
				Year:     year,
				TeamID:   teamID,
				Stint:    stint,
				Order:    len(out),
			})
		}
	}

	add("bettsmo01", "BOS", 1, yearRange(2014, 2019)...)
	add("bettsmo01", "LAN", 1, yearRange(2020, 2024)...)
	add("judgeaa01", "NYA", 1, yearRange(2016, 2024)...)
	add("sotoju01", "WAS", 1, yearRange(2018, 2022)...)
	add("sotoju01", "SDN", 2, 2022)
	add("sotoju01", "SDN", 1, 2023)
	add("sotoju01", "NYA", 1, 2024)
	add("deverra01", "BOS", 1, yearRange(2017, 2024)...)
	add("ortizda01", "BOS", 1, yearRange(2014, 2016)...)
	add("tradeja01", "BOS", 1, 2023, 2024)
	add("tradeja01", "NYA", 2, 2024)
	add("ghostca01", "BOS", 1, 2022)
	add("ghostca01", "XXX", 1, 2023)
	add("ghostca01", "BOS", 1, 2024)

	return out
}

func SeedTeamSeasons() []teamseason.TeamSeason {
	var out []teamseason.TeamSeason
	add := func(teamID, franchiseID string, from, to int) {
		for _, year := range yearRange(from, to) {
			out = append(out, teamseason.TeamSeason{TeamID: teamID, Year: year, FranchiseID: franchiseID})
		}
	}

	add("BOS", "BOS", 2014, 2024)
	add("LAN", "LAD", 2014, 2024)
	add("NYA", "NYY", 2014, 2024)
	add("WAS", "WSN", 2014, 2024)
	add("SDN", "SDP", 2014, 2024)

	return out
}

func yearRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for year := from; year <= to; year++ {
		out = append(out, year)
	}
	return out
}
