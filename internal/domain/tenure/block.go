// Package tenure compresses a player's season-by-season franchise history
// into contiguous blocks.
package tenure

import (
	"sort"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
)

// Observation is one batting appearance resolved to a franchise code.
// An empty FranchiseID means the team season could not be resolved.
type Observation struct {
	Year        int
	Stint       int
	Order       int
	TeamID      string
	FranchiseID string
}

func (o Observation) Resolved() bool {
	return o.FranchiseID != ""
}

// Block is an inclusive year range spent with one franchise.
type Block struct {
	StartYear   int
	EndYear     int
	FranchiseID string
}

func (b Block) Seasons() int {
	return b.EndYear - b.StartYear + 1
}

func (b Block) Resolved() bool {
	return b.FranchiseID != ""
}

// Join resolves every appearance against the team season lookup on
// (team id, year). Unmatched rows are kept with an empty franchise code.
func Join(appearances []batting.Appearance, lookup teamseason.Lookup) []Observation {
	out := make([]Observation, 0, len(appearances))
	for _, a := range appearances {
		code := ""
		if lookup != nil {
			code, _ = lookup.FranchiseOf(a.TeamID, a.Year)
		}
		out = append(out, Observation{
			Year:        a.Year,
			Stint:       a.Stint,
			Order:       a.Order,
			TeamID:      a.TeamID,
			FranchiseID: code,
		})
	}

	return out
}

// SortObservations orders by year, then stint, then source order.
func SortObservations(items []Observation) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Year != items[j].Year {
			return items[i].Year < items[j].Year
		}
		if items[i].Stint != items[j].Stint {
			return items[i].Stint < items[j].Stint
		}
		return items[i].Order < items[j].Order
	})
}

// Extract walks the observations in SortObservations order and opens a new
// block every time the franchise changes. A block ends at the last year it
// observed, so gap years never extend a block. Blocks never overlap: on a
// mid-season trade the trade year belongs to the block that starts there,
// the earlier block ends at its previous observed year and is dropped when
// the trade year was its only year. The input is not modified.
func Extract(observations []Observation) []Block {
	if len(observations) == 0 {
		return []Block{}
	}

	ordered := append([]Observation(nil), observations...)
	SortObservations(ordered)

	blocks := make([]Block, 0, 4)
	current := Block{StartYear: ordered[0].Year, EndYear: ordered[0].Year, FranchiseID: ordered[0].FranchiseID}
	// prior is the last year current observed before current.EndYear, 0 if none.
	prior := 0
	for _, obs := range ordered[1:] {
		if obs.FranchiseID == current.FranchiseID {
			if obs.Year != current.EndYear {
				prior = current.EndYear
				current.EndYear = obs.Year
			}
			continue
		}

		switch {
		case current.EndYear < obs.Year:
			blocks = append(blocks, current)
		case prior != 0:
			current.EndYear = prior
			blocks = append(blocks, current)
		}

		if n := len(blocks); n > 0 && blocks[n-1].FranchiseID == obs.FranchiseID {
			current = blocks[n-1]
			blocks = blocks[:n-1]
			prior = current.EndYear
			current.EndYear = obs.Year
			continue
		}
		current = Block{StartYear: obs.Year, EndYear: obs.Year, FranchiseID: obs.FranchiseID}
		prior = 0
	}

	return append(blocks, current)
}

// LatestSeason returns the max year and the distinct franchise codes seen
// in that year, in first-seen order. ok is false for an empty input.
func LatestSeason(observations []Observation) (year int, franchises []string, ok bool) {
	if len(observations) == 0 {
		return 0, nil, false
	}

	ordered := append([]Observation(nil), observations...)
	SortObservations(ordered)

	year = ordered[len(ordered)-1].Year
	seen := make(map[string]struct{}, 2)
	for _, obs := range ordered {
		if obs.Year != year {
			continue
		}
		if _, dup := seen[obs.FranchiseID]; dup {
			continue
		}
		seen[obs.FranchiseID] = struct{}{}
		franchises = append(franchises, obs.FranchiseID)
	}

	return year, franchises, true
}
