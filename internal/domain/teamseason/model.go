package teamseason

import "fmt"

// TeamSeason maps a season-specific team id to its franchise code.
type TeamSeason struct {
	TeamID      string
	Year        int
	FranchiseID string
}

func (t TeamSeason) Validate() error {
	if t.TeamID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Year <= 0 {
		return fmt.Errorf("team season year must be greater than zero")
	}

	return nil
}

// Key identifies a team season.
type Key struct {
	TeamID string
	Year   int
}

// Lookup resolves a team season to its franchise code.
type Lookup interface {
	FranchiseOf(teamID string, year int) (string, bool)
}

// Index is an immutable (team id, year) -> franchise code table.
type Index struct {
	byKey map[Key]string
}

func NewIndex(items []TeamSeason) *Index {
	byKey := make(map[Key]string, len(items))
	for _, item := range items {
		key := Key{TeamID: item.TeamID, Year: item.Year}
		if _, exists := byKey[key]; exists {
			continue
		}
		byKey[key] = item.FranchiseID
	}

	return &Index{byKey: byKey}
}

func (i *Index) FranchiseOf(teamID string, year int) (string, bool) {
	if i == nil {
		return "", false
	}
	code, ok := i.byKey[Key{TeamID: teamID, Year: year}]
	return code, ok
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byKey)
}
