package batting

import "fmt"

// Appearance is one player-season-team row of the batting source.
type Appearance struct {
	PlayerID string
	Year     int
	TeamID   string
	// Stint orders a player's teams within one season, starting at 1.
	// Zero when the source does not carry it.
	Stint int
	Order int
}

func (a Appearance) Validate() error {
	if a.PlayerID == "" {
		return fmt.Errorf("appearance player id is required")
	}
	if a.TeamID == "" {
		return fmt.Errorf("appearance team id is required")
	}
	if a.Year <= 0 {
		return fmt.Errorf("appearance year must be greater than zero")
	}

	return nil
}
