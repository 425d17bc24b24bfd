package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is a biographical record. A nil FinalGame marks an active player.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	FinalGame *time.Time
	// Order is the record's position in the source, used for stable output.
	Order int
}

func (p Player) Active() bool {
	return p.FinalGame == nil
}

// DisplayName joins first and last name, falling back to the id.
func (p Player) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name == "" {
		return p.ID
	}
	return name
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}

	return nil
}
