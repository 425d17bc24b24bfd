package httpapi

import (
	"time"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/dataset"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
)

type healthDTO struct {
	Status  string        `json:"status"`
	Dataset dataset.Stats `json:"dataset"`
}

type franchiseDTO struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type matchDTO struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type playerDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	FinalGame *time.Time `json:"finalGame,omitempty"`
}

type rosterDTO struct {
	Franchise franchiseDTO `json:"franchise"`
	Players   []playerDTO  `json:"players"`
}

type tenureDTO struct {
	StartYear   int    `json:"startYear"`
	EndYear     int    `json:"endYear"`
	FranchiseID string `json:"franchiseId"`
	Seasons     int    `json:"seasons"`
}

type playerTenuresDTO struct {
	PlayerID string      `json:"playerId"`
	Blocks   []tenureDTO `json:"blocks"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:        p.ID,
		Name:      p.DisplayName(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FinalGame: p.FinalGame,
	}
}
