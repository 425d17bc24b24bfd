package postgres

import (
	"database/sql"
)

const (
	peopleTable  = "people"
	battingTable = "batting"
	teamsTable   = "teams"
)

type peopleTableModel struct {
	PlayerID    string       `db:"player_id"`
	NameFirst   string       `db:"name_first"`
	NameLast    string       `db:"name_last"`
	FinalGame   sql.NullTime `db:"final_game"`
	SourceOrder int          `db:"source_order"`
}

type battingTableModel struct {
	PlayerID    string `db:"player_id"`
	YearID      int    `db:"year_id"`
	Stint       int    `db:"stint"`
	TeamID      string `db:"team_id"`
	SourceOrder int    `db:"source_order"`
}

type teamsTableModel struct {
	TeamID   string `db:"team_id"`
	YearID   int    `db:"year_id"`
	FranchID string `db:"franch_id"`
}

var (
	peopleColumns  = []string{"player_id", "name_first", "name_last", "final_game", "source_order"}
	battingColumns = []string{"player_id", "year_id", "stint", "team_id", "source_order"}
	teamsColumns   = []string{"team_id", "year_id", "franch_id"}
)
