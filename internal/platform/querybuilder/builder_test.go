package querybuilder

import (
	"strings"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("player_id", "year_id", "team_id").
		From("batting").
		Where(Eq("player_id", "bettsmo01"), IsNull("deleted_at")).
		OrderBy("source_order").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT player_id, year_id, team_id FROM batting WHERE player_id = $1 AND deleted_at IS NULL ORDER BY source_order LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "bettsmo01" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("player_id").From("people").Where(In("player_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT player_id FROM people WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("team_id", "year_id", "franch_id").
		Values("BOS", 2019, "BOS").
		Values("LAN", 2020, "LAD").
		Suffix("ON CONFLICT (team_id, year_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (team_id, year_id, franch_id) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (team_id, year_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[3] != "LAN" || args[5] != "LAD" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("a", "b").Values(1).ToSQL()
	if err == nil || !strings.Contains(err.Error(), "expected 2") {
		t.Fatalf("expected width error, got %v", err)
	}
}

func TestRowsPerStatement(t *testing.T) {
	if got := RowsPerStatement(5, 0); got != MaxParams/5 {
		t.Fatalf("unexpected limit: %d", got)
	}
	if got := RowsPerStatement(5, 500); got != 500 {
		t.Fatalf("unexpected capped limit: %d", got)
	}
	if got := RowsPerStatement(0, 10); got != 0 {
		t.Fatalf("unexpected zero-width limit: %d", got)
	}
}
