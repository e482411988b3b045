package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "home_team_id", "away_team_id").
		From("matchups").
		Where(Eq("week_id", "2526-w01"), IsNull("home_win")).
		OrderBy("home_team_id").
		Limit(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT id, home_team_id, away_team_id FROM matchups WHERE week_id = $1 AND home_win IS NULL ORDER BY home_team_id LIMIT 20"
	if query != want {
		t.Fatalf("query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != "2526-w01" {
		t.Fatalf("args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("id", "name").
		Values("hl-bearcats", "Bakersfield Bearcats").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO teams (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING"
	if query != want {
		t.Fatalf("query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "hl-bearcats" {
		t.Fatalf("args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matchups").
		Set("home_score", 6).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "mx-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE matchups SET home_score = $1, updated_at = NOW() WHERE id = $2"
	if query != want {
		t.Fatalf("query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != 6 || args[1] != "mx-1" {
		t.Fatalf("args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type teamRow struct {
		ID     string `db:"id"`
		Name   string `db:"name"`
		Hidden string `db:"-"`
		NoTag  string
	}

	query, args, err := InsertModel("teams", teamRow{ID: "hl-zephyrs", Name: "Zeeland Zephyrs", Hidden: "x"}, "")
	if err != nil {
		t.Fatalf("build model insert: %v", err)
	}

	want := "INSERT INTO teams (id, name) VALUES ($1, $2)"
	if query != want {
		t.Fatalf("query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[1] != "Zeeland Zephyrs" {
		t.Fatalf("args: %+v", args)
	}
}
