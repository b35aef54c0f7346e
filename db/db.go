package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/racetracker/config"
	"github.com/padraicbc/racetracker/models"
)

// Open connects to the store selected by cfg.DBDriver and verifies the connection.
func Open(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.DBDriver {
	case config.DriverSQLite:
		sqldb, err := sql.Open("sqlite", SQLiteDSN(cfg.SQLitePath))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// sqlite serialises writers anyway; one connection also keeps :memory: databases alive.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
		db = bun.NewDB(sqldb, pgdialect.New())
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}

	return db, nil
}

// SQLiteDSN turns a file path (or ":memory:") into a modernc DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// CreateTables creates all tables in dependency order, then the lookup indexes.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []struct {
		model       any
		foreignKeys []string
	}{
		{model: (*models.Owner)(nil)},
		{model: (*models.Jockey)(nil)},
		{model: (*models.Race)(nil)},
		{
			model:       (*models.Horse)(nil),
			foreignKeys: []string{`("owner_id") REFERENCES "owners" ("id")`},
		},
		{
			model: (*models.Participation)(nil),
			foreignKeys: []string{
				`("race_id") REFERENCES "races" ("id") ON DELETE CASCADE`,
				`("jockey_id") REFERENCES "jockeys" ("id")`,
				`("horse_id") REFERENCES "horses" ("id")`,
			},
		},
	}

	for _, t := range tables {
		q := db.NewCreateTable().Model(t.model).IfNotExists()
		for _, fk := range t.foreignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", t.model, err)
		}
	}

	indexes := []struct {
		model   any
		name    string
		columns []string
	}{
		{(*models.Race)(nil), "idx_races_date", []string{"date"}},
		{(*models.Participation)(nil), "idx_race_place", []string{"race_id", "place"}},
		{(*models.Participation)(nil), "idx_jockey_races", []string{"jockey_id"}},
		{(*models.Participation)(nil), "idx_horse_races", []string{"horse_id"}},
	}
	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}

// DropTables removes every table in reverse dependency order.
func DropTables(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*models.Participation)(nil),
		(*models.Horse)(nil),
		(*models.Race)(nil),
		(*models.Jockey)(nil),
		(*models.Owner)(nil),
	}
	for _, model := range tables {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("dropping table for %T: %w", model, err)
		}
	}
	return nil
}
