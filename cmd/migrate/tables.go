package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	bundb "github.com/padraicbc/racetracker/db"
	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/operations"
)

const batchSize = 500

type logf func(format string, args ...any)

// prepare readies the destination schema. With reset, existing tables and
// their rows are dropped first.
func prepare(ctx context.Context, dst *bun.DB, reset bool) error {
	if reset {
		if err := bundb.DropTables(ctx, dst); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	if err := bundb.CreateTables(ctx, dst); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// run copies every table in foreign key order, then moves the id sequences past the copied rows.
func run(ctx context.Context, src *sql.DB, dst *bun.DB, printf logf) error {
	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"owners", func() (int, error) { return migrateOwners(ctx, src, dst) }},
		{"jockeys", func() (int, error) { return migrateJockeys(ctx, src, dst) }},
		{"races", func() (int, error) { return migrateRaces(ctx, src, dst) }},
		{"horses", func() (int, error) { return migrateHorses(ctx, src, dst) }},
		{"race_participants", func() (int, error) { return migrateParticipations(ctx, src, dst) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
		printf("%-18s  %d rows migrated", s.name, n)
	}

	if dst.Dialect().Name() == dialect.PG {
		resetSequences(ctx, dst, printf)
	}
	return nil
}

// --- helpers ---

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

// legacyDate scans DATE columns whether the driver hands back time.Time or text.
type legacyDate string

func (d *legacyDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = legacyDate(v.Format("2006-01-02"))
	case string:
		*d = legacyDate(trimDate(v))
	case []byte:
		*d = legacyDate(trimDate(string(v)))
	default:
		return fmt.Errorf("unsupported date value %T", src)
	}
	return nil
}

// legacyClock scans TIME columns into HH:MM:SS. A NULL leaves it invalid.
type legacyClock struct {
	value string
	valid bool
}

func (c *legacyClock) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*c = legacyClock{}
		return nil
	case time.Time:
		*c = legacyClock{value: v.Format("15:04:05"), valid: true}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported time value %T", src)
	}
	clock, err := operations.NormalizeClock(raw)
	if err != nil {
		return err
	}
	*c = legacyClock{value: clock, valid: true}
	return nil
}

func (c legacyClock) ptr() *string {
	if !c.valid {
		return nil
	}
	v := c.value
	return &v
}

func trimDate(s string) string {
	if len(s) > len("2006-01-02") {
		return s[:len("2006-01-02")]
	}
	return s
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, dst *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := dst.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// copyRows streams query results from src into dst in batches.
func copyRows[T any](ctx context.Context, src *sql.DB, dst *bun.DB, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := src.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	batch := make([]T, 0, batchSize)
	total := 0
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, dst, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := bulkInsert(ctx, dst, batch); err != nil {
		return total, err
	}
	return total + len(batch), nil
}

// --- per-table migrations ---

func migrateOwners(ctx context.Context, src *sql.DB, dst *bun.DB) (int, error) {
	return copyRows(ctx, src, dst,
		"SELECT id, name, address, phone FROM owners ORDER BY id",
		func(rows *sql.Rows) (models.Owner, error) {
			var o models.Owner
			err := rows.Scan(&o.ID, &o.Name, &o.Address, &o.Phone)
			return o, err
		})
}

func migrateJockeys(ctx context.Context, src *sql.DB, dst *bun.DB) (int, error) {
	return copyRows(ctx, src, dst,
		"SELECT id, name, address, age, rating FROM jockeys ORDER BY id",
		func(rows *sql.Rows) (models.Jockey, error) {
			var j models.Jockey
			err := rows.Scan(&j.ID, &j.Name, &j.Address, &j.Age, &j.Rating)
			return j, err
		})
}

func migrateRaces(ctx context.Context, src *sql.DB, dst *bun.DB) (int, error) {
	return copyRows(ctx, src, dst,
		"SELECT id, date, time, hippodrome, name FROM races ORDER BY id",
		func(rows *sql.Rows) (models.Race, error) {
			var (
				r     models.Race
				date  legacyDate
				clock legacyClock
				name  sql.NullString
			)
			if err := rows.Scan(&r.ID, &date, &clock, &r.Hippodrome, &name); err != nil {
				return r, err
			}
			if !clock.valid {
				return r, fmt.Errorf("race %d: missing time", r.ID)
			}
			r.Date = string(date)
			r.Time = clock.value
			r.Name = nullStr(name)
			return r, nil
		})
}

func migrateHorses(ctx context.Context, src *sql.DB, dst *bun.DB) (int, error) {
	return copyRows(ctx, src, dst,
		"SELECT id, nickname, gender, age, owner_id FROM horses ORDER BY id",
		func(rows *sql.Rows) (models.Horse, error) {
			var (
				h      models.Horse
				gender string
			)
			if err := rows.Scan(&h.ID, &h.Nickname, &gender, &h.Age, &h.OwnerID); err != nil {
				return h, err
			}
			g, err := models.ParseGender(gender)
			if err != nil {
				return h, fmt.Errorf("horse %d: %w", h.ID, err)
			}
			h.Gender = g
			return h, nil
		})
}

func migrateParticipations(ctx context.Context, src *sql.DB, dst *bun.DB) (int, error) {
	return copyRows(ctx, src, dst,
		"SELECT id, race_id, jockey_id, horse_id, place, time_result FROM race_participants ORDER BY id",
		func(rows *sql.Rows) (models.Participation, error) {
			var (
				p          models.Participation
				timeResult legacyClock
			)
			if err := rows.Scan(&p.ID, &p.RaceID, &p.JockeyID, &p.HorseID, &p.Place, &timeResult); err != nil {
				return p, err
			}
			p.TimeResult = timeResult.ptr()
			return p, nil
		})
}

func resetSequences(ctx context.Context, dst *bun.DB, printf logf) {
	for _, table := range []string{"owners", "jockeys", "races", "horses", "race_participants"} {
		q := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
			table, table,
		)
		if _, err := dst.ExecContext(ctx, q); err != nil {
			printf("reset seq %s: %v", table, err)
		}
	}
	printf("sequences reset")
}
