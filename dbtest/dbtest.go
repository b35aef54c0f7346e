// Package dbtest opens throwaway stores for tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/racetracker/db"
	"github.com/padraicbc/racetracker/models"
)

// New returns an empty in-memory SQLite store with the schema applied.
// Every call gets its own database, closed when the test ends.
func New(t testing.TB) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&_pragma=foreign_keys(1)", uuid.NewString())

	sqldb, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, db.CreateTables(context.Background(), bdb))
	return bdb
}

// Owner inserts an owner with fake details.
func Owner(t testing.TB, bdb bun.IDB) *models.Owner {
	t.Helper()
	o := &models.Owner{
		Name:    gofakeit.Name(),
		Address: gofakeit.Street(),
		Phone:   gofakeit.DigitN(10),
	}
	_, err := bdb.NewInsert().Model(o).Exec(context.Background())
	require.NoError(t, err)
	return o
}

// Jockey inserts an adult jockey with fake details.
func Jockey(t testing.TB, bdb bun.IDB) *models.Jockey {
	t.Helper()
	j := &models.Jockey{
		Name:    gofakeit.Name(),
		Address: gofakeit.Street(),
		Age:     gofakeit.IntRange(16, 60),
		Rating:  gofakeit.IntRange(0, 100),
	}
	_, err := bdb.NewInsert().Model(j).Exec(context.Background())
	require.NoError(t, err)
	return j
}

// Horse inserts a horse belonging to owner.
func Horse(t testing.TB, bdb bun.IDB, owner *models.Owner) *models.Horse {
	t.Helper()
	h := &models.Horse{
		Nickname: gofakeit.PetName(),
		Gender:   models.Genders[gofakeit.IntRange(0, len(models.Genders)-1)],
		Age:      gofakeit.IntRange(2, 20),
		OwnerID:  owner.ID,
	}
	_, err := bdb.NewInsert().Model(h).Exec(context.Background())
	require.NoError(t, err)
	return h
}

// Race inserts a race on the given YYYY-MM-DD date.
func Race(t testing.TB, bdb bun.IDB, date string) *models.Race {
	t.Helper()
	r := &models.Race{
		Date:       date,
		Time:       "14:30:00",
		Hippodrome: gofakeit.City(),
	}
	_, err := bdb.NewInsert().Model(r).Exec(context.Background())
	require.NoError(t, err)
	return r
}

// Participation inserts a result row.
func Participation(t testing.TB, bdb bun.IDB, race *models.Race, jockey *models.Jockey, horse *models.Horse, place int) *models.Participation {
	t.Helper()
	p := &models.Participation{RaceID: race.ID, JockeyID: jockey.ID, HorseID: horse.ID, Place: place}
	_, err := bdb.NewInsert().Model(p).Exec(context.Background())
	require.NoError(t, err)
	return p
}
