package main

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/racetracker/dbtest"
	"github.com/padraicbc/racetracker/models"
)

var legacySchema = []string{
	`CREATE TABLE owners (id INTEGER PRIMARY KEY, name TEXT, address TEXT, phone TEXT)`,
	`CREATE TABLE jockeys (id INTEGER PRIMARY KEY, name TEXT, address TEXT, age INTEGER, rating INTEGER)`,
	`CREATE TABLE races (id INTEGER PRIMARY KEY, date TEXT, time TEXT, hippodrome TEXT, name TEXT)`,
	`CREATE TABLE horses (id INTEGER PRIMARY KEY, nickname TEXT, gender TEXT, age INTEGER, owner_id INTEGER)`,
	`CREATE TABLE race_participants (id INTEGER PRIMARY KEY, race_id INTEGER, jockey_id INTEGER, horse_id INTEGER, place INTEGER, time_result TEXT)`,
	`INSERT INTO owners VALUES (3, 'Ann', 'Main St', '555')`,
	`INSERT INTO jockeys VALUES (7, 'Joe', 'High St', 31, 12)`,
	`INSERT INTO races VALUES (11, '2021-06-15', '14:30', 'Ascot', NULL), (12, '2022-01-02', '09:15:00', 'Epsom', 'Derby')`,
	`INSERT INTO horses VALUES (5, 'Blaze', 'STALLION', 6, 3)`,
	`INSERT INTO race_participants VALUES (1, 11, 7, 5, 2, '00:02:01'), (2, 12, 7, 5, 1, NULL)`,
}

func legacyDB(t *testing.T) *sql.DB {
	t.Helper()
	src, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory", uuid.NewString()))
	require.NoError(t, err)
	src.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = src.Close() })

	for _, stmt := range legacySchema {
		_, err := src.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return src
}

func TestRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := legacyDB(t)
	dst := dbtest.New(t)

	var lines []string
	printf := func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }

	require.NoError(t, run(ctx, src, dst, printf))
	assert.Len(t, lines, 5)

	var horse models.Horse
	require.NoError(t, dst.NewSelect().Model(&horse).Where("h.id = ?", 5).Scan(ctx))
	assert.Equal(t, models.Stallion, horse.Gender)
	assert.Equal(t, int64(3), horse.OwnerID)

	var race models.Race
	require.NoError(t, dst.NewSelect().Model(&race).Where("rc.id = ?", 12).Scan(ctx))
	require.NotNil(t, race.Name)
	assert.Equal(t, "Derby", *race.Name)
	assert.Equal(t, "09:15:00", race.Time)

	var ps []models.Participation
	require.NoError(t, dst.NewSelect().Model(&ps).OrderExpr("rp.id").Scan(ctx))
	require.Len(t, ps, 2)
	require.NotNil(t, ps[0].TimeResult)
	assert.Equal(t, "00:02:01", *ps[0].TimeResult)
	assert.Nil(t, ps[1].TimeResult)

	// re-running skips rows that already exist
	require.NoError(t, run(ctx, src, dst, printf))
	n, err := dst.NewSelect().Model((*models.Participation)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLegacyClock(t *testing.T) {
	t.Parallel()

	var c legacyClock
	require.NoError(t, c.Scan([]byte("7:05")))
	assert.Equal(t, "07:05:00", *c.ptr())

	require.NoError(t, c.Scan(nil))
	assert.Nil(t, c.ptr())

	assert.Error(t, c.Scan("late"))
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dst := dbtest.New(t)
	dbtest.Participation(t, dst, dbtest.Race(t, dst, "2030-01-01"), dbtest.Jockey(t, dst), dbtest.Horse(t, dst, dbtest.Owner(t, dst)), 1)

	countOwners := func() int {
		n, err := dst.NewSelect().Model((*models.Owner)(nil)).Count(ctx)
		require.NoError(t, err)
		return n
	}

	require.NoError(t, prepare(ctx, dst, false))
	assert.Equal(t, 1, countOwners())

	require.NoError(t, prepare(ctx, dst, true))
	assert.Equal(t, 0, countOwners())

	require.NoError(t, run(ctx, legacyDB(t), dst, func(string, ...any) {}))
	assert.Equal(t, 1, countOwners())
}
