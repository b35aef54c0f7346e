package operations_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/padraicbc/racetracker/dbtest"
	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/operations"
)

var today = time.Date(2030, time.January, 10, 12, 0, 0, 0, time.Local)

func newService(t *testing.T) (*operations.Service, *bun.DB) {
	t.Helper()
	bdb := dbtest.New(t)
	return operations.New(bdb, operations.WithClock(func() time.Time { return today })), bdb
}

func count(t *testing.T, bdb *bun.DB, model any) int {
	t.Helper()
	n, err := bdb.NewSelect().Model(model).Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestCreateOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, bdb := newService(t)

	owner, err := svc.CreateOwner(ctx, operations.CreateOwnerInput{Name: "A", Address: "B", Phone: "1"})
	require.NoError(t, err)
	assert.NotZero(t, owner.ID)

	got, ok, err := svc.GetOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, owner, got)

	_, err = svc.CreateOwner(ctx, operations.CreateOwnerInput{Name: "", Address: "B", Phone: "1"})
	assert.ErrorIs(t, err, operations.ErrValidation)
	assert.EqualError(t, err, "name is required")
	assert.Equal(t, 1, count(t, bdb, (*models.Owner)(nil)))

	_, ok, err = svc.GetOwner(ctx, owner.ID+1000)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateJockey(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      operations.CreateJockeyInput
		wantErr string
	}{
		"valid":           {in: operations.CreateJockeyInput{Name: "J", Address: "A", Age: 16, Rating: 0}},
		"too young":       {in: operations.CreateJockeyInput{Name: "J", Address: "A", Age: 15, Rating: 10}, wantErr: "jockey must be at least 16"},
		"negative rating": {in: operations.CreateJockeyInput{Name: "J", Address: "A", Age: 30, Rating: -1}, wantErr: "rating cannot be negative"},
		"too old":         {in: operations.CreateJockeyInput{Name: "J", Address: "A", Age: 100000, Rating: 1}, wantErr: "age must be less than 150"},
		"oldest":          {in: operations.CreateJockeyInput{Name: "J", Address: "A", Age: 149, Rating: 0}},
		"age checked first": {
			in:      operations.CreateJockeyInput{Name: "J", Address: "A", Age: 10, Rating: -5},
			wantErr: "jockey must be at least 16",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			svc, bdb := newService(t)

			jockey, err := svc.CreateJockey(ctx, tt.in)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, operations.ErrValidation)
				assert.EqualError(t, err, tt.wantErr)
				assert.Equal(t, 0, count(t, bdb, (*models.Jockey)(nil)))
				return
			}

			require.NoError(t, err)
			got, ok, err := svc.GetJockey(ctx, jockey.ID)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, operations.Jockey{ID: jockey.ID, Name: "J", Address: "A", Age: tt.in.Age, Rating: 0}, got)
		})
	}
}

func TestCreateHorse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, bdb := newService(t)

	owner, err := svc.CreateOwner(ctx, operations.CreateOwnerInput{Name: "A", Address: "B", Phone: "1"})
	require.NoError(t, err)

	horse, err := svc.CreateHorse(ctx, operations.CreateHorseInput{
		Nickname: "Gr", Gender: "Stallion", Age: 5, OwnerID: owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, horse.Age)
	assert.Equal(t, models.Stallion, horse.Gender)

	got, ok, err := svc.GetHorse(ctx, horse.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, horse, got)

	_, err = svc.CreateHorse(ctx, operations.CreateHorseInput{
		Nickname: "Gr", Gender: models.Mare, Age: 5, OwnerID: 999999,
	})
	assert.ErrorIs(t, err, operations.ErrNotFound)
	assert.EqualError(t, err, "owner with ID 999999 not found")

	_, err = svc.CreateHorse(ctx, operations.CreateHorseInput{
		Nickname: "Gr", Gender: "pony", Age: 5, OwnerID: owner.ID,
	})
	assert.ErrorIs(t, err, operations.ErrValidation)

	_, err = svc.CreateHorse(ctx, operations.CreateHorseInput{
		Nickname: "Gr", Gender: models.Gelding, Age: 0, OwnerID: owner.ID,
	})
	assert.ErrorIs(t, err, operations.ErrValidation)

	assert.Equal(t, 1, count(t, bdb, (*models.Horse)(nil)))
}

func TestCreateRace(t *testing.T) {
	t.Parallel()

	name := "Spring Cup"
	tests := map[string]struct {
		in      operations.CreateRaceInput
		wantErr string
	}{
		"tomorrow":   {in: operations.CreateRaceInput{Date: "2030-01-11", Time: "14:30", Hippodrome: "H", Name: &name}},
		"today":      {in: operations.CreateRaceInput{Date: "2030-01-10", Time: "09:00:00", Hippodrome: "H"}},
		"yesterday":  {in: operations.CreateRaceInput{Date: "2030-01-09", Time: "14:30", Hippodrome: "H"}, wantErr: "race date cannot be in the past"},
		"blank":      {in: operations.CreateRaceInput{Date: "2030-01-11", Time: "14:30", Hippodrome: "   "}, wantErr: "hippodrome name cannot be empty"},
		"past first": {in: operations.CreateRaceInput{Date: "2029-12-31", Time: "14:30", Hippodrome: ""}, wantErr: "race date cannot be in the past"},
		"bad date":   {in: operations.CreateRaceInput{Date: "11/01/2030", Time: "14:30", Hippodrome: "H"}, wantErr: "date must be formatted as YYYY-MM-DD"},
		"bad time":   {in: operations.CreateRaceInput{Date: "2030-01-11", Time: "noon", Hippodrome: "H"}, wantErr: "time must be formatted as HH:MM:SS"},
		"long hippodrome": {
			in:      operations.CreateRaceInput{Date: "2030-02-01", Time: "12:00", Hippodrome: strings.Repeat("h", 300)},
			wantErr: "hippodrome name must be at most 200 characters",
		},
		"widest hippodrome": {in: operations.CreateRaceInput{Date: "2030-02-01", Time: "12:00", Hippodrome: strings.Repeat("é", 200)}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			svc, bdb := newService(t)

			race, err := svc.CreateRace(ctx, tt.in)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, operations.ErrValidation)
				assert.EqualError(t, err, tt.wantErr)
				assert.Equal(t, 0, count(t, bdb, (*models.Race)(nil)))
				return
			}

			require.NoError(t, err)
			got, ok, err := svc.GetRace(ctx, race.ID)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, race, got)
			assert.Equal(t, tt.in.Date, got.Date)
			assert.Equal(t, tt.in.Name, got.Name)
		})
	}
}

func TestAddParticipation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, bdb := newService(t)

	race := dbtest.Race(t, bdb, "2030-02-01")
	jockey := dbtest.Jockey(t, bdb)
	horse := dbtest.Horse(t, bdb, dbtest.Owner(t, bdb))

	finish := "1:02:03.5"
	p, err := svc.AddParticipation(ctx, operations.AddParticipationInput{
		RaceID: race.ID, JockeyID: jockey.ID, HorseID: horse.ID, Place: 1, TimeResult: &finish,
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	require.NotNil(t, p.TimeResult)
	assert.Equal(t, "01:02:03.5", *p.TimeResult)

	_, err = svc.AddParticipation(ctx, operations.AddParticipationInput{
		RaceID: race.ID, JockeyID: jockey.ID, HorseID: horse.ID, Place: 2,
	})
	assert.ErrorIs(t, err, operations.ErrConflict)
	assert.EqualError(t, err, "jockey-horse pair already registered in this race")

	missing := map[string]operations.AddParticipationInput{
		"race with ID 999 not found":   {RaceID: 999, JockeyID: jockey.ID, HorseID: horse.ID, Place: 1},
		"jockey with ID 999 not found": {RaceID: race.ID, JockeyID: 999, HorseID: horse.ID, Place: 1},
		"horse with ID 999 not found":  {RaceID: race.ID, JockeyID: jockey.ID, HorseID: 999, Place: 1},
	}
	for msg, in := range missing {
		_, err := svc.AddParticipation(ctx, in)
		assert.ErrorIs(t, err, operations.ErrNotFound)
		assert.EqualError(t, err, msg)
	}

	_, err = svc.AddParticipation(ctx, operations.AddParticipationInput{
		RaceID: race.ID, JockeyID: jockey.ID, HorseID: horse.ID, Place: 0,
	})
	assert.ErrorIs(t, err, operations.ErrValidation)

	assert.Equal(t, 1, count(t, bdb, (*models.Participation)(nil)))

	rwp, ok, err := svc.GetRaceWithParticipants(ctx, race.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, rwp.Participants, 1)
	assert.Equal(t, 1, rwp.Participants[0].Place)
	assert.Equal(t, jockey.Name, rwp.Participants[0].JockeyName)
	assert.Equal(t, horse.Nickname, rwp.Participants[0].HorseName)
}

// A writer that commits the same pair between the lookup and the insert is
// stopped by the unique constraint. The trigger plays that writer on the
// connection the transaction holds.
func TestAddParticipation_StoreRejectsLateDuplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, bdb := newService(t)

	race := dbtest.Race(t, bdb, "2030-02-01")
	jockey := dbtest.Jockey(t, bdb)
	horse := dbtest.Horse(t, bdb, dbtest.Owner(t, bdb))

	_, err := bdb.ExecContext(ctx, `
		CREATE TRIGGER rival_writer BEFORE INSERT ON race_participants
		BEGIN
			INSERT INTO race_participants (race_id, jockey_id, horse_id, place)
			VALUES (NEW.race_id, NEW.jockey_id, NEW.horse_id, NEW.place + 1);
		END`)
	require.NoError(t, err)

	_, err = svc.AddParticipation(ctx, operations.AddParticipationInput{
		RaceID: race.ID, JockeyID: jockey.ID, HorseID: horse.ID, Place: 1,
	})
	assert.ErrorIs(t, err, operations.ErrConflict)
	assert.EqualError(t, err, "jockey-horse pair already registered in this race")
	assert.Equal(t, 0, count(t, bdb, (*models.Participation)(nil)))
}

func TestGetRaceWithParticipants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, bdb := newService(t)

	owner := dbtest.Owner(t, bdb)
	race := dbtest.Race(t, bdb, "2030-02-01")
	for _, place := range []int{3, 1, 2} {
		dbtest.Participation(t, bdb, race, dbtest.Jockey(t, bdb), dbtest.Horse(t, bdb, owner), place)
	}

	rwp, ok, err := svc.GetRaceWithParticipants(ctx, race.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, race.ID, rwp.Race.ID)
	assert.Equal(t, "2030-02-01", rwp.Race.Date)
	assert.Equal(t, "14:30:00", rwp.Race.Time)
	require.Len(t, rwp.Participants, 3)
	for i, p := range rwp.Participants {
		assert.Equal(t, i+1, p.Place)
		assert.NotEmpty(t, p.JockeyName)
		assert.NotEmpty(t, p.HorseName)
		assert.Nil(t, p.TimeResult)
	}

	_, ok, err = svc.GetRaceWithParticipants(ctx, race.ID+1000)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParticipantRaces(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, bdb := newService(t)

	jockey := dbtest.Jockey(t, bdb)
	horse := dbtest.Horse(t, bdb, dbtest.Owner(t, bdb))
	first := dbtest.Race(t, bdb, "2030-02-01")
	second := dbtest.Race(t, bdb, "2030-04-01")
	dbtest.Participation(t, bdb, first, jockey, horse, 2)
	dbtest.Participation(t, bdb, second, jockey, horse, 1)

	races, err := svc.JockeyRaces(ctx, jockey.ID)
	require.NoError(t, err)
	require.Len(t, races, 2)
	assert.Equal(t, "2030-04-01", races[0].Date)
	assert.Equal(t, "2030-02-01", races[1].Date)

	races, err = svc.HorseRaces(ctx, horse.ID)
	require.NoError(t, err)
	assert.Len(t, races, 2)

	_, err = svc.JockeyRaces(ctx, jockey.ID+1000)
	assert.ErrorIs(t, err, operations.ErrNotFound)
	_, err = svc.HorseRaces(ctx, horse.ID+1000)
	assert.ErrorIs(t, err, operations.ErrNotFound)

	fresh := dbtest.Jockey(t, bdb)
	races, err = svc.JockeyRaces(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Empty(t, races)
}

func TestListPagination(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t)

	for range 6 {
		_, err := svc.CreateOwner(ctx, operations.CreateOwnerInput{
			Name: gofakeit.Name(), Address: gofakeit.Street(), Phone: gofakeit.DigitN(8),
		})
		require.NoError(t, err)
	}

	first, err := svc.ListOwners(ctx, 0, 3)
	require.NoError(t, err)
	second, err := svc.ListOwners(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Len(t, second, 3)

	seen := map[int64]bool{}
	for _, o := range append(first, second...) {
		assert.False(t, seen[o.ID], "owner %d returned twice", o.ID)
		seen[o.ID] = true
	}

	_, err = svc.ListOwners(ctx, -1, 3)
	assert.ErrorIs(t, err, operations.ErrValidation)
	_, err = svc.ListRaces(ctx, 0, 0)
	assert.ErrorIs(t, err, operations.ErrValidation)

	for _, list := range []func() (int, error){
		func() (int, error) { l, err := svc.ListJockeys(ctx, 0, 10); return len(l), err },
		func() (int, error) { l, err := svc.ListHorses(ctx, 0, 10); return len(l), err },
		func() (int, error) { l, err := svc.ListRaces(ctx, 0, 10); return len(l), err },
	} {
		n, err := list()
		require.NoError(t, err)
		assert.Zero(t, n)
	}
}
