package operations

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/repository"
	"github.com/padraicbc/racetracker/uow"
)

// MaxHippodromeLength matches the width of the races.hippodrome column.
const MaxHippodromeLength = 200

type CreateRaceInput struct {
	Date       string  `json:"date" validate:"required"`
	Time       string  `json:"time" validate:"required"`
	Hippodrome string  `json:"hippodrome"`
	Name       *string `json:"name" validate:"omitempty,max=200"`
}

// CreateRace rejects past dates first, then blank or over-long hippodromes.
// "Past" is judged against the local calendar date of the service clock.
func (s *Service) CreateRace(ctx context.Context, in CreateRaceInput) (Race, error) {
	out, err := uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) (Race, error) {
		if err := s.check(in); err != nil {
			return Race{}, err
		}
		date, err := ParseDate(in.Date)
		if err != nil {
			return Race{}, validationError("date must be formatted as YYYY-MM-DD")
		}
		clock, err := NormalizeClock(in.Time)
		if err != nil {
			return Race{}, validationError("time must be formatted as HH:MM:SS")
		}

		day := date.Format(dateLayout)
		if day < s.now().Format(dateLayout) {
			return Race{}, validationError("race date cannot be in the past")
		}
		hippodrome := strings.TrimSpace(in.Hippodrome)
		if hippodrome == "" {
			return Race{}, validationError("hippodrome name cannot be empty")
		}
		if utf8.RuneCountInString(hippodrome) > MaxHippodromeLength {
			return Race{}, validationError("hippodrome name must be at most %d characters", MaxHippodromeLength)
		}

		race, err := u.Races.Create(ctx, &models.Race{
			Date:       day,
			Time:       clock,
			Hippodrome: hippodrome,
			Name:       copyString(in.Name),
		})
		if err != nil {
			return Race{}, storeError("create race", err)
		}
		if err := u.Commit(); err != nil {
			return Race{}, err
		}
		return raceFromModel(race), nil
	})
	return out, finish(ctx, "create race", err)
}

func (s *Service) GetRace(ctx context.Context, id int64) (Race, bool, error) {
	return getOne(ctx, s, races, raceFromModel, id)
}

func (s *Service) ListRaces(ctx context.Context, skip, limit int) ([]Race, error) {
	return listPage(ctx, s, races, raceFromModel, skip, limit)
}

// GetRaceWithParticipants returns the race and its results, best place first.
// ok is false when the race does not exist.
func (s *Service) GetRaceWithParticipants(ctx context.Context, id int64) (RaceWithParticipants, bool, error) {
	res, err := uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) (lookup[RaceWithParticipants], error) {
		rwp, err := u.Races.GetWithParticipants(ctx, id)
		if err != nil || rwp == nil {
			return lookup[RaceWithParticipants]{}, err
		}
		return lookup[RaceWithParticipants]{dto: raceWithParticipantsFromModel(rwp), ok: true}, nil
	})
	return res.dto, res.ok, err
}

func races(u *uow.UnitOfWork) *repository.Repository[models.Race] { return u.Races.Repository }
