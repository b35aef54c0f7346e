package operations

import (
	"context"
	"errors"

	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/repository"
	"github.com/padraicbc/racetracker/uow"
)

const duplicatePairMsg = "jockey-horse pair already registered in this race"

type AddParticipationInput struct {
	RaceID     int64   `json:"race_id" validate:"gt=0"`
	JockeyID   int64   `json:"jockey_id" validate:"gt=0"`
	HorseID    int64   `json:"horse_id" validate:"gt=0"`
	Place      int     `json:"place" validate:"gt=0"`
	TimeResult *string `json:"time_result"`
}

// AddParticipation records the result of a jockey-horse pair in a race.
// The pair check runs in the same transaction as the insert and the store's
// unique constraint catches writers that slip past it.
func (s *Service) AddParticipation(ctx context.Context, in AddParticipationInput) (Participation, error) {
	out, err := uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) (Participation, error) {
		if err := s.check(in); err != nil {
			return Participation{}, err
		}
		var timeResult *string
		if in.TimeResult != nil {
			clock, err := NormalizeClock(*in.TimeResult)
			if err != nil {
				return Participation{}, validationError("time_result must be formatted as HH:MM:SS")
			}
			timeResult = &clock
		}

		if err := exists(ctx, u.Races.Repository, in.RaceID, "race"); err != nil {
			return Participation{}, err
		}
		if err := exists(ctx, u.Jockeys, in.JockeyID, "jockey"); err != nil {
			return Participation{}, err
		}
		if err := exists(ctx, u.Horses, in.HorseID, "horse"); err != nil {
			return Participation{}, err
		}

		existing, err := u.Participations.GetByRaceAndPair(ctx, in.RaceID, in.JockeyID, in.HorseID)
		if err != nil {
			return Participation{}, err
		}
		if existing != nil {
			return Participation{}, conflictError(duplicatePairMsg)
		}

		p, err := u.Participations.Create(ctx, &models.Participation{
			RaceID:     in.RaceID,
			JockeyID:   in.JockeyID,
			HorseID:    in.HorseID,
			Place:      in.Place,
			TimeResult: timeResult,
		})
		if err != nil {
			err = storeError("add participation", err)
			if errors.Is(err, ErrConflict) {
				return Participation{}, conflictError(duplicatePairMsg)
			}
			return Participation{}, err
		}
		if err := u.Commit(); err != nil {
			return Participation{}, storeError("add participation", err)
		}
		return participationFromModel(p), nil
	})
	return out, finish(ctx, "add participation", err)
}

func exists[M any](ctx context.Context, r *repository.Repository[M], id int64, kind string) error {
	_, err := r.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundError("%s with ID %d not found", kind, id)
	}
	return err
}
