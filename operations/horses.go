package operations

import (
	"context"
	"errors"

	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/repository"
	"github.com/padraicbc/racetracker/uow"
)

type CreateHorseInput struct {
	Nickname string        `json:"nickname" validate:"required,max=100"`
	Gender   models.Gender `json:"gender" validate:"required"`
	Age      int           `json:"age" validate:"gt=0,lt=50"`
	OwnerID  int64         `json:"owner_id" validate:"gt=0"`
}

func (s *Service) CreateHorse(ctx context.Context, in CreateHorseInput) (Horse, error) {
	out, err := uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) (Horse, error) {
		if err := s.check(in); err != nil {
			return Horse{}, err
		}
		gender, err := models.ParseGender(string(in.Gender))
		if err != nil {
			return Horse{}, validationError("gender must be one of stallion, mare, gelding")
		}

		_, err = u.Owners.GetByID(ctx, in.OwnerID)
		if errors.Is(err, repository.ErrNotFound) {
			return Horse{}, notFoundError("owner with ID %d not found", in.OwnerID)
		}
		if err != nil {
			return Horse{}, err
		}

		horse, err := u.Horses.Create(ctx, &models.Horse{
			Nickname: in.Nickname,
			Gender:   gender,
			Age:      in.Age,
			OwnerID:  in.OwnerID,
		})
		if err != nil {
			return Horse{}, storeError("create horse", err)
		}
		if err := u.Commit(); err != nil {
			return Horse{}, err
		}
		return horseFromModel(horse), nil
	})
	return out, finish(ctx, "create horse", err)
}

func (s *Service) GetHorse(ctx context.Context, id int64) (Horse, bool, error) {
	return getOne(ctx, s, horses, horseFromModel, id)
}

func (s *Service) ListHorses(ctx context.Context, skip, limit int) ([]Horse, error) {
	return listPage(ctx, s, horses, horseFromModel, skip, limit)
}

// HorseRaces returns the races the horse ran in, most recent first.
func (s *Service) HorseRaces(ctx context.Context, horseID int64) ([]Race, error) {
	return uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) ([]Race, error) {
		_, err := u.Horses.GetByID(ctx, horseID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("horse with ID %d not found", horseID)
		}
		if err != nil {
			return nil, err
		}

		races, err := u.Races.ListByHorse(ctx, horseID)
		if err != nil {
			return nil, err
		}
		return mapSlice(races, raceFromModel), nil
	})
}

func horses(u *uow.UnitOfWork) *repository.Repository[models.Horse] { return u.Horses }
