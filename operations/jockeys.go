package operations

import (
	"context"
	"errors"

	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/repository"
	"github.com/padraicbc/racetracker/uow"
)

const (
	// MinJockeyAge is the youngest age a jockey may be registered at.
	MinJockeyAge = 16
	// MaxJockeyAge bounds the age from above; ages must be strictly below it.
	MaxJockeyAge = 150
)

type CreateJockeyInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
	Age     int    `json:"age"`
	Rating  int    `json:"rating"`
}

func (s *Service) CreateJockey(ctx context.Context, in CreateJockeyInput) (Jockey, error) {
	out, err := uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) (Jockey, error) {
		if err := s.check(in); err != nil {
			return Jockey{}, err
		}
		if in.Age < MinJockeyAge {
			return Jockey{}, validationError("jockey must be at least %d", MinJockeyAge)
		}
		if in.Age >= MaxJockeyAge {
			return Jockey{}, validationError("age must be less than %d", MaxJockeyAge)
		}
		if in.Rating < 0 {
			return Jockey{}, validationError("rating cannot be negative")
		}

		jockey, err := u.Jockeys.Create(ctx, &models.Jockey{
			Name:    in.Name,
			Address: in.Address,
			Age:     in.Age,
			Rating:  in.Rating,
		})
		if err != nil {
			return Jockey{}, storeError("create jockey", err)
		}
		if err := u.Commit(); err != nil {
			return Jockey{}, err
		}
		return jockeyFromModel(jockey), nil
	})
	return out, finish(ctx, "create jockey", err)
}

func (s *Service) GetJockey(ctx context.Context, id int64) (Jockey, bool, error) {
	return getOne(ctx, s, jockeys, jockeyFromModel, id)
}

func (s *Service) ListJockeys(ctx context.Context, skip, limit int) ([]Jockey, error) {
	return listPage(ctx, s, jockeys, jockeyFromModel, skip, limit)
}

// JockeyRaces returns the races the jockey rode in, most recent first.
func (s *Service) JockeyRaces(ctx context.Context, jockeyID int64) ([]Race, error) {
	return uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) ([]Race, error) {
		_, err := u.Jockeys.GetByID(ctx, jockeyID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("jockey with ID %d not found", jockeyID)
		}
		if err != nil {
			return nil, err
		}

		races, err := u.Races.ListByJockey(ctx, jockeyID)
		if err != nil {
			return nil, err
		}
		return mapSlice(races, raceFromModel), nil
	})
}

func jockeys(u *uow.UnitOfWork) *repository.Repository[models.Jockey] { return u.Jockeys }
