package operations

import (
	"context"

	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/repository"
	"github.com/padraicbc/racetracker/uow"
)

type CreateOwnerInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
	Phone   string `json:"phone" validate:"required,max=20"`
}

func (s *Service) CreateOwner(ctx context.Context, in CreateOwnerInput) (Owner, error) {
	out, err := uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) (Owner, error) {
		if err := s.check(in); err != nil {
			return Owner{}, err
		}

		owner, err := u.Owners.Create(ctx, &models.Owner{
			Name:    in.Name,
			Address: in.Address,
			Phone:   in.Phone,
		})
		if err != nil {
			return Owner{}, storeError("create owner", err)
		}
		if err := u.Commit(); err != nil {
			return Owner{}, err
		}
		return ownerFromModel(owner), nil
	})
	return out, finish(ctx, "create owner", err)
}

func (s *Service) GetOwner(ctx context.Context, id int64) (Owner, bool, error) {
	return getOne(ctx, s, owners, ownerFromModel, id)
}

func (s *Service) ListOwners(ctx context.Context, skip, limit int) ([]Owner, error) {
	return listPage(ctx, s, owners, ownerFromModel, skip, limit)
}

func owners(u *uow.UnitOfWork) *repository.Repository[models.Owner] { return u.Owners }
