package operations

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/padraicbc/racetracker/db"
	"github.com/padraicbc/racetracker/logger"
	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/repository"
	"github.com/padraicbc/racetracker/uow"
)

type lookup[D any] struct {
	dto D
	ok  bool
}

// getOne fetches one entity through the repository picked from the unit of work.
// ok is false when no entity has the id.
func getOne[M, D any](ctx context.Context, s *Service, pick func(*uow.UnitOfWork) *repository.Repository[M], conv func(*M) D, id int64) (D, bool, error) {
	res, err := uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) (lookup[D], error) {
		m, err := pick(u).GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return lookup[D]{}, nil
		}
		if err != nil {
			return lookup[D]{}, err
		}
		return lookup[D]{dto: conv(m), ok: true}, nil
	})
	return res.dto, res.ok, err
}

func listPage[M, D any](ctx context.Context, s *Service, pick func(*uow.UnitOfWork) *repository.Repository[M], conv func(*M) D, skip, limit int) ([]D, error) {
	if skip < 0 {
		return nil, validationError("skip cannot be negative")
	}
	if limit < 1 {
		return nil, validationError("limit must be positive")
	}
	return uow.Do(ctx, s.db, func(ctx context.Context, u *uow.UnitOfWork) ([]D, error) {
		items, err := pick(u).List(ctx, skip, limit)
		if err != nil {
			return nil, err
		}
		return mapSlice(items, conv), nil
	})
}

// storeError turns constraint violations reported by the store into business errors.
func storeError(op string, err error) error {
	var opErr *Error
	switch {
	case errors.As(err, &opErr):
		return err
	case errors.Is(err, db.ErrUniqueViolation):
		return conflictError("%s: record already exists", op)
	case errors.Is(err, db.ErrForeignKeyViolation):
		return notFoundError("%s: referenced record not found", op)
	case errors.Is(err, db.ErrNotNullViolation), errors.Is(err, db.ErrCheckViolation), errors.Is(err, db.ErrDataViolation):
		return validationError("%s: %v", op, err)
	case errors.Is(err, models.ErrInvalidGender):
		return validationError("%v", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// finish logs the outcome of a mutating operation and returns err unchanged.
func finish(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	log := logger.FromContext(ctx)
	var opErr *Error
	if errors.As(err, &opErr) {
		log.Debug("operation rejected", zap.String("op", op), zap.String("reason", opErr.Msg))
	} else {
		log.Error("operation failed", zap.String("op", op), zap.Error(err))
	}
	return err
}
