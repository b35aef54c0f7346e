// Package uow groups repository calls into one transaction.
package uow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/racetracker/logger"
	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/repository"
)

var ErrClosed = errors.New("unit of work already closed")

// UnitOfWork owns one transaction and the repositories bound to it.
// Nothing is persisted unless Commit is called.
type UnitOfWork struct {
	Owners         *repository.Repository[models.Owner]
	Jockeys        *repository.Repository[models.Jockey]
	Horses         *repository.Repository[models.Horse]
	Races          *repository.RaceRepository
	Participations *repository.ParticipationRepository

	tx     bun.Tx
	log    *zap.Logger
	closed bool
}

// Begin opens a transaction. The caller must Close the unit of work.
func Begin(ctx context.Context, db *bun.DB) (*UnitOfWork, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debug("unit of work started")

	return &UnitOfWork{
		Owners:         repository.New[models.Owner](tx),
		Jockeys:        repository.New[models.Jockey](tx),
		Horses:         repository.New[models.Horse](tx),
		Races:          repository.NewRaceRepository(tx),
		Participations: repository.NewParticipationRepository(tx),
		tx:             tx,
		log:            log,
	}, nil
}

// Commit makes every change of the unit of work durable.
func (u *UnitOfWork) Commit() error {
	if u.closed {
		return ErrClosed
	}
	u.closed = true
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	u.log.Debug("unit of work committed")
	return nil
}

// Rollback discards every change of the unit of work.
func (u *UnitOfWork) Rollback() error {
	if u.closed {
		return ErrClosed
	}
	u.closed = true
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	u.log.Debug("unit of work rolled back")
	return nil
}

// Close rolls back unless Commit or Rollback already ran. It is safe to call more than once.
func (u *UnitOfWork) Close() error {
	if u.closed {
		return nil
	}
	return u.Rollback()
}

// Do runs fn inside a new unit of work and always releases it.
// fn decides whether to Commit; returning without committing discards the changes.
func Do[T any](ctx context.Context, db *bun.DB, fn func(ctx context.Context, u *UnitOfWork) (T, error)) (T, error) {
	var zero T

	u, err := Begin(ctx, db)
	if err != nil {
		return zero, err
	}
	defer func() {
		if cerr := u.Close(); cerr != nil {
			u.log.Error("release unit of work", zap.Error(cerr))
		}
	}()

	return fn(ctx, u)
}
