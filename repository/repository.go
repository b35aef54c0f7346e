// Package repository provides data access for the race tracker entities on top of bun.
// Repositories run on whatever bun.IDB they are given, usually the transaction of a unit of work.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/racetracker/db"
)

var ErrNotFound = errors.New("not found")

// Repository implements the basic record operations for one entity type E.
// E must be a bun model whose primary key column is named id.
type Repository[E any] struct {
	db bun.IDB
}

func New[E any](db bun.IDB) *Repository[E] {
	return &Repository[E]{db: db}
}

// Create inserts e and fills in its generated id.
func (r *Repository[E]) Create(ctx context.Context, e *E) (*E, error) {
	if _, err := r.db.NewInsert().Model(e).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert %T: %w", e, db.MapError(err))
	}
	return e, nil
}

// GetByID returns ErrNotFound if no row has the given id.
func (r *Repository[E]) GetByID(ctx context.Context, id int64) (*E, error) {
	e := new(E)
	err := r.db.NewSelect().
		Model(e).
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %T with id %d", ErrNotFound, e, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select %T: %w", e, err)
	}
	return e, nil
}

// List returns at most limit rows after skipping skip rows, in id order.
func (r *Repository[E]) List(ctx context.Context, skip, limit int) ([]E, error) {
	items := make([]E, 0)
	err := r.db.NewSelect().
		Model(&items).
		OrderExpr("?TableAlias.id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %T: %w", items, err)
	}
	return items, nil
}

// Update loads the row with the given id, applies fn to it and writes it back.
// fn must not change the id.
func (r *Repository[E]) Update(ctx context.Context, id int64, fn func(e *E)) (*E, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(e)
	if _, err := r.db.NewUpdate().Model(e).WherePK().Exec(ctx); err != nil {
		return nil, fmt.Errorf("update %T: %w", e, db.MapError(err))
	}
	return e, nil
}

// Delete removes the row with the given id. It returns ErrNotFound if there was none.
func (r *Repository[E]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*E)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %T: %w", (*E)(nil), db.MapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %T: %w", (*E)(nil), err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %T with id %d", ErrNotFound, (*E)(nil), id)
	}
	return nil
}
