// Package operations implements the race tracker use cases.
// Each call runs in its own unit of work and returns detached snapshots.
package operations

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun"
)

// Service runs the use cases against one store.
type Service struct {
	db       *bun.DB
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used for the race date check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(db *bun.DB, opts ...Option) *Service {
	s := &Service{
		db:       db,
		validate: NewValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
