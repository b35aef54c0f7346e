package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	"github.com/padraicbc/racetracker/operations"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db           *bun.DB
	ops          *operations.Service
	defaultLimit int
	created      *prometheus.CounterVec
}

// New creates a Handler. The records-created counter is registered with reg.
func New(db *bun.DB, ops *operations.Service, defaultLimit int, reg prometheus.Registerer) (*Handler, error) {
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racetracker",
		Name:      "records_created_total",
		Help:      "Records created through the API, by kind.",
	}, []string{"kind"})
	if err := reg.Register(created); err != nil {
		return nil, err
	}

	return &Handler{db: db, ops: ops, defaultLimit: defaultLimit, created: created}, nil
}
