package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/racetracker/models"
)

// RaceRepository adds participant-based race lookups to the basic operations.
type RaceRepository struct {
	*Repository[models.Race]
}

func NewRaceRepository(db bun.IDB) *RaceRepository {
	return &RaceRepository{Repository: New[models.Race](db)}
}

// RaceWithParticipants is a race together with its participations ordered by place.
// Each participation has its Jockey and Horse loaded.
type RaceWithParticipants struct {
	Race           models.Race
	Participations []models.Participation
}

// ListByJockey returns every race the jockey took part in, newest date first, without duplicates.
func (r *RaceRepository) ListByJockey(ctx context.Context, jockeyID int64) ([]models.Race, error) {
	return r.listByParticipant(ctx, "rp.jockey_id = ?", jockeyID)
}

// ListByHorse returns every race the horse took part in, newest date first, without duplicates.
func (r *RaceRepository) ListByHorse(ctx context.Context, horseID int64) ([]models.Race, error) {
	return r.listByParticipant(ctx, "rp.horse_id = ?", horseID)
}

func (r *RaceRepository) listByParticipant(ctx context.Context, where string, id int64) ([]models.Race, error) {
	races := make([]models.Race, 0)
	err := r.db.NewSelect().
		Distinct().
		Model(&races).
		Join("INNER JOIN race_participants AS rp ON rp.race_id = rc.id").
		Where(where, id).
		OrderExpr("rc.date DESC, rc.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races by participant: %w", err)
	}
	return races, nil
}

// GetWithParticipants returns nil and no error when the race does not exist.
func (r *RaceRepository) GetWithParticipants(ctx context.Context, raceID int64) (*RaceWithParticipants, error) {
	race, err := r.GetByID(ctx, raceID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	participations, err := NewParticipationRepository(r.db).ListByRace(ctx, raceID)
	if err != nil {
		return nil, err
	}

	return &RaceWithParticipants{Race: *race, Participations: participations}, nil
}

// ParticipationRepository adds pair and per-race lookups to the basic operations.
type ParticipationRepository struct {
	*Repository[models.Participation]
}

func NewParticipationRepository(db bun.IDB) *ParticipationRepository {
	return &ParticipationRepository{Repository: New[models.Participation](db)}
}

// GetByRaceAndPair returns nil and no error when the jockey/horse pair is not registered in the race.
func (r *ParticipationRepository) GetByRaceAndPair(ctx context.Context, raceID, jockeyID, horseID int64) (*models.Participation, error) {
	p := new(models.Participation)
	err := r.db.NewSelect().
		Model(p).
		Where("rp.race_id = ?", raceID).
		Where("rp.jockey_id = ?", jockeyID).
		Where("rp.horse_id = ?", horseID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select participation pair: %w", err)
	}
	return p, nil
}

// ListByRace returns the participations of a race ordered by place, with jockey and horse loaded.
func (r *ParticipationRepository) ListByRace(ctx context.Context, raceID int64) ([]models.Participation, error) {
	participations := make([]models.Participation, 0)
	err := r.db.NewSelect().
		Model(&participations).
		Relation("Jockey").
		Relation("Horse").
		Where("rp.race_id = ?", raceID).
		OrderExpr("rp.place ASC, rp.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participations of race %d: %w", raceID, err)
	}
	return participations, nil
}
