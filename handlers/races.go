package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/operations"
)

type raceRequest struct {
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string  `json:"time" validate:"required"`
	Hippodrome string  `json:"hippodrome"`
	Name       *string `json:"name"`
}

// Races returns a page of races.
func (h *Handler) Races(c echo.Context) error {
	skip, limit, err := h.page(c)
	if err != nil {
		return err
	}
	races, err := h.ops.ListRaces(c.Request().Context(), skip, limit)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, races)
}

// Race returns a race with its results ordered by place.
func (h *Handler) Race(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	race, ok, err := h.ops.GetRaceWithParticipants(c.Request().Context(), id)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	return c.JSON(http.StatusOK, race)
}

// CreateRace schedules a new race.
func (h *Handler) CreateRace(c echo.Context) error {
	var req raceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	clock, err := operations.NormalizeClock(req.Time)
	if err != nil {
		return unprocessable("time must be formatted as HH:MM:SS")
	}

	race, err := h.ops.CreateRace(c.Request().Context(), operations.CreateRaceInput{
		Date:       req.Date,
		Time:       clock,
		Hippodrome: req.Hippodrome,
		Name:       req.Name,
	})
	if err != nil {
		return opError(err, http.StatusBadRequest)
	}

	h.created.WithLabelValues("race").Inc()
	return c.JSON(http.StatusCreated, race)
}
