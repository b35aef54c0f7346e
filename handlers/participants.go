package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/operations"
)

type participantRequest struct {
	RaceID     int64   `json:"race_id" validate:"gt=0"`
	JockeyID   int64   `json:"jockey_id" validate:"gt=0"`
	HorseID    int64   `json:"horse_id" validate:"gt=0"`
	Place      int     `json:"place" validate:"gt=0"`
	TimeResult *string `json:"time_result"`
}

// CreateParticipant records a jockey-horse pair's result in a race.
func (h *Handler) CreateParticipant(c echo.Context) error {
	var req participantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.TimeResult != nil {
		clock, err := operations.NormalizeClock(*req.TimeResult)
		if err != nil {
			return unprocessable("time_result must be formatted as HH:MM:SS")
		}
		req.TimeResult = &clock
	}

	p, err := h.ops.AddParticipation(c.Request().Context(), operations.AddParticipationInput{
		RaceID:     req.RaceID,
		JockeyID:   req.JockeyID,
		HorseID:    req.HorseID,
		Place:      req.Place,
		TimeResult: req.TimeResult,
	})
	if err != nil {
		return opError(err, http.StatusBadRequest)
	}

	h.created.WithLabelValues("participation").Inc()
	return c.JSON(http.StatusCreated, p)
}
