package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/operations"
)

type horseRequest struct {
	Nickname string `json:"nickname"`
	Gender   string `json:"gender" validate:"required"`
	Age      int    `json:"age"`
	OwnerID  int64  `json:"owner_id"`
}

// Horses returns a page of horses.
func (h *Handler) Horses(c echo.Context) error {
	skip, limit, err := h.page(c)
	if err != nil {
		return err
	}
	horses, err := h.ops.ListHorses(c.Request().Context(), skip, limit)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, horses)
}

// Horse returns a single horse.
func (h *Handler) Horse(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	horse, ok, err := h.ops.GetHorse(c.Request().Context(), id)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "horse not found")
	}
	return c.JSON(http.StatusOK, horse)
}

// HorseRaces returns the races a horse ran in, most recent first.
func (h *Handler) HorseRaces(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	races, err := h.ops.HorseRaces(c.Request().Context(), id)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, races)
}

// CreateHorse registers a new horse for an existing owner.
func (h *Handler) CreateHorse(c echo.Context) error {
	var req horseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	gender, err := models.ParseGender(req.Gender)
	if err != nil {
		return unprocessable("gender must be one of stallion, mare, gelding")
	}

	horse, err := h.ops.CreateHorse(c.Request().Context(), operations.CreateHorseInput{
		Nickname: req.Nickname,
		Gender:   gender,
		Age:      req.Age,
		OwnerID:  req.OwnerID,
	})
	if err != nil {
		return opError(err, http.StatusBadRequest)
	}

	h.created.WithLabelValues("horse").Inc()
	return c.JSON(http.StatusCreated, horse)
}
