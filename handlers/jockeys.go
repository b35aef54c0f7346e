package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/operations"
)

type jockeyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Age     int    `json:"age"`
	Rating  int    `json:"rating"`
}

// Jockeys returns a page of jockeys.
func (h *Handler) Jockeys(c echo.Context) error {
	skip, limit, err := h.page(c)
	if err != nil {
		return err
	}
	jockeys, err := h.ops.ListJockeys(c.Request().Context(), skip, limit)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, jockeys)
}

// Jockey returns a single jockey.
func (h *Handler) Jockey(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	jockey, ok, err := h.ops.GetJockey(c.Request().Context(), id)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "jockey not found")
	}
	return c.JSON(http.StatusOK, jockey)
}

// JockeyRaces returns the races a jockey rode in, most recent first.
func (h *Handler) JockeyRaces(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	races, err := h.ops.JockeyRaces(c.Request().Context(), id)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, races)
}

// CreateJockey registers a new jockey.
func (h *Handler) CreateJockey(c echo.Context) error {
	var req jockeyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	jockey, err := h.ops.CreateJockey(c.Request().Context(), operations.CreateJockeyInput{
		Name:    req.Name,
		Address: req.Address,
		Age:     req.Age,
		Rating:  req.Rating,
	})
	if err != nil {
		return opError(err, http.StatusBadRequest)
	}

	h.created.WithLabelValues("jockey").Inc()
	return c.JSON(http.StatusCreated, jockey)
}
