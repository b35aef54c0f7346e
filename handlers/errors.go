package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/config"
	"github.com/padraicbc/racetracker/operations"
)

// opError maps an operation failure to an HTTP error.
// notFound is the status used when a referenced record is missing.
func opError(err error, notFound int) error {
	var opErr *operations.Error
	if !errors.As(err, &opErr) {
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
	}
	switch {
	case errors.Is(err, operations.ErrNotFound):
		return echo.NewHTTPError(notFound, opErr.Msg)
	case errors.Is(err, operations.ErrValidation), errors.Is(err, operations.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, opErr.Msg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, opErr.Msg)
}

func unprocessable(msg string) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, msg)
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return unprocessable("malformed request body")
	}
	if err := c.Validate(req); err != nil {
		return unprocessable(operations.ValidationMessage(err))
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, unprocessable("id must be a positive integer")
	}
	return id, nil
}

func (h *Handler) page(c echo.Context) (skip, limit int, err error) {
	limit = h.defaultLimit
	err = echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return 0, 0, unprocessable("skip and limit must be integers")
	}
	if skip < 0 {
		return 0, 0, unprocessable("skip cannot be negative")
	}
	if limit < 1 || limit > config.MaxPageLimit {
		return 0, 0, unprocessable("limit must be between 1 and " + strconv.Itoa(config.MaxPageLimit))
	}
	return skip, limit, nil
}
