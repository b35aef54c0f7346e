package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/operations"
)

type ownerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Owners returns a page of owners.
func (h *Handler) Owners(c echo.Context) error {
	skip, limit, err := h.page(c)
	if err != nil {
		return err
	}
	owners, err := h.ops.ListOwners(c.Request().Context(), skip, limit)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, owners)
}

// Owner returns a single owner.
func (h *Handler) Owner(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	owner, ok, err := h.ops.GetOwner(c.Request().Context(), id)
	if err != nil {
		return opError(err, http.StatusNotFound)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "owner not found")
	}
	return c.JSON(http.StatusOK, owner)
}

// CreateOwner registers a new owner.
func (h *Handler) CreateOwner(c echo.Context) error {
	var req ownerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	owner, err := h.ops.CreateOwner(c.Request().Context(), operations.CreateOwnerInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return opError(err, http.StatusBadRequest)
	}

	h.created.WithLabelValues("owner").Inc()
	return c.JSON(http.StatusCreated, owner)
}
