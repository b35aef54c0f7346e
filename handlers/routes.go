package handlers

import "github.com/labstack/echo/v4"

// Register mounts the API on e at the root and under /api/v1.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)

	for _, g := range []*echo.Group{e.Group(""), e.Group("/api/v1")} {
		g.GET("/races", h.Races)
		g.POST("/races", h.CreateRace)
		g.GET("/races/:id", h.Race)

		g.GET("/owners", h.Owners)
		g.POST("/owners", h.CreateOwner)
		g.GET("/owners/:id", h.Owner)

		g.GET("/jockeys", h.Jockeys)
		g.POST("/jockeys", h.CreateJockey)
		g.GET("/jockeys/:id", h.Jockey)
		g.GET("/jockeys/:id/races", h.JockeyRaces)

		g.GET("/horses", h.Horses)
		g.POST("/horses", h.CreateHorse)
		g.GET("/horses/:id", h.Horse)
		g.GET("/horses/:id/races", h.HorseRaces)

		g.POST("/participants", h.CreateParticipant)
	}
}
