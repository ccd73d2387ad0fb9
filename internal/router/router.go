// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yedam/studycafe-seat-reservation/internal/handler"
)

// RegisterRoutes wires every endpoint onto the provided Echo instance.  The
// health check and metrics live at the root; everything else sits under /v1.
func RegisterRoutes(e *echo.Echo, r *handler.ReservationHandler, s *handler.SeatMapHandler, m *handler.MusicHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")

	// Seat map and operator controls.
	v1.GET("/seatmap", s.SeatMap)
	v1.GET("/seatmap/stats", s.Stats)
	v1.PUT("/seats/:id/features", s.SetFeatures)
	v1.PUT("/seats/:id/status", s.SetStatus)

	// Reservation workflow.  The expire route precedes the :id routes only
	// for readability; echo matches static segments first either way.
	v1.GET("/reservations", r.List)
	v1.POST("/reservations", r.Create)
	v1.POST("/reservations/expire", r.Expire)
	v1.PUT("/reservations/:id", r.Edit)
	v1.POST("/reservations/:id/cancel", r.Cancel)
	v1.POST("/reservations/:id/complete", r.Complete)
	v1.GET("/timeslots", r.TimeSlots)

	// Background-music widget state.
	v1.GET("/music", m.Get)
	v1.PUT("/music", m.Set)
	v1.DELETE("/music", m.Clear)
}
