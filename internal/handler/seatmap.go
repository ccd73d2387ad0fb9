package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yedam/studycafe-seat-reservation/internal/catalog"
	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
	"github.com/yedam/studycafe-seat-reservation/internal/status"
)

// SeatMapHandler serves the projected seat map, its statistics and the
// operator controls for seat features and maintenance.
type SeatMapHandler struct {
	Projector *status.Projector
	Seats     *repository.SeatRepo
	Loc       *time.Location
}

// NewSeatMapHandler constructs a SeatMapHandler.
func NewSeatMapHandler(projector *status.Projector, seats *repository.SeatRepo, loc *time.Location) *SeatMapHandler {
	if projector == nil || seats == nil {
		panic("nil dependency passed to NewSeatMapHandler")
	}
	return &SeatMapHandler{Projector: projector, Seats: seats, Loc: loc}
}

// viewingDate resolves the optional ?date= query parameter, defaulting to
// today on the café's wall clock.
func (h *SeatMapHandler) viewingDate(c echo.Context) (model.Date, error) {
	if d := c.QueryParam("date"); d != "" {
		return model.ParseDate(d)
	}
	return model.DateOf(time.Now(), h.Loc), nil
}

// SeatMap handles GET /v1/seatmap.
func (h *SeatMapHandler) SeatMap(c echo.Context) error {
	viewing, err := h.viewingDate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	seats := h.Projector.SeatMap(c.Request().Context(), viewing)
	return c.JSON(http.StatusOK, echo.Map{
		"title":    catalog.Title,
		"subtitle": catalog.Subtitle,
		"date":     viewing,
		"seats":    seats,
	})
}

// Stats handles GET /v1/seatmap/stats.
func (h *SeatMapHandler) Stats(c echo.Context) error {
	viewing, err := h.viewingDate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	seats := h.Projector.SeatMap(c.Request().Context(), viewing)
	return c.JSON(http.StatusOK, echo.Map{
		"date":       viewing,
		"stats":      status.Summarize(seats),
		"zones":      status.SummarizeZones(seats),
		"facilities": status.SummarizeFacilities(seats),
	})
}

// SetFeatures handles PUT /v1/seats/:id/features.  Only the fields present
// in the body change; the rest of the override is preserved.
func (h *SeatMapHandler) SetFeatures(c echo.Context) error {
	seatID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var body struct {
		HasOutlet *bool `json:"hasOutlet"`
		IsWindow  *bool `json:"isWindow"`
		IsQuiet   *bool `json:"isQuiet"`
		IsGroup   *bool `json:"isGroup"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	seat, err := h.Seats.SetFeatures(c.Request().Context(), seatID, model.FeatureOverride{
		HasOutlet: body.HasOutlet,
		IsWindow:  body.IsWindow,
		IsQuiet:   body.IsQuiet,
		IsGroup:   body.IsGroup,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, seat)
}

// SetStatus handles PUT /v1/seats/:id/status, toggling maintenance mode.
func (h *SeatMapHandler) SetStatus(c echo.Context) error {
	seatID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var body struct {
		Status model.SeatStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	switch err := h.Seats.SetStatus(seatID, body.Status); {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	case errors.Is(err, repository.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}
