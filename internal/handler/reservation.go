package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yedam/studycafe-seat-reservation/internal/metrics"
	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/queue"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
	publisher "github.com/yedam/studycafe-seat-reservation/internal/service"
)

// ReservationHandler exposes the reservation workflow over HTTP.  Conflict
// and not-found outcomes from the repository map to 409 and 404; validation
// failures map to 400.  Events are published best-effort and never fail a
// request.
type ReservationHandler struct {
	Repo *repository.ReservationRepo
	Pub  *publisher.Publisher // nil when events are disabled
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(repo *repository.ReservationRepo, pub *publisher.Publisher) *ReservationHandler {
	if repo == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Repo: repo, Pub: pub}
}

// reservationRequest is the JSON body for create and edit.  The slot is
// referenced by id and resolved against the fixed catalog; the stored
// record embeds the full slot.
type reservationRequest struct {
	SeatNumber int    `json:"seatNumber"`
	Date       string `json:"date"` // YYYY-MM-DD
	TimeSlotID string `json:"timeSlotId"`
	UserName   string `json:"userName"`
	Duration   int    `json:"duration"` // hours
}

func (b reservationRequest) toModel() (model.Request, error) {
	date, err := model.ParseDate(b.Date)
	if err != nil {
		return model.Request{}, err
	}
	slot, ok := model.TimeSlotByID(b.TimeSlotID)
	if !ok {
		return model.Request{}, errors.New("unknown time slot id")
	}
	return model.Request{
		SeatNumber: b.SeatNumber,
		Date:       date,
		TimeSlot:   slot,
		UserName:   b.UserName,
		Duration:   b.Duration,
	}, nil
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body reservationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req, err := body.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.Repo.Create(c.Request().Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}
	metrics.IncCreated()
	h.publish(c, queue.EventCreated, res)
	return c.JSON(http.StatusCreated, res)
}

// Edit handles PUT /v1/reservations/:id.
func (h *ReservationHandler) Edit(c echo.Context) error {
	id := c.Param("id")
	var body reservationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req, err := body.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.Repo.Edit(c.Request().Context(), id, req)
	if err != nil {
		return h.mapError(c, err)
	}
	h.publish(c, queue.EventEdited, res)
	return c.JSON(http.StatusOK, res)
}

// Cancel handles POST /v1/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	res, err := h.Repo.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	metrics.IncClosed("cancelled")
	h.publish(c, queue.EventCancelled, res)
	return c.NoContent(http.StatusNoContent)
}

// Complete handles POST /v1/reservations/:id/complete.
func (h *ReservationHandler) Complete(c echo.Context) error {
	res, err := h.Repo.Complete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	metrics.IncClosed("completed")
	h.publish(c, queue.EventCompleted, res)
	return c.NoContent(http.StatusNoContent)
}

// Expire handles POST /v1/reservations/expire, the manual trigger for the
// periodic sweep.
func (h *ReservationHandler) Expire(c echo.Context) error {
	n := h.Repo.ExpireDue(c.Request().Context())
	if n > 0 {
		metrics.AddExpired(n)
	}
	return c.JSON(http.StatusOK, echo.Map{"completed": n})
}

// List handles GET /v1/reservations with optional date and seat filters.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	out := h.Repo.All(ctx)

	if d := c.QueryParam("date"); d != "" {
		date, err := model.ParseDate(d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		out = keep(out, func(r model.Reservation) bool { return r.Date.Equal(date) })
	}
	if s := c.QueryParam("seat"); s != "" {
		seat, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
		}
		out = keep(out, func(r model.Reservation) bool { return r.SeatNumber == seat })
	}
	return c.JSON(http.StatusOK, out)
}

// TimeSlots handles GET /v1/timeslots: the fixed slot catalog and the
// offered durations, for populating the booking form.
func (h *ReservationHandler) TimeSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"slots":     model.TimeSlots(),
		"durations": model.DurationOptions(),
	})
}

func (h *ReservationHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		metrics.IncConflict()
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, repository.ErrPastSlot), errors.Is(err, repository.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// publish sends a lifecycle event, ignoring failures: event delivery must
// never fail the user-facing operation.
func (h *ReservationHandler) publish(c echo.Context, eventType string, res model.Reservation) {
	if h.Pub == nil {
		return
	}
	ev := queue.EventFor(eventType, res, time.Now().UTC().Format(time.RFC3339))
	_ = h.Pub.Publish(c.Request().Context(), ev)
}

func keep(in []model.Reservation, f func(model.Reservation) bool) []model.Reservation {
	out := []model.Reservation{}
	for _, r := range in {
		if f(r) {
			out = append(out, r)
		}
	}
	return out
}
