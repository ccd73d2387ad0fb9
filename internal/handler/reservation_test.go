package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
	"github.com/yedam/studycafe-seat-reservation/internal/storage"
)

func newTestHandler() *ReservationHandler {
	gw := storage.NewGateway(storage.NewMemoryStore(), zerolog.Nop())
	return NewReservationHandler(repository.NewReservationRepo(gw, time.UTC), nil)
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// Dates far in the future keep the bookings clear of the past-slot guard.
const createBody = `{"seatNumber":14,"date":"2030-06-01","timeSlotId":"hour_09","userName":"Mina","duration":2}`

func newTestServer(h *ReservationHandler) *echo.Echo {
	e := echo.New()
	e.POST("/v1/reservations", h.Create)
	e.GET("/v1/reservations", h.List)
	e.PUT("/v1/reservations/:id", h.Edit)
	e.POST("/v1/reservations/:id/cancel", h.Cancel)
	e.POST("/v1/reservations/:id/complete", h.Complete)
	e.POST("/v1/reservations/expire", h.Expire)
	e.GET("/v1/timeslots", h.TimeSlots)
	return e
}

func TestCreateReservation(t *testing.T) {
	e := newTestServer(newTestHandler())

	rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var res model.Reservation
	require.NoError(t, unmarshalBody(rec, &res))
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 14, res.SeatNumber)
	assert.Equal(t, "hour_09", res.TimeSlot.ID)
	assert.Equal(t, model.StatusActive, res.Status)
}

func TestCreateReservation_Conflict(t *testing.T) {
	e := newTestServer(newTestHandler())

	rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/reservations", createBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateReservation_BadRequests(t *testing.T) {
	e := newTestServer(newTestHandler())

	cases := map[string]string{
		"malformed json": `{"seatNumber":`,
		"bad date":       `{"seatNumber":14,"date":"soon","timeSlotId":"hour_09","userName":"Mina","duration":2}`,
		"unknown slot":   `{"seatNumber":14,"date":"2030-06-01","timeSlotId":"hour_05","userName":"Mina","duration":2}`,
		"bad duration":   `{"seatNumber":14,"date":"2030-06-01","timeSlotId":"hour_09","userName":"Mina","duration":5}`,
		"blank name":     `{"seatNumber":14,"date":"2030-06-01","timeSlotId":"hour_09","userName":" ","duration":2}`,
		"past date":      `{"seatNumber":14,"date":"2020-06-01","timeSlotId":"hour_09","userName":"Mina","duration":2}`,
	}
	for name, body := range cases {
		rec := doJSON(e, http.MethodPost, "/v1/reservations", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestEditReservation(t *testing.T) {
	e := newTestServer(newTestHandler())

	rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var res model.Reservation
	require.NoError(t, unmarshalBody(rec, &res))

	edited := `{"seatNumber":14,"date":"2030-06-01","timeSlotId":"hour_10","userName":"Mina","duration":3}`
	rec = doJSON(e, http.MethodPut, "/v1/reservations/"+res.ID, edited)
	require.Equal(t, http.StatusOK, rec.Code)

	var out model.Reservation
	require.NoError(t, unmarshalBody(rec, &out))
	assert.Equal(t, res.ID, out.ID)
	assert.Equal(t, "hour_10", out.TimeSlot.ID)
	assert.Equal(t, 3, out.Duration)

	rec = doJSON(e, http.MethodPut, "/v1/reservations/nope", edited)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelReservation(t *testing.T) {
	e := newTestServer(newTestHandler())

	rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var res model.Reservation
	require.NoError(t, unmarshalBody(rec, &res))

	rec = doJSON(e, http.MethodPost, "/v1/reservations/"+res.ID+"/cancel", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The slot frees up again.
	rec = doJSON(e, http.MethodPost, "/v1/reservations", createBody)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/reservations/nope/cancel", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpireEndpoint(t *testing.T) {
	e := newTestServer(newTestHandler())

	rec := doJSON(e, http.MethodPost, "/v1/reservations/expire", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"completed":0}`, rec.Body.String())
}

func TestListReservations_Filters(t *testing.T) {
	e := newTestServer(newTestHandler())

	bodies := []string{
		createBody,
		`{"seatNumber":14,"date":"2030-06-02","timeSlotId":"hour_09","userName":"Mina","duration":2}`,
		`{"seatNumber":15,"date":"2030-06-01","timeSlotId":"hour_09","userName":"Juno","duration":1}`,
	}
	for _, b := range bodies {
		rec := doJSON(e, http.MethodPost, "/v1/reservations", b)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var out []model.Reservation
	rec := doJSON(e, http.MethodGet, "/v1/reservations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, unmarshalBody(rec, &out))
	assert.Len(t, out, 3)

	rec = doJSON(e, http.MethodGet, "/v1/reservations?date=2030-06-01", "")
	require.NoError(t, unmarshalBody(rec, &out))
	assert.Len(t, out, 2)

	rec = doJSON(e, http.MethodGet, "/v1/reservations?date=2030-06-01&seat=15", "")
	require.NoError(t, unmarshalBody(rec, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Juno", out[0].UserName)

	rec = doJSON(e, http.MethodGet, "/v1/reservations?date=nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimeSlotsEndpoint(t *testing.T) {
	e := newTestServer(newTestHandler())

	rec := doJSON(e, http.MethodGet, "/v1/timeslots", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Slots     []model.TimeSlot `json:"slots"`
		Durations []int            `json:"durations"`
	}
	require.NoError(t, unmarshalBody(rec, &out))
	assert.Len(t, out.Slots, 18)
	assert.Equal(t, []int{1, 2, 3, 4, 6, 8, 12}, out.Durations)
}
