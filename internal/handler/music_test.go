package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
	"github.com/yedam/studycafe-seat-reservation/internal/storage"
)

func newMusicServer() *echo.Echo {
	gw := storage.NewGateway(storage.NewMemoryStore(), zerolog.Nop())
	h := NewMusicHandler(repository.NewMusicRepo(gw))

	e := echo.New()
	e.GET("/v1/music", h.Get)
	e.PUT("/v1/music", h.Set)
	e.DELETE("/v1/music", h.Clear)
	return e
}

func TestMusicEndpoints(t *testing.T) {
	e := newMusicServer()

	// Empty state before anything is set.
	rec := doJSON(e, http.MethodGet, "/v1/music", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state model.MusicState
	require.NoError(t, unmarshalBody(rec, &state))
	assert.Nil(t, state.MusicFile)
	assert.False(t, state.IsPlaying)

	body := `{"musicFile":{"name":"rain.mp3","url":"blob:rain","type":"audio/mpeg"},"isPlaying":true}`
	rec = doJSON(e, http.MethodPut, "/v1/music", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/music", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, unmarshalBody(rec, &state))
	require.NotNil(t, state.MusicFile)
	assert.Equal(t, "rain.mp3", state.MusicFile.Name)
	assert.True(t, state.IsPlaying)

	rec = doJSON(e, http.MethodDelete, "/v1/music", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/music", "")
	require.NoError(t, unmarshalBody(rec, &state))
	assert.Nil(t, state.MusicFile)
}
