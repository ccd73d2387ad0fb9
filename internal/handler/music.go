package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
)

// MusicHandler exposes the persisted background-music widget state.
type MusicHandler struct {
	Repo *repository.MusicRepo
}

// NewMusicHandler constructs a MusicHandler.
func NewMusicHandler(repo *repository.MusicRepo) *MusicHandler {
	if repo == nil {
		panic("nil repository passed to NewMusicHandler")
	}
	return &MusicHandler{Repo: repo}
}

// Get handles GET /v1/music.
func (h *MusicHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Repo.State(c.Request().Context()))
}

// Set handles PUT /v1/music.
func (h *MusicHandler) Set(c echo.Context) error {
	var state model.MusicState
	if err := c.Bind(&state); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.Repo.SetState(c.Request().Context(), state)
	return c.JSON(http.StatusOK, state)
}

// Clear handles DELETE /v1/music.
func (h *MusicHandler) Clear(c echo.Context) error {
	h.Repo.Clear(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
