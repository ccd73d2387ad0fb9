package repository

import (
	"context"

	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/storage"
)

// MusicRepo persists the background-music widget state.  It is a thin pass
// through to the gateway; the widget's playback lives entirely in the
// presentation layer.
type MusicRepo struct {
	gw *storage.Gateway
}

// NewMusicRepo returns a repository bound to the given gateway.
func NewMusicRepo(gw *storage.Gateway) *MusicRepo {
	return &MusicRepo{gw: gw}
}

// State returns the stored widget state, zero when nothing was saved.
func (m *MusicRepo) State(ctx context.Context) model.MusicState {
	return m.gw.LoadMusicState(ctx)
}

// SetState replaces the stored widget state.
func (m *MusicRepo) SetState(ctx context.Context, state model.MusicState) {
	m.gw.SaveMusicState(ctx, state)
}

// Clear removes the stored widget state.
func (m *MusicRepo) Clear(ctx context.Context) {
	m.gw.ClearMusicState(ctx)
}
