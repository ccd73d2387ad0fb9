package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yedam/studycafe-seat-reservation/internal/model"
)

// Gateway reads and writes the typed blobs on top of a Store.  It enforces
// the never-crash-the-UI policy: a missing or corrupt blob loads as an empty
// collection, and every storage failure is logged and swallowed rather than
// propagated.  The cost is silent data loss on corruption.
type Gateway struct {
	store Store
	log   zerolog.Logger
}

// NewGateway wraps a Store.
func NewGateway(store Store, log zerolog.Logger) *Gateway {
	return &Gateway{store: store, log: log}
}

// LoadReservations returns the full reservation list, empty on any failure.
func (g *Gateway) LoadReservations(ctx context.Context) []model.Reservation {
	var out []model.Reservation
	if !g.load(ctx, KeyReservations, &out) || out == nil {
		return []model.Reservation{}
	}
	return out
}

// SaveReservations replaces the full reservation list.
func (g *Gateway) SaveReservations(ctx context.Context, reservations []model.Reservation) {
	g.save(ctx, KeyReservations, reservations)
}

// LoadFeatureOverrides returns the per-seat override map, empty on failure.
func (g *Gateway) LoadFeatureOverrides(ctx context.Context) map[int]model.FeatureOverride {
	var out map[int]model.FeatureOverride
	if !g.load(ctx, KeyFeatureOverrides, &out) || out == nil {
		return map[int]model.FeatureOverride{}
	}
	return out
}

// SaveFeatureOverrides replaces the per-seat override map.
func (g *Gateway) SaveFeatureOverrides(ctx context.Context, overrides map[int]model.FeatureOverride) {
	g.save(ctx, KeyFeatureOverrides, overrides)
}

// LoadMusicState returns the background-music widget state.  A zero state
// comes back when nothing was saved yet or the blob is unreadable.
func (g *Gateway) LoadMusicState(ctx context.Context) model.MusicState {
	var out model.MusicState
	g.load(ctx, KeyMusicState, &out)
	return out
}

// SaveMusicState replaces the background-music widget state.
func (g *Gateway) SaveMusicState(ctx context.Context, state model.MusicState) {
	g.save(ctx, KeyMusicState, state)
}

// ClearMusicState removes the stored widget state.
func (g *Gateway) ClearMusicState(ctx context.Context) {
	if err := g.store.Delete(ctx, KeyMusicState); err != nil {
		g.log.Error().Err(err).Str("key", KeyMusicState).Msg("storage delete failed")
	}
}

// load unmarshals the blob under key into v.  It reports whether v now holds
// stored data; absence and corruption both come back false.
func (g *Gateway) load(ctx context.Context, key string, v any) bool {
	b, err := g.store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false
	}
	if err != nil {
		g.log.Error().Err(err).Str("key", key).Msg("storage read failed")
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		g.log.Error().Err(err).Str("key", key).Msg("stored blob is corrupt, treating as empty")
		return false
	}
	return true
}

func (g *Gateway) save(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		g.log.Error().Err(err).Str("key", key).Msg("marshal failed")
		return
	}
	if err := g.store.Set(ctx, key, b); err != nil {
		g.log.Error().Err(err).Str("key", key).Msg("storage write failed")
	}
}
