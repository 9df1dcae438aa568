package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/techstore/backend/internal/cart"
	"github.com/techstore/backend/pkg/kv"
	"github.com/techstore/backend/pkg/logger"
)

// Adapter persists the serialized cart under a fixed key in a kv.Store.
//
// Failure policy, by design: local cache degradation must never surface.
// Load returns an empty list on any failure (missing key, malformed JSON,
// backend down) and Save absorbs write failures; both log at warn so a
// sick backend is still visible to operators.
type Adapter struct {
	store kv.Store
	key   string
	logg  *logger.Logger
}

func NewAdapter(store kv.Store, key string, logg *logger.Logger) *Adapter {
	return &Adapter{store: store, key: key, logg: logg}
}

func (a *Adapter) Load(ctx context.Context) []cart.Line {
	raw, err := a.store.Get(ctx, a.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []cart.Line{}
	}
	if err != nil {
		a.warn(ctx, "cart.load failed, starting empty", err)
		return []cart.Line{}
	}

	var lines []cart.Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		a.warn(ctx, "cart payload malformed, starting empty", err)
		return []cart.Line{}
	}
	if lines == nil {
		lines = []cart.Line{}
	}
	return lines
}

func (a *Adapter) Save(ctx context.Context, lines []cart.Line) {
	if lines == nil {
		lines = []cart.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		a.warn(ctx, "cart.save encode failed", err)
		return
	}
	if err := a.store.Set(ctx, a.key, string(raw)); err != nil {
		a.warn(ctx, "cart.save write failed", err)
	}
}

func (a *Adapter) warn(ctx context.Context, msg string, err error) {
	if a.logg == nil {
		return
	}
	ctx = a.logg.WithFields(ctx, map[string]any{"key": a.key, "error": err.Error()})
	a.logg.Warn(ctx, msg)
}
