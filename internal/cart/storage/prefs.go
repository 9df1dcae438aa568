package storage

import (
	"context"
	"strconv"

	"github.com/techstore/backend/pkg/kv"
	"github.com/techstore/backend/pkg/logger"
)

// Prefs stores the light/dark theme preference as a boolean-like string
// under its own fixed key, with the same absorb-on-failure policy as the
// cart adapter.
type Prefs struct {
	store kv.Store
	key   string
	logg  *logger.Logger
}

func NewPrefs(store kv.Store, key string, logg *logger.Logger) *Prefs {
	return &Prefs{store: store, key: key, logg: logg}
}

// LightMode reports the stored preference; dark is the default on any
// failure or unseen key.
func (p *Prefs) LightMode(ctx context.Context) bool {
	raw, err := p.store.Get(ctx, p.key)
	if err != nil {
		return false
	}
	light, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return light
}

func (p *Prefs) SetLightMode(ctx context.Context, light bool) {
	if err := p.store.Set(ctx, p.key, strconv.FormatBool(light)); err != nil && p.logg != nil {
		ctx = p.logg.WithField(ctx, "key", p.key)
		p.logg.Warn(ctx, "theme preference write failed")
	}
}
