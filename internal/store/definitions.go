package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/verte-zerg/itemstats/internal/model"
)

// Definitions is a context-bound view of the store for the stat builder.
// Lookup failures are reported as missing records; anything other than
// ErrNotFound is logged.
type Definitions struct {
	store  *Store
	ctx    context.Context
	logger *slog.Logger
}

// Definitions returns a lookup view bound to ctx.
func (s *Store) Definitions(ctx context.Context, logger *slog.Logger) *Definitions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Definitions{store: s, ctx: ctx, logger: logger}
}

// Stat returns a stat definition.
func (d *Definitions) Stat(hash model.StatHash) (*model.StatDefinition, bool) {
	def, err := d.store.StatDefinition(d.ctx, hash)
	return def, d.found(err)
}

// StatGroup returns a stat group definition.
func (d *Definitions) StatGroup(hash uint32) (*model.StatGroupDefinition, bool) {
	def, err := d.store.StatGroupDefinition(d.ctx, hash)
	return def, d.found(err)
}

// Item returns an item or plug definition.
func (d *Definitions) Item(hash uint32) (*model.ItemDefinition, bool) {
	def, err := d.store.ItemDefinition(d.ctx, hash)
	return def, d.found(err)
}

func (d *Definitions) found(err error) bool {
	if err == nil {
		return true
	}
	if !errors.Is(err, ErrNotFound) {
		d.logger.Warn("definition lookup failed", "err", err)
	}
	return false
}
