// Package persist saves and restores machines through a codec and a store.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/librescoot/tickfsm"
	"github.com/librescoot/tickfsm/codec"
	"github.com/librescoot/tickfsm/store"
)

// Persister writes machine records under string keys
type Persister[S tickfsm.State, D any] struct {
	store  store.Store
	codec  codec.Codec
	logger *slog.Logger
}

// Option is a functional option for configuring a Persister
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for the persister
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Persister. The persister does not own st; closing it is
// up to the caller.
func New[S tickfsm.State, D any](st store.Store, c codec.Codec, opts ...Option) *Persister[S, D] {
	o := options{logger: tickfsm.Logger}
	for _, opt := range opts {
		opt(&o)
	}
	return &Persister[S, D]{
		store:  st,
		codec:  c,
		logger: o.logger,
	}
}

// Save stores a snapshot of m under key
func (p *Persister[S, D]) Save(ctx context.Context, key string, m *tickfsm.Machine[S, D]) error {
	rec := m.Save()
	data, err := p.codec.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s with %s: %w", key, p.codec.Name(), err)
	}
	if err := p.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	p.logger.Debug("machine saved", "key", key, "state", rec.CurrentState, "bytes", len(data))
	return nil
}

// Load restores m from the record stored under key. It reports false, and
// leaves m untouched, when no record exists.
func (p *Persister[S, D]) Load(ctx context.Context, key string, m *tickfsm.Machine[S, D]) (bool, error) {
	data, err := p.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		p.logger.Debug("no saved machine", "key", key)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	var rec tickfsm.Record[S, D]
	if err := p.codec.Unmarshal(data, &rec); err != nil {
		return false, fmt.Errorf("decode %s with %s: %w", key, p.codec.Name(), err)
	}
	if err := m.Load(rec); err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	p.logger.Debug("machine loaded", "key", key, "state", rec.CurrentState)
	return true, nil
}

// Delete removes the record stored under key
func (p *Persister[S, D]) Delete(ctx context.Context, key string) error {
	if err := p.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
