package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/librescoot/tickfsm/codec"
	"github.com/librescoot/tickfsm/store"
)

// ErrUnknownStore is returned by Config.Open for an unsupported store kind
var ErrUnknownStore = errors.New("unknown store")

// Config selects the codec and store used for persistence
type Config struct {
	Codec     string        `env:"TICKFSM_CODEC, default=msgpack"`
	Store     string        `env:"TICKFSM_STORE, default=memory"`
	BoltPath  string        `env:"TICKFSM_BOLT_PATH, default=tickfsm.db"`
	Bucket    string        `env:"TICKFSM_BUCKET, default=machines"`
	MemoryTTL time.Duration `env:"TICKFSM_MEMORY_TTL, default=0"`
}

// LoadConfig reads Config from the environment
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Open creates the configured store and codec. The caller closes the store.
func (c *Config) Open() (store.Store, codec.Codec, error) {
	cd, err := codec.ByName(c.Codec)
	if err != nil {
		return nil, nil, err
	}

	switch c.Store {
	case "memory":
		return store.NewMemory(c.MemoryTTL), cd, nil
	case "bolt":
		st, err := store.NewBolt(c.BoltPath, c.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return st, cd, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
}
