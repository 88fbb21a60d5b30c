package chains

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds chain configs by chain id.
type Registry struct {
	mu      sync.RWMutex
	configs map[uint64]Config
}

// NewRegistry returns a registry holding the given configs. Invalid configs
// are rejected.
func NewRegistry(configs ...Config) (*Registry, error) {
	r := &Registry{configs: make(map[uint64]Config, len(configs))}
	for _, cfg := range configs {
		if err := r.Register(cfg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Lookup returns a copy of the config for chainID.
func (r *Registry) Lookup(chainID uint64) (*Config, error) {
	r.mu.RLock()
	cfg, ok := r.configs[chainID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, chainID)
	}
	return &cfg, nil
}

// Register adds or replaces the config for cfg.ChainID.
func (r *Registry) Register(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.configs[cfg.ChainID] = cfg
	r.mu.Unlock()
	return nil
}

// IDs returns the registered chain ids in ascending order.
func (r *Registry) IDs() []uint64 {
	r.mu.RLock()
	ids := make([]uint64, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var defaultRegistry = mustDefaultRegistry()

func mustDefaultRegistry() *Registry {
	r, err := NewRegistry(Defaults()...)
	if err != nil {
		panic(fmt.Sprintf("chains: default registry: %v", err))
	}
	return r
}

// Default returns the process-wide registry used by amm.NewPool.
func Default() *Registry { return defaultRegistry }

// Lookup reads from the default registry.
func Lookup(chainID uint64) (*Config, error) { return defaultRegistry.Lookup(chainID) }

// Register writes to the default registry.
func Register(cfg Config) error { return defaultRegistry.Register(cfg) }
