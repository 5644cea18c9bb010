// Package pricingcache serves the tariff from a short-lived in-process cache.
// Every terminal process keeps its own copy for at most the TTL; an update made
// through this process invalidates it immediately.
package pricingcache

import (
	"context"
	"sync"
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/ports"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultTTL bounds how stale a tariff read by another process can be.
const DefaultTTL = 30 * time.Second

const pricingKey = "pricing"

// Loader reads the current tariff from storage.
type Loader func(ctx context.Context) (billing.Pricing, error)

// RepositoryLoader loads the tariff through a fresh unit of work.
func RepositoryLoader(uowFactory ports.UnitOfWorkFactory) Loader {
	return func(ctx context.Context) (billing.Pricing, error) {
		return uowFactory.Create().PricingRepository().Get(ctx)
	}
}

// Provider implements ports.PricingProvider.
//
// Example:
//
//	provider := pricingcache.NewProvider(pricingcache.RepositoryLoader(uowFactory), cfg.PricingCacheTTL)
//	pricing, err := provider.Get(ctx)
type Provider struct {
	load  Loader
	cache *expirable.LRU[string, billing.Pricing]

	// loadMu collapses concurrent misses into one storage read.
	loadMu sync.Mutex
}

// NewProvider creates a provider. A non-positive ttl means DefaultTTL.
func NewProvider(load Loader, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Provider{
		load:  load,
		cache: expirable.NewLRU[string, billing.Pricing](1, nil, ttl),
	}
}

// Get returns the cached tariff or loads it. Load errors are not cached.
func (p *Provider) Get(ctx context.Context) (billing.Pricing, error) {
	if pricing, ok := p.cache.Get(pricingKey); ok {
		return pricing, nil
	}

	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	if pricing, ok := p.cache.Get(pricingKey); ok {
		return pricing, nil
	}

	pricing, err := p.load(ctx)
	if err != nil {
		return billing.Pricing{}, err
	}

	p.cache.Add(pricingKey, pricing)
	return pricing, nil
}

// Invalidate drops the cached tariff so the next Get reads storage.
func (p *Provider) Invalidate() {
	p.cache.Purge()
}
