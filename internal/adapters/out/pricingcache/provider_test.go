package pricingcache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"warehouse/internal/adapters/out/pricingcache"
	"warehouse/internal/core/domain/model/billing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricingWithRate(t *testing.T, rate string) billing.Pricing {
	t.Helper()
	settings := billing.DefaultPricingSettings()
	settings.PerKgDayRate = decimal.RequireFromString(rate)
	p, err := billing.NewPricing(settings, time.Now())
	require.NoError(t, err)
	return p
}

func TestProvider_CachesUntilInvalidated(t *testing.T) {
	var loads atomic.Int32
	rate := "0.5"
	provider := pricingcache.NewProvider(func(context.Context) (billing.Pricing, error) {
		loads.Add(1)
		return pricingWithRate(t, rate), nil
	}, time.Minute)

	first, err := provider.Get(t.Context())
	require.NoError(t, err)
	second, err := provider.Get(t.Context())
	require.NoError(t, err)

	assert.Equal(t, int32(1), loads.Load())
	assert.True(t, first.Settings().PerKgDayRate.Equal(second.Settings().PerKgDayRate))

	rate = "0.75"
	provider.Invalidate()

	third, err := provider.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
	assert.True(t, decimal.RequireFromString("0.75").Equal(third.Settings().PerKgDayRate))
}

func TestProvider_ExpiresAfterTTL(t *testing.T) {
	var loads atomic.Int32
	provider := pricingcache.NewProvider(func(context.Context) (billing.Pricing, error) {
		loads.Add(1)
		return pricingWithRate(t, "0.5"), nil
	}, 20*time.Millisecond)

	_, err := provider.Get(t.Context())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, getErr := provider.Get(t.Context())
		return getErr == nil && loads.Load() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestProvider_DoesNotCacheErrors(t *testing.T) {
	var loads atomic.Int32
	provider := pricingcache.NewProvider(func(context.Context) (billing.Pricing, error) {
		if loads.Add(1) == 1 {
			return billing.Pricing{}, errors.New("connection refused")
		}
		return pricingWithRate(t, "0.5"), nil
	}, time.Minute)

	_, err := provider.Get(t.Context())
	require.EqualError(t, err, "connection refused")

	_, err = provider.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestProvider_ConcurrentMissesLoadOnce(t *testing.T) {
	var loads atomic.Int32
	provider := pricingcache.NewProvider(func(context.Context) (billing.Pricing, error) {
		loads.Add(1)
		time.Sleep(10 * time.Millisecond)
		return pricingWithRate(t, "0.5"), nil
	}, time.Minute)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = provider.Get(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
}
