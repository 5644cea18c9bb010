package rack_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 28, 10, 0, 0, 0, time.UTC)

func newTestRack(t *testing.T, capacity int) *rack.Rack {
	t.Helper()
	id, err := rack.NewID("A", "", 1)
	require.NoError(t, err)
	r, err := rack.NewRack(id, "A", capacity, "  near dock  ", now)
	require.NoError(t, err)
	return r
}

func TestNewRack(t *testing.T) {
	r := newTestRack(t, 4)

	require.NoError(t, r.Validate())
	assert.Equal(t, "A-001", r.ID().String())
	assert.Equal(t, "A", r.Section())
	assert.Equal(t, 4, r.Capacity())
	assert.Equal(t, 0, r.Occupancy())
	assert.Equal(t, rack.Available, r.Status())
	assert.Equal(t, "near dock", r.Description())
	assert.Equal(t, int64(0), r.Version())
}

func TestNewRack_InvalidArguments(t *testing.T) {
	id, _ := rack.NewID("A", "", 1)

	testCases := []struct {
		name     string
		id       rack.ID
		section  string
		capacity int
		expected error
	}{
		{"zero_capacity", id, "A", 0, errs.ErrValueIsInvalid},
		{"negative_capacity", id, "A", -3, errs.ErrValueIsInvalid},
		{"missing_section", id, "", 4, errs.ErrValueIsRequired},
		{"missing_id", rack.ID{}, "A", 4, errs.ErrValueIsRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := rack.NewRack(tc.id, tc.section, tc.capacity, "", now)

			require.ErrorIs(t, err, tc.expected)
			assert.Nil(t, r)
		})
	}
}

func TestRack_Validate_ZeroValue(t *testing.T) {
	var r rack.Rack
	require.ErrorIs(t, r.Validate(), rack.ErrRackIsNotConstructed)

	var nilRack *rack.Rack
	require.ErrorIs(t, nilRack.Validate(), rack.ErrRackIsNotConstructed)
}

func TestRack_AllocateUntilFull(t *testing.T) {
	r := newTestRack(t, 2)

	require.NoError(t, r.Allocate(now))
	assert.Equal(t, rack.Available, r.Status())
	require.NoError(t, r.Allocate(now))
	assert.Equal(t, rack.Full, r.Status())

	err := r.Allocate(now)
	require.ErrorIs(t, err, errs.ErrNoCapacity)
	require.ErrorIs(t, err, errs.ErrCapacity)
	assert.Equal(t, 2, r.Occupancy())
}

func TestRack_FullRackScenario(t *testing.T) {
	r := newTestRack(t, 4)
	for range 4 {
		require.NoError(t, r.Allocate(now))
	}

	require.ErrorIs(t, r.Allocate(now), errs.ErrNoCapacity)

	require.NoError(t, r.Release(now))
	assert.Equal(t, rack.Available, r.Status())
	assert.Equal(t, 3, r.Occupancy())
}

func TestRack_ReleaseUnderflow(t *testing.T) {
	r := newTestRack(t, 4)

	err := r.Release(now)

	require.ErrorIs(t, err, errs.ErrOccupancyUnderflow)
	assert.Equal(t, 0, r.Occupancy())
}

func TestRack_AllocateReleaseRoundTrip(t *testing.T) {
	r := newTestRack(t, 3)
	require.NoError(t, r.Allocate(now))
	before := r.Occupancy()

	require.NoError(t, r.Allocate(now))
	require.NoError(t, r.Release(now))

	assert.Equal(t, before, r.Occupancy())
}

func TestRack_InterleavedOperationsStayWithinBounds(t *testing.T) {
	const capacity = 5
	r := newTestRack(t, capacity)
	rnd := rand.New(rand.NewPCG(7, 11))

	for range 2000 {
		if rnd.IntN(2) == 0 {
			_ = r.Allocate(now)
		} else {
			_ = r.Release(now)
		}

		require.GreaterOrEqual(t, r.Occupancy(), 0)
		require.LessOrEqual(t, r.Occupancy(), capacity)
		assert.Equal(t, r.Occupancy() == capacity, r.Status() == rack.Full)
	}
}

func TestRack_UpdateCapacity(t *testing.T) {
	r := newTestRack(t, 4)
	require.NoError(t, r.Allocate(now))
	require.NoError(t, r.Allocate(now))
	require.NoError(t, r.Allocate(now))

	t.Run("below_occupancy", func(t *testing.T) {
		err := r.UpdateCapacity(2, now)
		require.ErrorIs(t, err, errs.ErrCapacityBelowOccupancy)
		assert.Equal(t, 4, r.Capacity())
	})

	t.Run("not_positive", func(t *testing.T) {
		require.ErrorIs(t, r.UpdateCapacity(0, now), errs.ErrValueIsInvalid)
	})

	t.Run("equal_to_occupancy_makes_rack_full", func(t *testing.T) {
		require.NoError(t, r.UpdateCapacity(3, now))
		assert.Equal(t, rack.Full, r.Status())
	})

	t.Run("growing_frees_rack", func(t *testing.T) {
		require.NoError(t, r.UpdateCapacity(10, now))
		assert.Equal(t, rack.Available, r.Status())
	})
}

func TestRack_DisableAndEnable(t *testing.T) {
	r := newTestRack(t, 1)
	require.NoError(t, r.Allocate(now))

	r.Disable(now)
	assert.True(t, r.IsDisabled())
	require.NoError(t, r.Release(now))
	assert.Equal(t, rack.Disabled, r.Status(), "releasing keeps a disabled rack disabled")
	require.ErrorIs(t, r.Allocate(now), errs.ErrNoCapacity)

	r.Enable(now)
	assert.Equal(t, rack.Available, r.Status())
	assert.True(t, r.CanAllocate())
}

func TestRack_Reset(t *testing.T) {
	r := newTestRack(t, 4)

	require.NoError(t, r.Reset(8, "cold", now))
	assert.Equal(t, 8, r.Capacity())
	assert.Equal(t, "cold", r.Description())

	require.NoError(t, r.Allocate(now))
	require.ErrorIs(t, r.Reset(2, "", now), errs.ErrRackIsOccupied)
}

func TestRack_CanDelete(t *testing.T) {
	r := newTestRack(t, 4)
	require.NoError(t, r.CanDelete())

	require.NoError(t, r.Allocate(now))
	require.ErrorIs(t, r.CanDelete(), errs.ErrRackIsOccupied)
}

func TestRestoreRack(t *testing.T) {
	id, _ := rack.NewID("B", "X", 3)

	t.Run("status_is_recomputed", func(t *testing.T) {
		r, err := rack.RestoreRack(id, "B", 2, 2, rack.Available, "", 7, now, now)
		require.NoError(t, err)
		assert.Equal(t, rack.Full, r.Status())
		assert.Equal(t, int64(7), r.Version())
	})

	t.Run("disabled_is_kept", func(t *testing.T) {
		r, err := rack.RestoreRack(id, "B", 2, 1, rack.Disabled, "", 1, now, now)
		require.NoError(t, err)
		assert.True(t, r.IsDisabled())
	})

	t.Run("occupancy_over_capacity", func(t *testing.T) {
		_, err := rack.RestoreRack(id, "B", 2, 3, rack.Full, "", 1, now, now)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown_status", func(t *testing.T) {
		_, err := rack.RestoreRack(id, "B", 2, 0, rack.Unknown, "", 1, now, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRack_AdvanceVersion(t *testing.T) {
	r := newTestRack(t, 4)

	r.AdvanceVersion()
	r.AdvanceVersion()

	assert.Equal(t, int64(2), r.Version())
}
