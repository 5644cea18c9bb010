package shipment_test

import (
	"regexp"
	"testing"
	"time"

	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pieceIDPattern = regexp.MustCompile(`^WH\d{10}-\d{3}$`)

func TestNewBarcode(t *testing.T) {
	day := time.Date(2025, 9, 28, 23, 59, 0, 0, time.UTC)

	b, err := shipment.NewBarcode(day, 1234)
	require.NoError(t, err)
	assert.Equal(t, "WH2509281234", b.String())

	first, err := shipment.NewBarcode(day, 1)
	require.NoError(t, err)
	assert.Equal(t, "WH2509280001", first.String())

	_, err = shipment.NewBarcode(day, shipment.MaxDailyBarcodes+1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = shipment.NewBarcode(day, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestParseBarcode(t *testing.T) {
	b, err := shipment.ParseBarcode("WH2509281234")
	require.NoError(t, err)
	assert.Equal(t, "WH2509281234", b.String())

	for _, bad := range []string{"WH25092812", "XX2509281234", "WH250928123a", "WH25092812345"} {
		_, err = shipment.ParseBarcode(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, bad)
	}

	_, err = shipment.ParseBarcode("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSequenceName(t *testing.T) {
	assert.Equal(t, "barcode:250928", shipment.SequenceName(time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC)))
}

func TestGeneratePieceIDs(t *testing.T) {
	barcode, err := shipment.ParseBarcode("WH2509281234")
	require.NoError(t, err)

	t.Run("known_scenario", func(t *testing.T) {
		ids, err := shipment.GeneratePieceIDs(barcode, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"WH2509281234-001", "WH2509281234-002", "WH2509281234-003"}, ids)
	})

	t.Run("length_and_distinctness", func(t *testing.T) {
		for _, n := range []int{1, 2, 10, 99, 100, 999} {
			ids, err := shipment.GeneratePieceIDs(barcode, n)
			require.NoError(t, err)
			require.Len(t, ids, n)

			seen := make(map[string]struct{}, n)
			for _, id := range ids {
				assert.Regexp(t, pieceIDPattern, id)
				_, dup := seen[id]
				assert.False(t, dup, id)
				seen[id] = struct{}{}
			}
		}
	})

	t.Run("invalid_count", func(t *testing.T) {
		for _, n := range []int{0, -1, 1000} {
			_, err := shipment.GeneratePieceIDs(barcode, n)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("missing_barcode", func(t *testing.T) {
		_, err := shipment.GeneratePieceIDs(shipment.Barcode{}, 1)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestStorageDays(t *testing.T) {
	start := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"same_instant", start, 1},
		{"end_before_start", start.Add(-time.Hour), 1},
		{"one_minute", start.Add(time.Minute), 1},
		{"exactly_one_day", start.Add(24 * time.Hour), 1},
		{"one_day_and_a_second", start.Add(24*time.Hour + time.Second), 2},
		{"five_days", start.Add(5 * 24 * time.Hour), 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shipment.StorageDays(start, tc.end))
		})
	}
}

func TestShipmentStatus(t *testing.T) {
	in, err := shipment.ParseStatus("in")
	require.NoError(t, err)
	assert.Equal(t, shipment.In, in)

	out, err := shipment.ParseStatus("OUT")
	require.NoError(t, err)
	assert.Equal(t, shipment.Out, out)

	_, err = shipment.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, shipment.Unknown.Validate())
	assert.Equal(t, "unknown", shipment.Status(9).String())
}
