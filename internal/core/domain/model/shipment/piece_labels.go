package shipment

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

const (
	// MinPieces and MaxPieces bound the piece count of a shipment. The upper
	// bound keeps the sequence within its 3-digit label field.
	MinPieces = 1
	MaxPieces = 999
)

// GeneratePieceIDs returns one label per piece: `{barcode}-{seq:03d}` for seq 1..pieceCount.
// The result is deterministic and collision free for a given barcode.
//
// Example:
//
//	ids, _ := shipment.GeneratePieceIDs(barcode, 3)
//	// ["WH2509281234-001", "WH2509281234-002", "WH2509281234-003"]
func GeneratePieceIDs(barcode Barcode, pieceCount int) ([]string, error) {
	if err := barcode.Validate(); err != nil {
		return nil, err
	}
	if pieceCount < MinPieces || pieceCount > MaxPieces {
		return nil, errs.NewValueIsOutOfRangeError("pieceCount", pieceCount, MinPieces, MaxPieces)
	}

	ids := make([]string, pieceCount)
	for seq := 1; seq <= pieceCount; seq++ {
		ids[seq-1] = fmt.Sprintf("%s-%03d", barcode, seq)
	}
	return ids, nil
}
