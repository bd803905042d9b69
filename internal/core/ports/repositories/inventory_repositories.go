package repositories

import (
	"context"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
)

// InventoryRecorder is the boundary to the inventory collaborator. The
// core notifies it of every physical metal movement and of reversals; what
// the collaborator does beyond recording is not this system's concern.
type InventoryRecorder interface {
	// RecordMovement records one physical stock movement tagged with its
	// voucher code.
	RecordMovement(ctx context.Context, movement domain.InventoryMovement, isOutgoing bool, actorID string) error

	// ReverseMovementsByVoucher undoes every movement recorded under the
	// given voucher code.
	ReverseMovementsByVoucher(ctx context.Context, voucherCode string, actorID string) error
}
