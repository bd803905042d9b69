package pgsql

import (
	"context"
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/bullion_ledger_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates the inventory collaborator boundary.
// Movements are append-only; reversal flips a flag rather than deleting,
// so the physical history stays reconstructable.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRecorder {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InventoryRecorder = (*PgxInventoryRepository)(nil)

// RecordMovement records one physical stock movement tagged with its
// voucher code.
func (r *PgxInventoryRepository) RecordMovement(ctx context.Context, movement domain.InventoryMovement, isOutgoing bool, actorID string) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO inventory_movements (
			movement_id, stock_id, metal_id, gross_weight, purity, pieces,
			voucher_code, is_outgoing, reversed,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9, $10, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		uuid.NewString(), movement.StockID, movement.MetalID,
		movement.GrossWeight, movement.Purity, movement.Pieces,
		movement.VoucherCode, isOutgoing,
		now, actorID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record inventory movement for voucher "+movement.VoucherCode, err)
	}
	return nil
}

// ReverseMovementsByVoucher undoes every movement recorded under the
// given voucher code.
func (r *PgxInventoryRepository) ReverseMovementsByVoucher(ctx context.Context, voucherCode string, actorID string) error {
	now := time.Now().UTC()
	query := `
		UPDATE inventory_movements
		SET reversed = true, last_updated_at = $2, last_updated_by = $3
		WHERE voucher_code = $1 AND NOT reversed;
	`
	if _, err := r.Pool.Exec(ctx, query, voucherCode, now, actorID); err != nil {
		return apperrors.NewAppError(500, "failed to reverse inventory movements for voucher "+voucherCode, err)
	}
	return nil
}
