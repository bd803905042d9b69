package models

import (
	"github.com/shopspring/decimal"
)

// InventoryMovement represents one row of the inventory_movements table.
// Movements are never deleted; reversal flips the reversed flag.
type InventoryMovement struct {
	MovementID  string          `db:"movement_id"`
	StockID     string          `db:"stock_id"`
	MetalID     string          `db:"metal_id"`
	GrossWeight decimal.Decimal `db:"gross_weight"`
	Purity      decimal.Decimal `db:"purity"`
	Pieces      int             `db:"pieces"`
	VoucherCode string          `db:"voucher_code"`
	IsOutgoing  bool            `db:"is_outgoing"`
	Reversed    bool            `db:"reversed"`
	AuditFields
}
