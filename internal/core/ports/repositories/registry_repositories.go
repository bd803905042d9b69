package repositories

import (
	"context"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RegistryReader defines read operations over the immutable ledger.
type RegistryReader interface {
	// FindRowsByReference retrieves every registry row tagged with the
	// given voucher code, in transaction order.
	FindRowsByReference(ctx context.Context, reference string) ([]domain.RegistryRow, error)

	// HasMaturityRow reports whether a PDC_MATURITY row already exists for
	// the given voucher reference and cash line. This is the idempotency
	// safeguard of the maturity sweep.
	HasMaturityRow(ctx context.Context, reference string, cashItemID string) (bool, error)
}

// PostingApplier applies a Posting as a single database transaction:
// either every row is appended, every balance adjusted and every schedule
// written, or nothing is.
type PostingApplier interface {
	ApplyPosting(ctx context.Context, posting domain.Posting) error
}

// SequenceAllocator hands out registry transaction ids. IDs are drawn from
// a database sequence, so they are globally unique and monotonically
// increasing; allocation failure must abort the posting.
type SequenceAllocator interface {
	NextTransactionID(ctx context.Context) (int64, error)
}

// RegistryRepositoryFacade combines all registry repository interfaces.
type RegistryRepositoryFacade interface {
	RegistryReader
	PostingApplier
	SequenceAllocator
}

// RegistryTransactionSupport exposes posting application inside an already
// open transaction, for callers that pair it with other writes.
type RegistryTransactionSupport interface {
	// ApplyPostingInTx applies every effect of the posting within tx.
	ApplyPostingInTx(ctx context.Context, tx pgx.Tx, posting domain.Posting) error
}

// RegistryRepositoryWithTx extends RegistryRepositoryFacade with
// transaction capabilities.
type RegistryRepositoryWithTx interface {
	RegistryRepositoryFacade
	RegistryTransactionSupport
	TransactionManager
}
