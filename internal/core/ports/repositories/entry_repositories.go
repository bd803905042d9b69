package repositories

import (
	"context"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
)

// EntryReader defines read operations for voucher entries.
type EntryReader interface {
	// FindEntryByID retrieves a specific entry with its stock/cash lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// FindEntryByVoucherCode retrieves an entry by its unique voucher code.
	FindEntryByVoucherCode(ctx context.Context, voucherCode string) (*domain.Entry, error)
}

// EntryWriter defines write operations for voucher entries. Every method
// that takes a Posting applies the entry mutation and the posting's ledger,
// balance and schedule effects inside one database transaction; a nil
// posting persists the entry alone (draft flows).
type EntryWriter interface {
	// SaveEntry persists a new entry and, when approved at creation,
	// applies its posting atomically.
	SaveEntry(ctx context.Context, entry domain.Entry, posting *domain.Posting) error

	// UpdateEntry replaces an entry's fields and lines (status changes
	// included), applying the combined reversal+reposting effects
	// atomically.
	UpdateEntry(ctx context.Context, entry domain.Entry, posting *domain.Posting) error

	// DeleteEntry removes the entry, its lines, and applies the reversal
	// posting atomically.
	DeleteEntry(ctx context.Context, entryID string, posting *domain.Posting) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction
// capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
