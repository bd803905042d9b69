package services

import (
	"context"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/aurumworks/bullion_ledger_app/internal/dto"
)

// EntryReaderSvc defines read operations for voucher entries.
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry with its stock/cash lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// GetEntryRegistry retrieves the ledger rows posted under the entry's
	// voucher code, for audit-trail reconstruction.
	GetEntryRegistry(ctx context.Context, entryID string) ([]domain.RegistryRow, error)
}

// EntryWriterSvc defines the voucher lifecycle operations.
type EntryWriterSvc interface {
	// CreateEntry validates and persists a new voucher; an approved entry
	// is dispatched to its type handler immediately.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error)

	// UpdateEntry edits a voucher, reversing the old effects first when
	// the entry is approved.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.Entry, error)

	// UpdateEntryStatus transitions between draft and approved.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string) (*domain.Entry, error)

	// DeleteEntry reverses an approved voucher's effects and removes it.
	DeleteEntry(ctx context.Context, entryID string, userID string) error
}

// EntrySvcFacade combines all entry service interfaces.
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
