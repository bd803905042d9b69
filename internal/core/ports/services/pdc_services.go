package services

import (
	"context"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
)

// PDCSvcFacade drives the lifecycle of one post-dated cheque line. All
// three operations are valid only while the line is pending.
type PDCSvcFacade interface {
	// ClearPDC settles a matured cheque: the held amount moves from the
	// PDC account to the bank account.
	ClearPDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error)

	// BouncePDC rejects a cheque: both the PDC-account effect and the
	// original party effect are reversed.
	BouncePDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error)

	// CancelPDC withdraws a cheque before maturity, with the same balance
	// reversal as a bounce but a distinct terminal status.
	CancelPDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error)
}

// MaturitySvcFacade is the time-triggered sweep. The caller (an external
// scheduler) controls when it runs; the sweep only guarantees it is safe
// to invoke repeatedly and concurrently.
type MaturitySvcFacade interface {
	// ProcessMaturedPDCs matures every pending schedule whose maturity
	// posting date has arrived, collecting per-item failures instead of
	// aborting the sweep.
	ProcessMaturedPDCs(ctx context.Context, triggeredBy string) (*domain.MaturityResult, error)
}
