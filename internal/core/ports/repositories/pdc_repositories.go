package repositories

import (
	"context"
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
)

// PDCScheduleReader defines read operations for PDC schedules. Schedule
// creation and status transitions are carried by Postings.
type PDCScheduleReader interface {
	// FindScheduleByCashItem retrieves the schedule for one cash line.
	FindScheduleByCashItem(ctx context.Context, entryID string, cashItemID string) (*domain.PDCSchedule, error)

	// FindPendingByEntry retrieves all still-pending schedules of an entry.
	FindPendingByEntry(ctx context.Context, entryID string) ([]domain.PDCSchedule, error)

	// FindPendingDue retrieves every pending schedule whose maturity
	// posting date is on or before asOf.
	FindPendingDue(ctx context.Context, asOf time.Time) ([]domain.PDCSchedule, error)
}

// PDCRepositoryFacade combines all PDC schedule repository interfaces.
type PDCRepositoryFacade interface {
	PDCScheduleReader
}

// PDCRepositoryWithTx extends PDCRepositoryFacade with transaction
// capabilities.
type PDCRepositoryWithTx interface {
	PDCRepositoryFacade
	TransactionManager
}
