package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/bullion_ledger_app/internal/core/ports/repositories"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
	"github.com/aurumworks/bullion_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPDCRepository struct {
	BaseRepository
}

// newPgxPDCRepository creates a new repository for PDC schedules. Writes
// go through the posting machinery; this repository only reads.
func newPgxPDCRepository(pool *pgxpool.Pool) portsrepo.PDCRepositoryWithTx {
	return &PgxPDCRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PDCRepositoryWithTx = (*PgxPDCRepository)(nil)

const scheduleColumns = `schedule_id, entry_id, voucher_code, cash_item_id, cash_item_index,
	party_id, currency_code, amount, direction, cheque_date, maturity_posting_date,
	pdc_account_id, bank_account_id, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSchedule(row pgx.Row) (models.PDCSchedule, error) {
	var m models.PDCSchedule
	err := row.Scan(
		&m.ScheduleID, &m.EntryID, &m.VoucherCode, &m.CashItemID, &m.CashItemIndex,
		&m.PartyID, &m.CurrencyCode, &m.Amount, &m.Direction, &m.ChequeDate, &m.MaturityDate,
		&m.PDCAccountID, &m.BankAccountID, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindScheduleByCashItem retrieves the schedule for one cash line.
func (r *PgxPDCRepository) FindScheduleByCashItem(ctx context.Context, entryID string, cashItemID string) (*domain.PDCSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM pdc_schedules WHERE entry_id = $1 AND cash_item_id = $2;`
	m, err := scanSchedule(r.Pool.QueryRow(ctx, query, entryID, cashItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find PDC schedule for cash line %s: %w", cashItemID, err)
	}
	schedule := mapping.ToDomainPDCSchedule(m)
	return &schedule, nil
}

// FindPendingByEntry retrieves all still-pending schedules of an entry.
func (r *PgxPDCRepository) FindPendingByEntry(ctx context.Context, entryID string) ([]domain.PDCSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM pdc_schedules
		WHERE entry_id = $1 AND status = $2
		ORDER BY cash_item_index;
	`
	return r.querySchedules(ctx, query, entryID, string(domain.PDCPending))
}

// FindPendingDue retrieves every pending schedule whose maturity posting
// date is on or before asOf.
func (r *PgxPDCRepository) FindPendingDue(ctx context.Context, asOf time.Time) ([]domain.PDCSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM pdc_schedules
		WHERE status = $2 AND maturity_posting_date <= $1
		ORDER BY maturity_posting_date, schedule_id;
	`
	return r.querySchedules(ctx, query, asOf, string(domain.PDCPending))
}

func (r *PgxPDCRepository) querySchedules(ctx context.Context, query string, args ...any) ([]domain.PDCSchedule, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query PDC schedules: %w", err)
	}
	defer rows.Close()

	modelSchedules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PDCSchedule, error) {
		return scanSchedule(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect PDC schedules: %w", err)
	}
	return mapping.ToDomainPDCScheduleSlice(modelSchedules), nil
}
