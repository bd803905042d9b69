package pgsql

import (
	"context"
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

type PgxRegistryRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxRegistryRepository creates a new repository over the immutable
// ledger and the posting machinery.
func newPgxRegistryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.RegistryRepositoryWithTx {
	return &PgxRegistryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.RegistryRepositoryWithTx = (*PgxRegistryRepository)(nil)

const registryColumns = `registry_id, transaction_id, ledger_type, debit, credit, gold_debit, gold_credit,
	account_id, party_id, currency_code, metal_id, cash_item_id, reference, transaction_date,
	created_at, created_by, last_updated_at, last_updated_by`

// NextTransactionID draws the next posting group id from the sequence.
func (r *PgxRegistryRepository) NextTransactionID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('registry_txn_seq');`).Scan(&id); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate registry transaction id", err)
	}
	return id, nil
}

// FindRowsByReference retrieves every registry row tagged with the given
// voucher code, in transaction order.
func (r *PgxRegistryRepository) FindRowsByReference(ctx context.Context, reference string) ([]domain.RegistryRow, error) {
	query := `SELECT ` + registryColumns + ` FROM registry WHERE reference = $1 ORDER BY transaction_id, registry_id;`
	rows, err := r.Pool.Query(ctx, query, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to query registry rows for reference %s: %w", reference, err)
	}
	defer rows.Close()

	modelRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RegistryRow, error) {
		var m models.RegistryRow
		err := row.Scan(
			&m.RegistryID, &m.TransactionID, &m.LedgerType, &m.Debit, &m.Credit, &m.GoldDebit, &m.GoldCredit,
			&m.AccountID, &m.PartyID, &m.CurrencyCode, &m.MetalID, &m.CashItemID, &m.Reference, &m.TransactionDate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect registry rows for reference %s: %w", reference, err)
	}
	return mapping.ToDomainRegistryRowSlice(modelRows), nil
}

// HasMaturityRow reports whether a maturity row already exists for the
// voucher reference and cash line.
func (r *PgxRegistryRepository) HasMaturityRow(ctx context.Context, reference string, cashItemID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM registry
			WHERE reference = $1 AND cash_item_id = $2 AND ledger_type = $3
		);
	`, reference, cashItemID, string(domain.LedgerPDCMaturity)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check maturity rows for reference %s: %w", reference, err)
	}
	return exists, nil
}

// ApplyPosting applies a posting as its own database transaction.
func (r *PgxRegistryRepository) ApplyPosting(ctx context.Context, posting domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.ApplyPostingInTx(ctx, tx, posting); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApplyPostingInTx applies every effect of the posting within tx: stale
// rows removed, new rows appended, balances adjusted, schedules written
// and resolved, cash-line PDC fields updated. Order matters: deletions
// run before insertions so a reversal-and-repost under the same voucher
// code keeps only the reposted rows.
func (r *PgxRegistryRepository) ApplyPostingInTx(ctx context.Context, tx pgx.Tx, posting domain.Posting) error {
	now := time.Now().UTC()

	for _, reference := range posting.DeleteRowsByReference {
		if _, err := tx.Exec(ctx, `DELETE FROM registry WHERE reference = $1;`, reference); err != nil {
			return apperrors.NewAppError(500, "failed to delete registry rows for reference "+reference, err)
		}
	}

	if len(posting.Rows) > 0 {
		batch := &pgx.Batch{}
		rowQuery := `
			INSERT INTO registry (` + registryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
		`
		for _, row := range posting.Rows {
			m := mapping.ToModelRegistryRow(row)
			batch.Queue(rowQuery,
				m.RegistryID, m.TransactionID, m.LedgerType, m.Debit, m.Credit, m.GoldDebit, m.GoldCredit,
				m.AccountID, m.PartyID, m.CurrencyCode, m.MetalID, m.CashItemID, m.Reference, m.TransactionDate,
				m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert registry rows", err)
		}
	}

	if len(posting.CashAdjustments) > 0 {
		if err := r.accountRepo.AdjustCashBalancesInTx(ctx, tx, posting.CashAdjustments, now); err != nil {
			return apperrors.NewAppError(500, "failed to adjust cash balances", err)
		}
	}
	if len(posting.GoldAdjustments) > 0 {
		if err := r.accountRepo.AdjustGoldBalancesInTx(ctx, tx, posting.GoldAdjustments, now); err != nil {
			return apperrors.NewAppError(500, "failed to adjust gold balances", err)
		}
	}

	if len(posting.NewSchedules) > 0 {
		batch := &pgx.Batch{}
		scheduleQuery := `
			INSERT INTO pdc_schedules (
				schedule_id, entry_id, voucher_code, cash_item_id, cash_item_index,
				party_id, currency_code, amount, direction, cheque_date, maturity_posting_date,
				pdc_account_id, bank_account_id, status,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
		`
		for _, schedule := range posting.NewSchedules {
			m := mapping.ToModelPDCSchedule(schedule)
			batch.Queue(scheduleQuery,
				m.ScheduleID, m.EntryID, m.VoucherCode, m.CashItemID, m.CashItemIndex,
				m.PartyID, m.CurrencyCode, m.Amount, m.Direction, m.ChequeDate, m.MaturityDate,
				m.PDCAccountID, m.BankAccountID, m.Status,
				m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert PDC schedules", err)
		}
	}

	for _, update := range posting.ScheduleStatusUpdates {
		// Guarded transition: only a still-pending schedule may resolve.
		// A zero row count means a concurrent resolution won; the whole
		// posting rolls back so no money moves twice.
		tag, err := tx.Exec(ctx, `
			UPDATE pdc_schedules SET status = $2, last_updated_at = $3, last_updated_by = $4
			WHERE schedule_id = $1 AND status = $5;
		`, update.ScheduleID, string(update.Status), now, update.ActorID, string(domain.PDCPending))
		if err != nil {
			return apperrors.NewAppError(500, "failed to update PDC schedule "+update.ScheduleID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewAppError(409, "PDC schedule "+update.ScheduleID+" is no longer pending", apperrors.ErrConflict)
		}
	}

	for _, update := range posting.CashItemPDCUpdates {
		_, err := tx.Exec(ctx, `
			UPDATE cash_items SET pdc_status = $3, is_pdc = $4
			WHERE entry_id = $1 AND cash_item_id = $2;
		`, update.EntryID, update.CashItemID, string(update.Status), update.IsPDC)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update cash line "+update.CashItemID, err)
		}
	}

	return nil
}
