package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/bullion_ledger_app/internal/core/ports/repositories"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
	"github.com/aurumworks/bullion_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntryRepository struct {
	BaseRepository
	registryRepo portsrepo.RegistryTransactionSupport
}

// newPgxEntryRepository creates a new repository for voucher entries. The
// registry dependency applies postings inside the entry's transaction so
// an entry mutation and its ledger effects land or fail together.
func newPgxEntryRepository(pool *pgxpool.Pool, registryRepo portsrepo.RegistryTransactionSupport) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		registryRepo:   registryRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, entry_type, status, party_id, voucher_code, voucher_date, narration,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveEntry persists a new entry and, when approved at creation, applies
// its posting atomically.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry, posting *domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.EntryID, m.EntryType, m.Status, m.PartyID, m.VoucherCode, m.VoucherDate, m.Narration,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: voucher code %s", apperrors.ErrDuplicate, entry.VoucherCode)
		}
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}

	if err := r.insertLinesInTx(ctx, tx, entry); err != nil {
		return err
	}

	if posting != nil {
		if err := r.registryRepo.ApplyPostingInTx(ctx, tx, *posting); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateEntry replaces the entry's fields and lines, applying the combined
// reversal and reposting effects atomically. Lines are rewritten
// wholesale; their ids change on every edit.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.Entry, posting *domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEntry(entry)
	query := `
		UPDATE entries SET
			entry_type = $2, status = $3, voucher_date = $4, narration = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.EntryID, m.EntryType, m.Status, m.VoucherDate, m.Narration,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM stock_items WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear stock lines of entry "+m.EntryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cash_items WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear cash lines of entry "+m.EntryID, err)
	}
	if err := r.insertLinesInTx(ctx, tx, entry); err != nil {
		return err
	}

	if posting != nil {
		if err := r.registryRepo.ApplyPostingInTx(ctx, tx, *posting); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes the entry, its lines and its schedules, applying
// the reversal posting in the same transaction. Line and schedule rows go
// with the entry via cascading foreign keys.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string, posting *domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if posting != nil {
		if err := r.registryRepo.ApplyPostingInTx(ctx, tx, *posting); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a specific entry with its stock/cash lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`
	return r.findEntry(ctx, query, entryID)
}

// FindEntryByVoucherCode retrieves an entry by its unique voucher code.
func (r *PgxEntryRepository) FindEntryByVoucherCode(ctx context.Context, voucherCode string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE voucher_code = $1;`
	return r.findEntry(ctx, query, voucherCode)
}

func (r *PgxEntryRepository) findEntry(ctx context.Context, query string, arg string) (*domain.Entry, error) {
	var m models.Entry
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.EntryID, &m.EntryType, &m.Status, &m.PartyID, &m.VoucherCode, &m.VoucherDate, &m.Narration,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	entry := mapping.ToDomainEntry(m)

	if err := r.loadStockItems(ctx, &entry); err != nil {
		return nil, err
	}
	if err := r.loadCashItems(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *PgxEntryRepository) loadStockItems(ctx context.Context, entry *domain.Entry) error {
	rows, err := r.Pool.Query(ctx, `
		SELECT stock_item_id, entry_id, stock_id, metal_id, gross_weight, purity, pure_weight, pieces, line_no
		FROM stock_items
		WHERE entry_id = $1
		ORDER BY line_no;
	`, entry.EntryID)
	if err != nil {
		return fmt.Errorf("failed to query stock lines of entry %s: %w", entry.EntryID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.StockItem
		if err := rows.Scan(&m.StockItemID, &m.EntryID, &m.StockID, &m.MetalID, &m.GrossWeight, &m.Purity, &m.PureWeight, &m.Pieces, &m.LineNo); err != nil {
			return fmt.Errorf("failed to scan stock line: %w", err)
		}
		entry.StockItems = append(entry.StockItems, mapping.ToDomainStockItem(m))
	}
	return rows.Err()
}

func (r *PgxEntryRepository) loadCashItems(ctx context.Context, entry *domain.Entry) error {
	rows, err := r.Pool.Query(ctx, `
		SELECT cash_item_id, entry_id, currency_code, amount, cash_type,
			bank_account_id, transfer_account_id, cheque_number, cheque_date,
			vat_amount, card_charge, fx_rate, fx_base_rate, fx_gain, fx_loss,
			is_pdc, pdc_status, maturity_posting_date, pdc_account_id, line_no
		FROM cash_items
		WHERE entry_id = $1
		ORDER BY line_no;
	`, entry.EntryID)
	if err != nil {
		return fmt.Errorf("failed to query cash lines of entry %s: %w", entry.EntryID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.CashItem
		if err := rows.Scan(
			&m.CashItemID, &m.EntryID, &m.CurrencyCode, &m.Amount, &m.CashType,
			&m.BankAccountID, &m.TransferAccountID, &m.ChequeNumber, &m.ChequeDate,
			&m.VATAmount, &m.CardCharge, &m.FxRate, &m.FxBaseRate, &m.FxGain, &m.FxLoss,
			&m.IsPDC, &m.PDCStatus, &m.MaturityDate, &m.PDCAccountID, &m.LineNo,
		); err != nil {
			return fmt.Errorf("failed to scan cash line: %w", err)
		}
		entry.CashItems = append(entry.CashItems, mapping.ToDomainCashItem(m))
	}
	return rows.Err()
}

// insertLinesInTx writes the entry's stock and cash lines within tx.
func (r *PgxEntryRepository) insertLinesInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	if len(entry.StockItems) == 0 && len(entry.CashItems) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	stockQuery := `
		INSERT INTO stock_items (stock_item_id, entry_id, stock_id, metal_id, gross_weight, purity, pure_weight, pieces, line_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for i, item := range entry.StockItems {
		m := mapping.ToModelStockItem(item, entry.EntryID, i)
		batch.Queue(stockQuery, m.StockItemID, m.EntryID, m.StockID, m.MetalID, m.GrossWeight, m.Purity, m.PureWeight, m.Pieces, m.LineNo)
	}
	cashQuery := `
		INSERT INTO cash_items (
			cash_item_id, entry_id, currency_code, amount, cash_type,
			bank_account_id, transfer_account_id, cheque_number, cheque_date,
			vat_amount, card_charge, fx_rate, fx_base_rate, fx_gain, fx_loss,
			is_pdc, pdc_status, maturity_posting_date, pdc_account_id, line_no
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	for i, line := range entry.CashItems {
		m := mapping.ToModelCashItem(line, entry.EntryID, i)
		batch.Queue(cashQuery,
			m.CashItemID, m.EntryID, m.CurrencyCode, m.Amount, m.CashType,
			m.BankAccountID, m.TransferAccountID, m.ChequeNumber, m.ChequeDate,
			m.VATAmount, m.CardCharge, m.FxRate, m.FxBaseRate, m.FxGain, m.FxLoss,
			m.IsPDC, m.PDCStatus, m.MaturityDate, m.PDCAccountID, m.LineNo,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines of entry "+entry.EntryID, err)
	}
	return nil
}
