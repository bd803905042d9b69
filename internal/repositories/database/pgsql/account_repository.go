package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/bullion_ledger_app/internal/core/ports/repositories"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
	"github.com/aurumworks/bullion_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, kind, is_active,
	pdc_issue_account_id, pdc_receipt_account_id, maturity_days, pdc_receipt_maturity_days,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.Kind,
		&m.IsActive,
		&m.PDCIssueAccountID,
		&m.PDCReceiptAccountID,
		&m.MaturityDays,
		&m.PDCReceiptMaturityDays,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.Kind, m.IsActive,
		m.PDCIssueAccountID, m.PDCReceiptAccountID, m.MaturityDays, m.PDCReceiptMaturityDays,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// UpdateAccount updates an existing account's details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts SET
			name = $2, kind = $3, is_active = $4,
			pdc_issue_account_id = $5, pdc_receipt_account_id = $6,
			maturity_days = $7, pdc_receipt_maturity_days = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.Kind, m.IsActive,
		m.PDCIssueAccountID, m.PDCReceiptAccountID, m.MaturityDays, m.PDCReceiptMaturityDays,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByID retrieves an account with its cash and gold balances.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := mapping.ToDomainAccount(m)

	cashRows, err := r.Pool.Query(ctx, `
		SELECT currency_code, amount, last_updated
		FROM cash_balances
		WHERE account_id = $1
		ORDER BY currency_code;
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash balances for account %s: %w", accountID, err)
	}
	defer cashRows.Close()
	for cashRows.Next() {
		var b models.CashBalance
		if err := cashRows.Scan(&b.CurrencyCode, &b.Amount, &b.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan cash balance: %w", err)
		}
		account.CashBalances = append(account.CashBalances, mapping.ToDomainCashBalance(b))
	}
	if err := cashRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cash balances for account %s: %w", accountID, err)
	}

	var g models.GoldBalance
	err = r.Pool.QueryRow(ctx, `
		SELECT account_id, total_grams, last_updated
		FROM gold_balances
		WHERE account_id = $1;
	`, accountID).Scan(&g.AccountID, &g.TotalGrams, &g.LastUpdated)
	if err == nil {
		account.GoldBalance = mapping.ToDomainGoldBalance(g)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to query gold balance for account %s: %w", accountID, err)
	}

	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Balances are
// not loaded; callers that need them fetch the account individually.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return result, nil
}

// AdjustCashBalancesInTx applies per-currency balance deltas within tx.
// Deltas are aggregated per (account, currency) and applied in sorted key
// order so concurrent postings touching the same accounts cannot deadlock.
func (r *PgxAccountRepository) AdjustCashBalancesInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.CashAdjustment, now time.Time) error {
	type key struct{ accountID, currencyCode string }
	totals := make(map[key]decimal.Decimal)
	for _, a := range adjustments {
		k := key{a.AccountID, a.CurrencyCode}
		totals[k] = totals[k].Add(a.Delta)
	}
	keys := make([]key, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].accountID != keys[j].accountID {
			return keys[i].accountID < keys[j].accountID
		}
		return keys[i].currencyCode < keys[j].currencyCode
	})

	query := `
		INSERT INTO cash_balances (account_id, currency_code, amount, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, currency_code) DO UPDATE SET
			amount = cash_balances.amount + EXCLUDED.amount,
			last_updated = EXCLUDED.last_updated;
	`
	for _, k := range keys {
		if totals[k].IsZero() {
			continue
		}
		if _, err := tx.Exec(ctx, query, k.accountID, k.currencyCode, totals[k], now); err != nil {
			return fmt.Errorf("failed to adjust cash balance of account %s (%s): %w", k.accountID, k.currencyCode, err)
		}
	}
	return nil
}

// AdjustGoldBalancesInTx applies gold-weight balance deltas within tx.
func (r *PgxAccountRepository) AdjustGoldBalancesInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.GoldAdjustment, now time.Time) error {
	totals := make(map[string]decimal.Decimal)
	for _, a := range adjustments {
		totals[a.AccountID] = totals[a.AccountID].Add(a.DeltaGrams)
	}
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	query := `
		INSERT INTO gold_balances (account_id, total_grams, last_updated)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE SET
			total_grams = gold_balances.total_grams + EXCLUDED.total_grams,
			last_updated = EXCLUDED.last_updated;
	`
	for _, accountID := range keys {
		if totals[accountID].IsZero() {
			continue
		}
		if _, err := tx.Exec(ctx, query, accountID, totals[accountID], now); err != nil {
			return fmt.Errorf("failed to adjust gold balance of account %s: %w", accountID, err)
		}
	}
	return nil
}
