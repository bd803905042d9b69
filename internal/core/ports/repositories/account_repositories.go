package repositories

import (
	"context"
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for accounts and their balances.
// Balance mutation has no service-facing port: balances change only as part
// of an applied Posting, inside the same database transaction.
type AccountReader interface {
	// FindAccountByID retrieves an account with its cash and gold balances.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
}

// AccountWriter defines write operations for account master data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines the balance mutations applied inside a
// posting transaction. Balance rows are locked FOR UPDATE and incremented;
// a missing balance row is created at zero first.
type AccountTransactionSupport interface {
	// AdjustCashBalancesInTx applies per-currency balance deltas within tx.
	AdjustCashBalancesInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.CashAdjustment, now time.Time) error

	// AdjustGoldBalancesInTx applies gold-weight balance deltas within tx.
	AdjustGoldBalancesInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.GoldAdjustment, now time.Time) error
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with write and
// transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	AccountWriter
	AccountTransactionSupport
	TransactionManager
}
