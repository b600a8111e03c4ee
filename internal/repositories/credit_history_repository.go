package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"assay-backend/internal/apperr"
	"assay-backend/internal/db"
	"assay-backend/internal/ledger"
	"assay-backend/internal/models"
)

const creditHistoryColumns = `id, customer_id, type, amount, previous_balance, mode_of_payment, created_date, last_modified_date, deleted_at`

// CreditHistoryRepository stores ledger entries and runs the ledger
// engine's transactions.
type CreditHistoryRepository struct {
	DB db.Querier
}

var _ ledger.Store = (*CreditHistoryRepository)(nil)

func NewCreditHistoryRepository(q db.Querier) *CreditHistoryRepository {
	return &CreditHistoryRepository{DB: q}
}

func (r *CreditHistoryRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &ledgerTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) LockCustomerBalance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := t.tx.QueryRow(ctx,
		`SELECT balance FROM customers WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
		customerID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, apperr.NotFound(msgCustomerNotFound)
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("lock balance: %w", err)
	}
	return balance, nil
}

func (t *ledgerTx) InsertEntry(ctx context.Context, e *models.CreditHistory) error {
	query := `
		INSERT INTO credithistory (id, customer_id, type, amount, previous_balance, mode_of_payment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_date, last_modified_date
	`
	err := t.tx.QueryRow(ctx, query,
		e.ID,
		e.CustomerID,
		string(e.Type),
		e.Amount,
		e.PreviousBalance,
		string(e.ModeOfPayment),
	).Scan(&e.CreatedDate, &e.LastModifiedDate)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (t *ledgerTx) UpdateCustomerBalance(ctx context.Context, customerID string, balance decimal.Decimal) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE customers SET balance = $1, last_modified_date = NOW() WHERE id = $2`,
		balance, customerID)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("update balance: %d rows affected", tag.RowsAffected())
	}
	return nil
}

func scanCreditHistory(row pgx.Row) (models.CreditHistory, error) {
	var e models.CreditHistory
	var kind, mode string
	err := row.Scan(
		&e.ID,
		&e.CustomerID,
		&kind,
		&e.Amount,
		&e.PreviousBalance,
		&mode,
		&e.CreatedDate,
		&e.LastModifiedDate,
		&e.DeletedAt,
	)
	e.Type = models.EntryKind(kind)
	e.ModeOfPayment = models.PaymentMode(mode)
	return e, err
}

// List returns live entries newest first, optionally for one customer.
func (r *CreditHistoryRepository) List(ctx context.Context, customerID string, p models.PageRequest) ([]models.CreditHistory, int64, error) {
	where, args := `deleted_at IS NULL`, []any(nil)
	if customerID != "" {
		where, args = `deleted_at IS NULL AND customer_id = $1`, []any{customerID}
	}
	items, total, err := listPage(ctx, r.DB,
		`SELECT COUNT(*) FROM credithistory WHERE `+where,
		`SELECT `+creditHistoryColumns+` FROM credithistory WHERE `+where+` ORDER BY created_date DESC, id DESC`,
		args, p, scanCreditHistory)
	if err != nil {
		return nil, 0, apperr.Internal("list credit history", err)
	}
	return items, total, nil
}

func (r *CreditHistoryRepository) Get(ctx context.Context, id string) (*models.CreditHistory, error) {
	e, err := scanCreditHistory(r.DB.QueryRow(ctx,
		`SELECT `+creditHistoryColumns+` FROM credithistory WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, apperr.FromDB(err, "Credit history not found", "")
	}
	return &e, nil
}

// SoftDelete hides an entry. The customer's balance is left as is.
func (r *CreditHistoryRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	ok, err := softDelete(ctx, r.DB, "credithistory", "id", id)
	if err != nil {
		return false, apperr.Internal("delete credit history", err)
	}
	return ok, nil
}
