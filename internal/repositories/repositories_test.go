package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assay-backend/internal/apperr"
	"assay-backend/internal/events"
	"assay-backend/internal/ledger"
	"assay-backend/internal/logging"
	"assay-backend/internal/models"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func creditReq(kind models.EntryKind, amount string) models.CreateCreditHistoryRequest {
	return models.CreateCreditHistoryRequest{
		CustomerID:    "c1",
		Type:          kind,
		Amount:        decimal.RequireFromString(amount),
		ModeOfPayment: models.PaymentCheque,
	}
}

func TestLedgerTx_CommitsLockInsertUpdateInOrder(t *testing.T) {
	mock := newMock(t)
	now := time.Date(2024, 5, 2, 11, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT balance FROM customers WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`)).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow("100.00"))
	mock.ExpectQuery("INSERT INTO credithistory").
		WithArgs(pgxmock.AnyArg(), "c1", "debit", pgxmock.AnyArg(), pgxmock.AnyArg(), "cheque").
		WillReturnRows(pgxmock.NewRows([]string{"created_date", "last_modified_date"}).AddRow(now, now))
	mock.ExpectExec("UPDATE customers SET balance").
		WithArgs(pgxmock.AnyArg(), "c1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	engine := ledger.NewEngine(NewCreditHistoryRepository(mock), events.Noop{}, logging.Discard())
	res, err := engine.ApplyEntry(context.Background(), creditReq(models.EntryDebit, "30"))

	require.NoError(t, err)
	assert.True(t, res.PreviousBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, res.NewBalance.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, now, res.CreatedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerTx_RollsBackWhenBalanceUpdateFails(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM customers").
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow("100.00"))
	mock.ExpectQuery("INSERT INTO credithistory").
		WillReturnRows(pgxmock.NewRows([]string{"created_date", "last_modified_date"}).AddRow(now, now))
	mock.ExpectExec("UPDATE customers SET balance").
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	engine := ledger.NewEngine(NewCreditHistoryRepository(mock), events.Noop{}, logging.Discard())
	_, err := engine.ApplyEntry(context.Background(), creditReq(models.EntryCredit, "50"))

	assert.Equal(t, apperr.KindTransactionFailed, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerTx_MissingCustomerWritesNothing(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM customers").
		WithArgs("c1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	engine := ledger.NewEngine(NewCreditHistoryRepository(mock), events.Noop{}, logging.Discard())
	_, err := engine.ApplyEntry(context.Background(), creditReq(models.EntryCredit, "50"))

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerTx_CommitFailure(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM customers").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow("10.00"))
	mock.ExpectQuery("INSERT INTO credithistory").
		WillReturnRows(pgxmock.NewRows([]string{"created_date", "last_modified_date"}).AddRow(now, now))
	mock.ExpectExec("UPDATE customers SET balance").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	engine := ledger.NewEngine(NewCreditHistoryRepository(mock), events.Noop{}, logging.Discard())
	_, err := engine.ApplyEntry(context.Background(), creditReq(models.EntryCredit, "5"))

	assert.Equal(t, apperr.KindTransactionFailed, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerCreate_DuplicatePhoneIsConflict(t *testing.T) {
	mock := newMock(t)
	phone := "9876543210"

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs("c1", "Ravi", &phone, pgxmock.AnyArg(), (*string)(nil), false).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_phone_live_key"})

	repo := NewCustomerRepository(mock)
	err := repo.Create(context.Background(), &models.Customer{ID: "c1", Name: "Ravi", Phone: &phone})

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerUpdate_BuildsPartialSet(t *testing.T) {
	mock := newMock(t)
	name := "Ravi Kumar"

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE customers SET name = $1, last_modified_date = NOW() WHERE id = $2 AND deleted_at IS NULL RETURNING `+customerColumns)).
		WithArgs(name, "c1").
		WillReturnError(pgx.ErrNoRows)

	repo := NewCustomerRepository(mock)
	_, err := repo.Update(context.Background(), "c1", &models.UpdateCustomerRequest{Name: &name})

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerUpdate_NothingToSet(t *testing.T) {
	repo := NewCustomerRepository(newMock(t))
	_, err := repo.Update(context.Background(), "c1", &models.UpdateCustomerRequest{})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestSoftDelete_Idempotent(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE customers SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs("c1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE customers SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs("c1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewCustomerRepository(mock)
	first, err := repo.SoftDelete(context.Background(), "c1")
	require.NoError(t, err)
	second, err := repo.SoftDelete(context.Background(), "c1")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerSearch_EscapesPatternAndPaginates(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL AND (name ILIKE $1 OR phone ILIKE $1)`)).
		WithArgs(`%50\%%`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY name, id LIMIT $2 OFFSET $3`)).
		WithArgs(`%50\%%`, 10, 20).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	repo := NewCustomerRepository(mock)
	items, total, err := repo.Search(context.Background(), "50%", models.NewPageRequest(3, 10))

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.EqualValues(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditHistoryList_ScopedToCustomer(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM credithistory WHERE deleted_at IS NULL AND customer_id = $1`)).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_date DESC, id DESC LIMIT $2 OFFSET $3`)).
		WithArgs("c1", 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	repo := NewCreditHistoryRepository(mock)
	_, _, err := repo.List(context.Background(), "c1", models.NewPageRequest(1, 20))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateCreate_PhotoIncludesMedia(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	media := "photocertificate/p1/front.jpg"

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO photocertificate (id, customer_id, status, data, mode_of_payment, total, gst, gst_bill_number, total_tax, media)`)).
		WithArgs("p1", (*string)(nil), "pending", (*string)(nil), "upi",
			pgxmock.AnyArg(), pgxmock.AnyArg(), (*string)(nil), pgxmock.AnyArg(), &media).
		WillReturnRows(pgxmock.NewRows([]string{"created_date", "last_modified_date"}).AddRow(now, now))

	repo := NewCertificateRepository(mock)
	c := &models.Certificate{
		ID: "p1", Kind: models.CertificatePhoto, Status: models.StatusPending,
		ModeOfPayment: models.PaymentUPI, Media: &media,
	}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, now, c.CreatedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateRepository_RejectsUnknownKind(t *testing.T) {
	repo := NewCertificateRepository(newMock(t))
	_, err := repo.Get(context.Background(), "bronze", "x")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestGlobalCreate_DuplicateKey(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO globals").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewGlobalSettingRepository(mock)
	err := repo.Create(context.Background(), &models.GlobalSetting{ID: "g1", Key: "gst_rate"})

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
