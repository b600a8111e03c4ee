// Package ledger applies credit and debit entries to customer balances.
//
// An apply reads the customer's balance under a row lock, writes the entry
// with that balance as PreviousBalance, and stores the new balance, all in
// one transaction. Concurrent applies for the same customer serialise on
// the lock, so the PreviousBalance values of a customer's entries always
// form an unbroken chain.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"assay-backend/internal/apperr"
	"assay-backend/internal/events"
	"assay-backend/internal/metrics"
	"assay-backend/internal/models"
	"assay-backend/internal/validation"
)

// Tx is the set of writes available inside one ledger transaction.
type Tx interface {
	// LockCustomerBalance returns the balance of a live customer and holds
	// a lock on it until the transaction ends. A missing or deleted
	// customer yields an apperr NotFound.
	LockCustomerBalance(ctx context.Context, customerID string) (decimal.Decimal, error)
	// InsertEntry stores entry and fills in its timestamps.
	InsertEntry(ctx context.Context, entry *models.CreditHistory) error
	UpdateCustomerBalance(ctx context.Context, customerID string, balance decimal.Decimal) error
}

// Store runs fn in a transaction, committing only if fn returns nil.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

const publishTimeout = 5 * time.Second

type Engine struct {
	store     Store
	publisher events.Publisher
	log       *logrus.Entry
	now       func() time.Time
	newID     func() string
}

func NewEngine(store Store, publisher events.Publisher, log logrus.FieldLogger) *Engine {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		store:     store,
		publisher: publisher,
		log:       log.WithField("component", "ledger"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ApplyEntry records a credit or debit and moves the customer's balance.
// Debits may take the balance below zero.
func (e *Engine) ApplyEntry(ctx context.Context, req models.CreateCreditHistoryRequest) (*models.CreditHistoryResult, error) {
	if err := validation.Struct(req); err != nil {
		metrics.LedgerFailuresTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	entry := models.CreditHistory{
		ID:            e.newID(),
		CustomerID:    req.CustomerID,
		Type:          req.Type,
		Amount:        req.Amount,
		ModeOfPayment: req.ModeOfPayment,
	}
	var newBalance decimal.Decimal

	err := e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		prev, err := tx.LockCustomerBalance(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		entry.PreviousBalance = prev
		newBalance = req.Type.Apply(prev, req.Amount)
		if !models.FitsMoney(newBalance) {
			return apperr.Validation("Amount: resulting balance %s is out of range", newBalance)
		}

		if err := tx.InsertEntry(ctx, &entry); err != nil {
			return apperr.TransactionFailed(err)
		}
		if err := tx.UpdateCustomerBalance(ctx, req.CustomerID, newBalance); err != nil {
			return apperr.TransactionFailed(err)
		}
		return nil
	})
	if err != nil {
		return nil, e.failed(req, err)
	}

	metrics.LedgerEntriesTotal.WithLabelValues(string(entry.Type)).Inc()
	e.log.WithFields(logrus.Fields{
		"customer_id": entry.CustomerID,
		"entry_id":    entry.ID,
		"type":        entry.Type,
		"amount":      entry.Amount.String(),
		"balance":     newBalance.String(),
	}).Info("entry applied")

	e.publish(ctx, entry, newBalance)

	return &models.CreditHistoryResult{CreditHistory: entry, NewBalance: newBalance}, nil
}

func (e *Engine) failed(req models.CreateCreditHistoryRequest, err error) error {
	kind := apperr.KindOf(err)
	metrics.LedgerFailuresTotal.WithLabelValues(kind.String()).Inc()

	switch kind {
	case apperr.KindNotFound, apperr.KindValidation, apperr.KindTransactionFailed:
	default:
		// Begin, lock and commit failures.
		err = apperr.TransactionFailed(err)
	}

	entry := e.log.WithField("customer_id", req.CustomerID).WithError(err)
	if kind == apperr.KindNotFound || kind == apperr.KindValidation {
		entry.Debug("apply rejected")
	} else {
		entry.Error("apply rolled back")
	}
	return err
}

// publish runs after commit. Delivery failures never undo the entry.
func (e *Engine) publish(ctx context.Context, entry models.CreditHistory, balance decimal.Decimal) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := e.publisher.Publish(ctx, events.EntryApplied(entry, balance, e.now())); err != nil {
		metrics.EventPublishFailures.WithLabelValues("ledger").Inc()
		e.log.WithError(err).WithField("entry_id", entry.ID).Warn("event publish failed")
	}
}
