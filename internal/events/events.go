// Package events fans committed ledger changes out to live subscribers.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"assay-backend/internal/models"
)

const TypeEntryApplied = "ledger.entry_applied"

type Event struct {
	Type       string               `json:"type"`
	CustomerID string               `json:"customer_id"`
	Entry      models.CreditHistory `json:"entry"`
	NewBalance decimal.Decimal      `json:"new_balance"`
	OccurredAt time.Time            `json:"occurred_at"`
}

func EntryApplied(entry models.CreditHistory, newBalance decimal.Decimal, at time.Time) Event {
	return Event{
		Type:       TypeEntryApplied,
		CustomerID: entry.CustomerID,
		Entry:      entry,
		NewBalance: newBalance,
		OccurredAt: at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every sink and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
