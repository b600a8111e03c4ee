package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind is the direction of a credit history entry.
type EntryKind string

const (
	EntryCredit EntryKind = "credit" // increases balance
	EntryDebit  EntryKind = "debit"  // decreases balance
)

func (k EntryKind) Valid() bool {
	return k == EntryCredit || k == EntryDebit
}

// Apply returns balance moved by amount in this entry's direction.
func (k EntryKind) Apply(balance, amount decimal.Decimal) decimal.Decimal {
	if k == EntryDebit {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}

// CreditHistory is one immutable ledger line. PreviousBalance is the
// customer's balance immediately before the entry was applied.
type CreditHistory struct {
	ID               string          `json:"Id"`
	CustomerID       string          `json:"CustomerId"`
	Type             EntryKind       `json:"Type"`
	Amount           decimal.Decimal `json:"Amount"`
	PreviousBalance  decimal.Decimal `json:"PreviousBalance"`
	ModeOfPayment    PaymentMode     `json:"ModeOfPayment"`
	CreatedDate      time.Time       `json:"CreatedDate"`
	LastModifiedDate time.Time       `json:"LastModifiedDate"`
	DeletedAt        *time.Time      `json:"DeletedAt"`
}

// Signed returns the entry's effect on the balance.
func (c *CreditHistory) Signed() decimal.Decimal {
	if c.Type == EntryDebit {
		return c.Amount.Neg()
	}
	return c.Amount
}

type CreateCreditHistoryRequest struct {
	CustomerID    string          `json:"CustomerId" validate:"required"`
	Type          EntryKind       `json:"Type" validate:"required,oneof=credit debit"`
	Amount        decimal.Decimal `json:"Amount" validate:"gt=0,money"`
	ModeOfPayment PaymentMode     `json:"ModeOfPayment" validate:"required,paymentmode"`
}

// CreditHistoryResult is returned from a successful apply.
type CreditHistoryResult struct {
	CreditHistory
	NewBalance decimal.Decimal `json:"NewBalance"`
}
