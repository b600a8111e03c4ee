package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PaymentMode is how a customer settled an amount.
type PaymentMode string

const (
	PaymentBill   PaymentMode = "bill"
	PaymentCash   PaymentMode = "cash"
	PaymentUPI    PaymentMode = "upi"
	PaymentCheque PaymentMode = "cheque"
	PaymentNEFT   PaymentMode = "neft"
)

var PaymentModes = []PaymentMode{PaymentBill, PaymentCash, PaymentUPI, PaymentCheque, PaymentNEFT}

func (m PaymentMode) Valid() bool {
	for _, p := range PaymentModes {
		if m == p {
			return true
		}
	}
	return false
}

// CertificateStatus tracks a certificate or gold test through its lifecycle.
type CertificateStatus string

const (
	StatusPending   CertificateStatus = "pending"
	StatusCompleted CertificateStatus = "completed"
	StatusCancelled CertificateStatus = "cancelled"
)

func (s CertificateStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Money columns are NUMERIC(14,2).
const MoneyScale = 2

var MaxMoney = decimal.New(1, 12)

// FitsMoney reports whether d can be stored in a money column without
// rounding or overflow.
func FitsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale)) && d.Abs().LessThan(MaxMoney)
}
