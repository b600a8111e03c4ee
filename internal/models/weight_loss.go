package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WeightLoss struct {
	ID               string          `json:"Id"`
	CustomerID       string          `json:"CustomerId"`
	Amount           decimal.Decimal `json:"Amount"`
	ModeOfPayment    PaymentMode     `json:"ModeOfPayment"`
	CreatedDate      time.Time       `json:"CreatedDate"`
	LastModifiedDate time.Time       `json:"LastModifiedDate"`
	DeletedAt        *time.Time      `json:"DeletedAt"`
}

type CreateWeightLossRequest struct {
	CustomerID    string          `json:"CustomerId" validate:"required"`
	Amount        decimal.Decimal `json:"Amount" validate:"gt=0,money"`
	ModeOfPayment PaymentMode     `json:"ModeOfPayment" validate:"required,paymentmode"`
}

type UpdateWeightLossRequest struct {
	CustomerID    *string          `json:"CustomerId" validate:"omitempty,min=1"`
	Amount        *decimal.Decimal `json:"Amount" validate:"omitempty,gt=0,money"`
	ModeOfPayment *PaymentMode     `json:"ModeOfPayment" validate:"omitempty,paymentmode"`
}

func (r *UpdateWeightLossRequest) Empty() bool {
	return r.CustomerID == nil && r.Amount == nil && r.ModeOfPayment == nil
}
