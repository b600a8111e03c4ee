package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoldTest is a purity test without tax fields.
type GoldTest struct {
	ID               string            `json:"Id"`
	CustomerID       *string           `json:"CustomerId"`
	Status           CertificateStatus `json:"Status"`
	Data             *string           `json:"Data"`
	ModeOfPayment    PaymentMode       `json:"ModeOfPayment"`
	Total            decimal.Decimal   `json:"Total"`
	CreatedDate      time.Time         `json:"CreatedDate"`
	LastModifiedDate time.Time         `json:"LastModifiedDate"`
	DeletedAt        *time.Time        `json:"DeletedAt"`
}

type CreateGoldTestRequest struct {
	CustomerID    *string           `json:"CustomerId"`
	Status        CertificateStatus `json:"Status" validate:"omitempty,certstatus"`
	Data          *string           `json:"Data"`
	ModeOfPayment PaymentMode       `json:"ModeOfPayment" validate:"required,paymentmode"`
	Total         *decimal.Decimal  `json:"Total" validate:"omitempty,gte=0,money"`
}

type UpdateGoldTestRequest struct {
	CustomerID    *string            `json:"CustomerId"`
	Status        *CertificateStatus `json:"Status" validate:"omitempty,certstatus"`
	Data          *string            `json:"Data"`
	ModeOfPayment *PaymentMode       `json:"ModeOfPayment" validate:"omitempty,paymentmode"`
	Total         *decimal.Decimal   `json:"Total" validate:"omitempty,gte=0,money"`
}

func (r *UpdateGoldTestRequest) Empty() bool {
	return r.CustomerID == nil && r.Status == nil && r.Data == nil && r.ModeOfPayment == nil && r.Total == nil
}
