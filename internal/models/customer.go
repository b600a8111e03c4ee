package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID               string          `json:"Id"`
	Name             string          `json:"Name"`
	Phone            *string         `json:"Phone"`
	Balance          decimal.Decimal `json:"Balance"`
	Notes            *string         `json:"Notes"`
	Disabled         bool            `json:"Disabled"`
	CreatedDate      time.Time       `json:"CreatedDate"`
	LastModifiedDate time.Time       `json:"LastModifiedDate"`
	DeletedAt        *time.Time      `json:"DeletedAt"`
}

type CreateCustomerRequest struct {
	Name     string           `json:"Name" validate:"required,min=1"`
	Phone    *string          `json:"Phone"`
	Balance  *decimal.Decimal `json:"Balance" validate:"omitempty,gte=0,money"`
	Notes    *string          `json:"Notes"`
	Disabled bool             `json:"Disabled"`
}

// UpdateCustomerRequest carries only the fields the caller supplied.
// Balance is accepted on the wire so it can be rejected explicitly; the
// ledger owns it.
type UpdateCustomerRequest struct {
	Name     *string          `json:"Name" validate:"omitempty,min=1"`
	Phone    *string          `json:"Phone"`
	Balance  *decimal.Decimal `json:"Balance"`
	Notes    *string          `json:"Notes"`
	Disabled *bool            `json:"Disabled"`
}

func (r *UpdateCustomerRequest) Empty() bool {
	return r.Name == nil && r.Phone == nil && r.Balance == nil && r.Notes == nil && r.Disabled == nil
}
