package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CertificateKind selects one of the three certificate tables.
type CertificateKind string

const (
	CertificateGold   CertificateKind = "gold"
	CertificateSilver CertificateKind = "silver"
	CertificatePhoto  CertificateKind = "photo"
)

var CertificateKinds = []CertificateKind{CertificateGold, CertificateSilver, CertificatePhoto}

func (k CertificateKind) Valid() bool {
	return k == CertificateGold || k == CertificateSilver || k == CertificatePhoto
}

// Table is the backing table, also used as the URL segment.
func (k CertificateKind) Table() string {
	return string(k) + "certificate"
}

// Title is the human-readable label used in messages and PDFs.
func (k CertificateKind) Title() string {
	switch k {
	case CertificateGold:
		return "Gold certificate"
	case CertificateSilver:
		return "Silver certificate"
	case CertificatePhoto:
		return "Photo certificate"
	}
	return "Certificate"
}

type Certificate struct {
	ID               string            `json:"Id"`
	Kind             CertificateKind   `json:"-"`
	CustomerID       *string           `json:"CustomerId"`
	Status           CertificateStatus `json:"Status"`
	Data             *string           `json:"Data"`
	ModeOfPayment    PaymentMode       `json:"ModeOfPayment"`
	Total            decimal.Decimal   `json:"Total"`
	GST              decimal.Decimal   `json:"GST"`
	GSTBillNumber    *string           `json:"GSTBillNumber"`
	TotalTax         decimal.Decimal   `json:"TotalTax"`
	Media            *string           `json:"-"`
	CreatedDate      time.Time         `json:"CreatedDate"`
	LastModifiedDate time.Time         `json:"LastModifiedDate"`
	DeletedAt        *time.Time        `json:"DeletedAt"`
}

// MarshalJSON emits Media only for photo certificates.
func (c Certificate) MarshalJSON() ([]byte, error) {
	type plain Certificate
	if c.Kind != CertificatePhoto {
		return json.Marshal(plain(c))
	}
	return json.Marshal(struct {
		plain
		Media *string `json:"Media"`
	}{plain(c), c.Media})
}

type CreateCertificateRequest struct {
	CustomerID    *string           `json:"CustomerId"`
	Status        CertificateStatus `json:"Status" validate:"omitempty,certstatus"`
	Data          *string           `json:"Data"`
	ModeOfPayment PaymentMode       `json:"ModeOfPayment" validate:"required,paymentmode"`
	Total         *decimal.Decimal  `json:"Total" validate:"omitempty,gte=0,money"`
	GST           *decimal.Decimal  `json:"GST" validate:"omitempty,gte=0,money"`
	GSTBillNumber *string           `json:"GSTBillNumber"`
	TotalTax      *decimal.Decimal  `json:"TotalTax" validate:"omitempty,gte=0,money"`
	Media         *string           `json:"Media"`
}

type UpdateCertificateRequest struct {
	CustomerID    *string            `json:"CustomerId"`
	Status        *CertificateStatus `json:"Status" validate:"omitempty,certstatus"`
	Data          *string            `json:"Data"`
	ModeOfPayment *PaymentMode       `json:"ModeOfPayment" validate:"omitempty,paymentmode"`
	Total         *decimal.Decimal   `json:"Total" validate:"omitempty,gte=0,money"`
	GST           *decimal.Decimal   `json:"GST" validate:"omitempty,gte=0,money"`
	GSTBillNumber *string            `json:"GSTBillNumber"`
	TotalTax      *decimal.Decimal   `json:"TotalTax" validate:"omitempty,gte=0,money"`
	Media         *string            `json:"Media"`
}

func (r *UpdateCertificateRequest) Empty() bool {
	return r.CustomerID == nil && r.Status == nil && r.Data == nil && r.ModeOfPayment == nil &&
		r.Total == nil && r.GST == nil && r.GSTBillNumber == nil && r.TotalTax == nil && r.Media == nil
}
