package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
	"assay-backend/internal/timeutil"
)

// CertificatePDF holds the data rendered onto a certificate PDF
type CertificatePDF struct {
	Certificate *models.Certificate
	Customer    *models.Customer
}

// RenderCertificatePDF loads a certificate and its customer and renders it
func (s *CertificateService) RenderCertificatePDF(ctx context.Context, kind models.CertificateKind, id string) ([]byte, error) {
	cert, err := s.Repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	data := CertificatePDF{Certificate: cert}
	if cert.CustomerID != nil {
		// The customer may have been removed since the certificate was issued.
		if c, err := s.Customers.Get(ctx, *cert.CustomerID); err == nil {
			data.Customer = c
		} else if !apperr.Is(err, apperr.KindNotFound) {
			return nil, err
		}
	}

	out, err := GenerateCertificatePDF(data)
	if err != nil {
		return nil, apperr.Internal("render certificate pdf", err)
	}
	return out, nil
}

// GenerateCertificatePDF creates an A4 PDF for a single certificate
func GenerateCertificatePDF(data CertificatePDF) ([]byte, error) {
	cert := data.Certificate

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, cert.Kind.Title(), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Certificate No: %s", cert.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	name, phone := "Walk-in", "-"
	if data.Customer != nil {
		name = data.Customer.Name
		if data.Customer.Phone != nil {
			phone = *data.Customer.Phone
		}
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", phone), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", cert.Status), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Issued: %s", timeutil.FormatIST(cert.CreatedDate, timeutil.DisplayLayout)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Payment: %s", cert.ModeOfPayment), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("GST Bill No: %s", valueOr(cert.GSTBillNumber, "-")), "RB", 1, "L", false, 0, "")

	if cert.Data != nil && *cert.Data != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 6, *cert.Data, "1", "L", false)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Amounts", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total: Rs. %s", cert.Total.StringFixed(2)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("GST: Rs. %s", cert.GST.StringFixed(2)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Total Tax: Rs. %s", cert.TotalTax.StringFixed(2)), "1", 1, "C", false, 0, "")

	pdf.SetFillColor(200, 255, 200)
	pdf.SetFont("Arial", "B", 14)
	grand := cert.Total.Add(cert.TotalTax)
	pdf.CellFormat(190, 10, fmt.Sprintf("Amount Payable: Rs. %s", grand.StringFixed(2)), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
