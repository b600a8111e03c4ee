package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"assay-backend/internal/apperr"
	"assay-backend/internal/db"
	"assay-backend/internal/models"
)

const certificateColumns = `id, customer_id, status, data, mode_of_payment, total, gst, gst_bill_number, total_tax`
const recordTimestamps = `created_date, last_modified_date, deleted_at`

// CertificateRepository serves the gold, silver and photo certificate
// tables, which differ only in the photo media column.
type CertificateRepository struct {
	DB db.Querier
}

func NewCertificateRepository(q db.Querier) *CertificateRepository {
	return &CertificateRepository{DB: q}
}

func certificateSelect(kind models.CertificateKind) string {
	if kind == models.CertificatePhoto {
		return certificateColumns + ", media, " + recordTimestamps
	}
	return certificateColumns + ", " + recordTimestamps
}

func certificateScanner(kind models.CertificateKind) scanFunc[models.Certificate] {
	return func(row pgx.Row) (models.Certificate, error) {
		c := models.Certificate{Kind: kind}
		var status, mode string
		dest := []any{
			&c.ID,
			&c.CustomerID,
			&status,
			&c.Data,
			&mode,
			&c.Total,
			&c.GST,
			&c.GSTBillNumber,
			&c.TotalTax,
		}
		if kind == models.CertificatePhoto {
			dest = append(dest, &c.Media)
		}
		dest = append(dest, &c.CreatedDate, &c.LastModifiedDate, &c.DeletedAt)

		err := row.Scan(dest...)
		c.Status = models.CertificateStatus(status)
		c.ModeOfPayment = models.PaymentMode(mode)
		return c, err
	}
}

func checkKind(kind models.CertificateKind) error {
	if !kind.Valid() {
		return apperr.Internal("certificate", fmt.Errorf("unknown certificate kind %q", kind))
	}
	return nil
}

func (r *CertificateRepository) Create(ctx context.Context, c *models.Certificate) error {
	if err := checkKind(c.Kind); err != nil {
		return err
	}

	cols := `id, customer_id, status, data, mode_of_payment, total, gst, gst_bill_number, total_tax`
	vals := `$1, $2, $3, $4, $5, $6, $7, $8, $9`
	args := []any{
		c.ID, c.CustomerID, string(c.Status), c.Data, string(c.ModeOfPayment),
		c.Total, c.GST, c.GSTBillNumber, c.TotalTax,
	}
	if c.Kind == models.CertificatePhoto {
		cols += `, media`
		vals += `, $10`
		args = append(args, c.Media)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING created_date, last_modified_date`,
		c.Kind.Table(), cols, vals)
	err := r.DB.QueryRow(ctx, query, args...).Scan(&c.CreatedDate, &c.LastModifiedDate)
	return apperr.FromDB(err, "", "")
}

func (r *CertificateRepository) Get(ctx context.Context, kind models.CertificateKind, id string) (*models.Certificate, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	c, err := certificateScanner(kind)(r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL`, certificateSelect(kind), kind.Table()),
		id))
	if err != nil {
		return nil, apperr.FromDB(err, kind.Title()+" not found", "")
	}
	return &c, nil
}

func (r *CertificateRepository) List(ctx context.Context, kind models.CertificateKind, p models.PageRequest) ([]models.Certificate, int64, error) {
	if err := checkKind(kind); err != nil {
		return nil, 0, err
	}
	items, total, err := listPage(ctx, r.DB,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE deleted_at IS NULL`, kind.Table()),
		fmt.Sprintf(`SELECT %s FROM %s WHERE deleted_at IS NULL ORDER BY created_date DESC, id DESC`,
			certificateSelect(kind), kind.Table()),
		nil, p, certificateScanner(kind))
	if err != nil {
		return nil, 0, apperr.Internal("list "+kind.Table(), err)
	}
	return items, total, nil
}

func (r *CertificateRepository) Update(ctx context.Context, kind models.CertificateKind, id string, req *models.UpdateCertificateRequest) (*models.Certificate, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	var set setList
	if req.CustomerID != nil {
		set.add("customer_id", *req.CustomerID)
	}
	if req.Status != nil {
		set.add("status", string(*req.Status))
	}
	if req.Data != nil {
		set.add("data", *req.Data)
	}
	if req.ModeOfPayment != nil {
		set.add("mode_of_payment", string(*req.ModeOfPayment))
	}
	if req.Total != nil {
		set.add("total", *req.Total)
	}
	if req.GST != nil {
		set.add("gst", *req.GST)
	}
	if req.GSTBillNumber != nil {
		set.add("gst_bill_number", *req.GSTBillNumber)
	}
	if req.TotalTax != nil {
		set.add("total_tax", *req.TotalTax)
	}
	if req.Media != nil && kind == models.CertificatePhoto {
		set.add("media", *req.Media)
	}
	if set.empty() {
		return nil, apperr.BadRequest("No fields to update")
	}

	query, args := set.update(kind.Table(), "id", id, certificateSelect(kind))
	c, err := certificateScanner(kind)(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, apperr.FromDB(err, kind.Title()+" not found", "")
	}
	return &c, nil
}

func (r *CertificateRepository) SoftDelete(ctx context.Context, kind models.CertificateKind, id string) (bool, error) {
	if err := checkKind(kind); err != nil {
		return false, err
	}
	ok, err := softDelete(ctx, r.DB, kind.Table(), "id", id)
	if err != nil {
		return false, apperr.Internal("delete "+kind.Table(), err)
	}
	return ok, nil
}
