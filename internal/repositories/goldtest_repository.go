package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"assay-backend/internal/apperr"
	"assay-backend/internal/db"
	"assay-backend/internal/models"
)

const goldTestColumns = `id, customer_id, status, data, mode_of_payment, total, created_date, last_modified_date, deleted_at`

const msgGoldTestNotFound = "Gold test not found"

type GoldTestRepository struct {
	DB db.Querier
}

func NewGoldTestRepository(q db.Querier) *GoldTestRepository {
	return &GoldTestRepository{DB: q}
}

func scanGoldTest(row pgx.Row) (models.GoldTest, error) {
	var g models.GoldTest
	var status, mode string
	err := row.Scan(&g.ID, &g.CustomerID, &status, &g.Data, &mode, &g.Total,
		&g.CreatedDate, &g.LastModifiedDate, &g.DeletedAt)
	g.Status = models.CertificateStatus(status)
	g.ModeOfPayment = models.PaymentMode(mode)
	return g, err
}

func (r *GoldTestRepository) Create(ctx context.Context, g *models.GoldTest) error {
	query := `
		INSERT INTO goldtest (id, customer_id, status, data, mode_of_payment, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_date, last_modified_date
	`
	err := r.DB.QueryRow(ctx, query,
		g.ID, g.CustomerID, string(g.Status), g.Data, string(g.ModeOfPayment), g.Total,
	).Scan(&g.CreatedDate, &g.LastModifiedDate)
	return apperr.FromDB(err, "", "")
}

func (r *GoldTestRepository) Get(ctx context.Context, id string) (*models.GoldTest, error) {
	g, err := scanGoldTest(r.DB.QueryRow(ctx,
		`SELECT `+goldTestColumns+` FROM goldtest WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, apperr.FromDB(err, msgGoldTestNotFound, "")
	}
	return &g, nil
}

func (r *GoldTestRepository) List(ctx context.Context, p models.PageRequest) ([]models.GoldTest, int64, error) {
	items, total, err := listPage(ctx, r.DB,
		`SELECT COUNT(*) FROM goldtest WHERE deleted_at IS NULL`,
		`SELECT `+goldTestColumns+` FROM goldtest WHERE deleted_at IS NULL ORDER BY created_date DESC, id DESC`,
		nil, p, scanGoldTest)
	if err != nil {
		return nil, 0, apperr.Internal("list gold tests", err)
	}
	return items, total, nil
}

func (r *GoldTestRepository) Update(ctx context.Context, id string, req *models.UpdateGoldTestRequest) (*models.GoldTest, error) {
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
	if set.empty() {
		return nil, apperr.BadRequest("No fields to update")
	}

	query, args := set.update("goldtest", "id", id, goldTestColumns)
	g, err := scanGoldTest(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, apperr.FromDB(err, msgGoldTestNotFound, "")
	}
	return &g, nil
}

func (r *GoldTestRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	ok, err := softDelete(ctx, r.DB, "goldtest", "id", id)
	if err != nil {
		return false, apperr.Internal("delete gold test", err)
	}
	return ok, nil
}
