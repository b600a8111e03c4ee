package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"assay-backend/internal/apperr"
	"assay-backend/internal/db"
	"assay-backend/internal/models"
)

const weightLossColumns = `id, customer_id, amount, mode_of_payment, created_date, last_modified_date, deleted_at`

const msgWeightLossNotFound = "Weight loss entry not found"

type WeightLossRepository struct {
	DB db.Querier
}

func NewWeightLossRepository(q db.Querier) *WeightLossRepository {
	return &WeightLossRepository{DB: q}
}

func scanWeightLoss(row pgx.Row) (models.WeightLoss, error) {
	var w models.WeightLoss
	var mode string
	err := row.Scan(&w.ID, &w.CustomerID, &w.Amount, &mode, &w.CreatedDate, &w.LastModifiedDate, &w.DeletedAt)
	w.ModeOfPayment = models.PaymentMode(mode)
	return w, err
}

func (r *WeightLossRepository) Create(ctx context.Context, w *models.WeightLoss) error {
	query := `
		INSERT INTO weightlosshistory (id, customer_id, amount, mode_of_payment)
		VALUES ($1, $2, $3, $4)
		RETURNING created_date, last_modified_date
	`
	err := r.DB.QueryRow(ctx, query, w.ID, w.CustomerID, w.Amount, string(w.ModeOfPayment)).
		Scan(&w.CreatedDate, &w.LastModifiedDate)
	return apperr.FromDB(err, "", "")
}

func (r *WeightLossRepository) Get(ctx context.Context, id string) (*models.WeightLoss, error) {
	w, err := scanWeightLoss(r.DB.QueryRow(ctx,
		`SELECT `+weightLossColumns+` FROM weightlosshistory WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, apperr.FromDB(err, msgWeightLossNotFound, "")
	}
	return &w, nil
}

// List returns live entries newest first, optionally for one customer.
func (r *WeightLossRepository) List(ctx context.Context, customerID string, p models.PageRequest) ([]models.WeightLoss, int64, error) {
	where, args := `deleted_at IS NULL`, []any(nil)
	if customerID != "" {
		where, args = `deleted_at IS NULL AND customer_id = $1`, []any{customerID}
	}
	items, total, err := listPage(ctx, r.DB,
		`SELECT COUNT(*) FROM weightlosshistory WHERE `+where,
		`SELECT `+weightLossColumns+` FROM weightlosshistory WHERE `+where+` ORDER BY created_date DESC, id DESC`,
		args, p, scanWeightLoss)
	if err != nil {
		return nil, 0, apperr.Internal("list weight loss", err)
	}
	return items, total, nil
}

func (r *WeightLossRepository) Update(ctx context.Context, id string, req *models.UpdateWeightLossRequest) (*models.WeightLoss, error) {
	var set setList
	if req.CustomerID != nil {
		set.add("customer_id", *req.CustomerID)
	}
	if req.Amount != nil {
		set.add("amount", *req.Amount)
	}
	if req.ModeOfPayment != nil {
		set.add("mode_of_payment", string(*req.ModeOfPayment))
	}
	if set.empty() {
		return nil, apperr.BadRequest("No fields to update")
	}

	query, args := set.update("weightlosshistory", "id", id, weightLossColumns)
	w, err := scanWeightLoss(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, apperr.FromDB(err, msgWeightLossNotFound, "")
	}
	return &w, nil
}

func (r *WeightLossRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	ok, err := softDelete(ctx, r.DB, "weightlosshistory", "id", id)
	if err != nil {
		return false, apperr.Internal("delete weight loss", err)
	}
	return ok, nil
}
