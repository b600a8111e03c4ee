package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"assay-backend/internal/apperr"
	"assay-backend/internal/db"
	"assay-backend/internal/models"
)

const customerColumns = `id, name, phone, balance, notes, disabled, created_date, last_modified_date, deleted_at`

const (
	msgCustomerNotFound = "Customer not found"
	msgPhoneTaken       = "Phone number already exists"
)

type CustomerRepository struct {
	DB db.Querier
}

func NewCustomerRepository(q db.Querier) *CustomerRepository {
	return &CustomerRepository{DB: q}
}

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Balance,
		&c.Notes,
		&c.Disabled,
		&c.CreatedDate,
		&c.LastModifiedDate,
		&c.DeletedAt,
	)
	return c, err
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, balance, notes, disabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_date, last_modified_date
	`
	err := r.DB.QueryRow(ctx, query, c.ID, c.Name, c.Phone, c.Balance, c.Notes, c.Disabled).
		Scan(&c.CreatedDate, &c.LastModifiedDate)
	return apperr.FromDB(err, "", msgPhoneTaken)
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (*models.Customer, error) {
	c, err := scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, apperr.FromDB(err, msgCustomerNotFound, "")
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, p models.PageRequest) ([]models.Customer, int64, error) {
	items, total, err := listPage(ctx, r.DB,
		`SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`,
		`SELECT `+customerColumns+` FROM customers WHERE deleted_at IS NULL ORDER BY created_date DESC, id DESC`,
		nil, p, scanCustomer)
	if err != nil {
		return nil, 0, apperr.Internal("list customers", err)
	}
	return items, total, nil
}

// Search matches q case-insensitively against name or phone.
func (r *CustomerRepository) Search(ctx context.Context, q string, p models.PageRequest) ([]models.Customer, int64, error) {
	where := `deleted_at IS NULL AND (name ILIKE $1 OR phone ILIKE $1)`
	items, total, err := listPage(ctx, r.DB,
		`SELECT COUNT(*) FROM customers WHERE `+where,
		`SELECT `+customerColumns+` FROM customers WHERE `+where+` ORDER BY name, id`,
		[]any{"%" + escapeLike(q) + "%"}, p, scanCustomer)
	if err != nil {
		return nil, 0, apperr.Internal("search customers", err)
	}
	return items, total, nil
}

// Update applies the supplied fields. Balance is never written here.
func (r *CustomerRepository) Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	var set setList
	if req.Name != nil {
		set.add("name", *req.Name)
	}
	if req.Phone != nil {
		set.add("phone", *req.Phone)
	}
	if req.Notes != nil {
		set.add("notes", *req.Notes)
	}
	if req.Disabled != nil {
		set.add("disabled", *req.Disabled)
	}
	if set.empty() {
		return nil, apperr.BadRequest("No fields to update")
	}

	query, args := set.update("customers", "id", id, customerColumns)
	c, err := scanCustomer(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, apperr.FromDB(err, msgCustomerNotFound, msgPhoneTaken)
	}
	return &c, nil
}

func (r *CustomerRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	ok, err := softDelete(ctx, r.DB, "customers", "id", id)
	if err != nil {
		return false, apperr.Internal("delete customer", err)
	}
	return ok, nil
}

// PhoneInUse reports whether a live customer other than excludeID has phone.
func (r *CustomerRepository) PhoneInUse(ctx context.Context, phone, excludeID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM customers
			WHERE phone = $1 AND id <> $2 AND deleted_at IS NULL
		)`, phone, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check phone: %w", err)
	}
	return exists, nil
}
