package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
	"assay-backend/internal/validation"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context, p models.PageRequest) ([]models.Customer, int64, error)
	Search(ctx context.Context, q string, p models.PageRequest) ([]models.Customer, int64, error)
	Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	PhoneInUse(ctx context.Context, phone, excludeID string) (bool, error)
}

// CustomerLookup resolves live customers for cross-entity checks.
type CustomerLookup interface {
	Get(ctx context.Context, id string) (*models.Customer, error)
}

type CustomerService struct {
	Repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	phone := normalizePhone(req.Phone)
	if phone != nil {
		if err := s.checkPhone(ctx, *phone, ""); err != nil {
			return nil, err
		}
	}

	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}

	customer := &models.Customer{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Phone:    phone,
		Balance:  balance,
		Notes:    req.Notes,
		Disabled: req.Disabled,
	}
	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context, p models.PageRequest) (models.Page[models.Customer], error) {
	items, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return models.Page[models.Customer]{}, err
	}
	return models.NewPage(items, total, p), nil
}

// SearchCustomers matches q against name or phone, ordered by name.
func (s *CustomerService) SearchCustomers(ctx context.Context, q string, p models.PageRequest) (models.Page[models.Customer], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return models.Page[models.Customer]{}, apperr.Validation("q: field required")
	}
	items, total, err := s.Repo.Search(ctx, q, p)
	if err != nil {
		return models.Page[models.Customer]{}, err
	}
	return models.NewPage(items, total, p), nil
}

// UpdateCustomer applies a partial update. Balance can only move through
// credit history entries.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.Balance != nil {
		return nil, apperr.Validation("Balance: cannot be updated directly, record a credit history entry instead")
	}
	if req.Empty() {
		return nil, apperr.BadRequest("No fields to update")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.Repo.Get(ctx, id); err != nil {
		return nil, err
	}

	if req.Phone != nil {
		req.Phone = normalizePhone(req.Phone)
		if req.Phone == nil {
			return nil, apperr.Validation("Phone: must not be empty")
		}
		if err := s.checkPhone(ctx, *req.Phone, id); err != nil {
			return nil, err
		}
	}

	return s.Repo.Update(ctx, id, req)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) (bool, error) {
	return s.Repo.SoftDelete(ctx, id)
}

func (s *CustomerService) checkPhone(ctx context.Context, phone, excludeID string) error {
	taken, err := s.Repo.PhoneInUse(ctx, phone, excludeID)
	if err != nil {
		return apperr.Internal("check phone", err)
	}
	if taken {
		return apperr.Conflict("Phone number already exists")
	}
	return nil
}

func normalizePhone(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// requireCustomer fails with NotFound unless id names a live customer.
func requireCustomer(ctx context.Context, customers CustomerLookup, id string) error {
	_, err := customers.Get(ctx, id)
	return err
}
