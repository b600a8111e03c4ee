package services

import (
	"context"

	"github.com/google/uuid"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
	"assay-backend/internal/validation"
)

type GoldTestRepository interface {
	Create(ctx context.Context, g *models.GoldTest) error
	Get(ctx context.Context, id string) (*models.GoldTest, error)
	List(ctx context.Context, p models.PageRequest) ([]models.GoldTest, int64, error)
	Update(ctx context.Context, id string, req *models.UpdateGoldTestRequest) (*models.GoldTest, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

type GoldTestService struct {
	Repo      GoldTestRepository
	Customers CustomerLookup
}

func NewGoldTestService(repo GoldTestRepository, customers CustomerLookup) *GoldTestService {
	return &GoldTestService{Repo: repo, Customers: customers}
}

func (s *GoldTestService) CreateGoldTest(ctx context.Context, req *models.CreateGoldTestRequest) (*models.GoldTest, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Total == nil {
		return nil, apperr.Validation("Total: field required")
	}
	if req.CustomerID != nil {
		if err := requireCustomer(ctx, s.Customers, *req.CustomerID); err != nil {
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	test := &models.GoldTest{
		ID:            uuid.NewString(),
		CustomerID:    req.CustomerID,
		Status:        status,
		Data:          req.Data,
		ModeOfPayment: req.ModeOfPayment,
		Total:         *req.Total,
	}
	if err := s.Repo.Create(ctx, test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *GoldTestService) GetGoldTest(ctx context.Context, id string) (*models.GoldTest, error) {
	return s.Repo.Get(ctx, id)
}

func (s *GoldTestService) ListGoldTests(ctx context.Context, p models.PageRequest) (models.Page[models.GoldTest], error) {
	items, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return models.Page[models.GoldTest]{}, err
	}
	return models.NewPage(items, total, p), nil
}

func (s *GoldTestService) UpdateGoldTest(ctx context.Context, id string, req *models.UpdateGoldTestRequest) (*models.GoldTest, error) {
	if req.Empty() {
		return nil, apperr.BadRequest("No fields to update")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		if err := requireCustomer(ctx, s.Customers, *req.CustomerID); err != nil {
			return nil, err
		}
	}
	return s.Repo.Update(ctx, id, req)
}

func (s *GoldTestService) DeleteGoldTest(ctx context.Context, id string) (bool, error) {
	return s.Repo.SoftDelete(ctx, id)
}
