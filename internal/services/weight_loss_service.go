package services

import (
	"context"

	"github.com/google/uuid"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
	"assay-backend/internal/validation"
)

type WeightLossRepository interface {
	Create(ctx context.Context, w *models.WeightLoss) error
	Get(ctx context.Context, id string) (*models.WeightLoss, error)
	List(ctx context.Context, customerID string, p models.PageRequest) ([]models.WeightLoss, int64, error)
	Update(ctx context.Context, id string, req *models.UpdateWeightLossRequest) (*models.WeightLoss, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// WeightLossService records metal lost during assaying, always against a customer.
type WeightLossService struct {
	Repo      WeightLossRepository
	Customers CustomerLookup
}

func NewWeightLossService(repo WeightLossRepository, customers CustomerLookup) *WeightLossService {
	return &WeightLossService{Repo: repo, Customers: customers}
}

func (s *WeightLossService) CreateWeightLoss(ctx context.Context, req *models.CreateWeightLossRequest) (*models.WeightLoss, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := requireCustomer(ctx, s.Customers, req.CustomerID); err != nil {
		return nil, err
	}

	entry := &models.WeightLoss{
		ID:            uuid.NewString(),
		CustomerID:    req.CustomerID,
		Amount:        req.Amount,
		ModeOfPayment: req.ModeOfPayment,
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *WeightLossService) GetWeightLoss(ctx context.Context, id string) (*models.WeightLoss, error) {
	return s.Repo.Get(ctx, id)
}

func (s *WeightLossService) ListWeightLoss(ctx context.Context, p models.PageRequest) (models.Page[models.WeightLoss], error) {
	return s.ListCustomerWeightLoss(ctx, "", p)
}

func (s *WeightLossService) ListCustomerWeightLoss(ctx context.Context, customerID string, p models.PageRequest) (models.Page[models.WeightLoss], error) {
	items, total, err := s.Repo.List(ctx, customerID, p)
	if err != nil {
		return models.Page[models.WeightLoss]{}, err
	}
	return models.NewPage(items, total, p), nil
}

func (s *WeightLossService) UpdateWeightLoss(ctx context.Context, id string, req *models.UpdateWeightLossRequest) (*models.WeightLoss, error) {
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

func (s *WeightLossService) DeleteWeightLoss(ctx context.Context, id string) (bool, error) {
	return s.Repo.SoftDelete(ctx, id)
}
