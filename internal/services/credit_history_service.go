package services

import (
	"context"

	"assay-backend/internal/models"
)

type CreditHistoryRepository interface {
	List(ctx context.Context, customerID string, p models.PageRequest) ([]models.CreditHistory, int64, error)
	Get(ctx context.Context, id string) (*models.CreditHistory, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// EntryApplier is implemented by ledger.Engine.
type EntryApplier interface {
	ApplyEntry(ctx context.Context, req models.CreateCreditHistoryRequest) (*models.CreditHistoryResult, error)
}

type CreditHistoryService struct {
	Repo   CreditHistoryRepository
	Ledger EntryApplier
}

func NewCreditHistoryService(repo CreditHistoryRepository, ledger EntryApplier) *CreditHistoryService {
	return &CreditHistoryService{Repo: repo, Ledger: ledger}
}

func (s *CreditHistoryService) CreateEntry(ctx context.Context, req models.CreateCreditHistoryRequest) (*models.CreditHistoryResult, error) {
	return s.Ledger.ApplyEntry(ctx, req)
}

func (s *CreditHistoryService) ListEntries(ctx context.Context, p models.PageRequest) (models.Page[models.CreditHistory], error) {
	return s.ListCustomerEntries(ctx, "", p)
}

// ListCustomerEntries does not check that the customer exists; an
// unknown id yields an empty page.
func (s *CreditHistoryService) ListCustomerEntries(ctx context.Context, customerID string, p models.PageRequest) (models.Page[models.CreditHistory], error) {
	items, total, err := s.Repo.List(ctx, customerID, p)
	if err != nil {
		return models.Page[models.CreditHistory]{}, err
	}
	return models.NewPage(items, total, p), nil
}

func (s *CreditHistoryService) GetEntry(ctx context.Context, id string) (*models.CreditHistory, error) {
	return s.Repo.Get(ctx, id)
}

// DeleteEntry hides the entry without reversing its effect on the balance.
func (s *CreditHistoryService) DeleteEntry(ctx context.Context, id string) (bool, error) {
	return s.Repo.SoftDelete(ctx, id)
}
