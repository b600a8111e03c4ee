package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
	"assay-backend/internal/validation"
)

type GlobalSettingRepository interface {
	Create(ctx context.Context, g *models.GlobalSetting) error
	GetByKey(ctx context.Context, key string) (*models.GlobalSetting, error)
	List(ctx context.Context, p models.PageRequest) ([]models.GlobalSetting, int64, error)
	UpdateValue(ctx context.Context, key string, value *string) (*models.GlobalSetting, error)
	SoftDeleteByKey(ctx context.Context, key string) (bool, error)
}

type GlobalSettingService struct {
	Repo GlobalSettingRepository
}

func NewGlobalSettingService(repo GlobalSettingRepository) *GlobalSettingService {
	return &GlobalSettingService{Repo: repo}
}

func (s *GlobalSettingService) CreateSetting(ctx context.Context, req *models.CreateGlobalSettingRequest) (*models.GlobalSetting, error) {
	req.Key = strings.TrimSpace(req.Key)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	_, err := s.Repo.GetByKey(ctx, req.Key)
	switch {
	case err == nil:
		return nil, apperr.Conflict("Key already exists")
	case !apperr.Is(err, apperr.KindNotFound):
		return nil, err
	}

	setting := &models.GlobalSetting{
		ID:    uuid.NewString(),
		Key:   req.Key,
		Value: req.Value,
	}
	if err := s.Repo.Create(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *GlobalSettingService) GetSetting(ctx context.Context, key string) (*models.GlobalSetting, error) {
	return s.Repo.GetByKey(ctx, key)
}

func (s *GlobalSettingService) ListSettings(ctx context.Context, p models.PageRequest) (models.Page[models.GlobalSetting], error) {
	items, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return models.Page[models.GlobalSetting]{}, err
	}
	return models.NewPage(items, total, p), nil
}

// UpdateSetting replaces the value; the key itself is immutable.
func (s *GlobalSettingService) UpdateSetting(ctx context.Context, key string, req *models.UpdateGlobalSettingRequest) (*models.GlobalSetting, error) {
	if req.Empty() {
		return nil, apperr.BadRequest("No fields to update")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.Repo.UpdateValue(ctx, key, req.Value)
}

func (s *GlobalSettingService) DeleteSetting(ctx context.Context, key string) (bool, error) {
	return s.Repo.SoftDeleteByKey(ctx, key)
}
