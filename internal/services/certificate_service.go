package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
	"assay-backend/internal/validation"
)

type CertificateRepository interface {
	Create(ctx context.Context, c *models.Certificate) error
	Get(ctx context.Context, kind models.CertificateKind, id string) (*models.Certificate, error)
	List(ctx context.Context, kind models.CertificateKind, p models.PageRequest) ([]models.Certificate, int64, error)
	Update(ctx context.Context, kind models.CertificateKind, id string, req *models.UpdateCertificateRequest) (*models.Certificate, error)
	SoftDelete(ctx context.Context, kind models.CertificateKind, id string) (bool, error)
}

// MediaStorage holds uploaded photo certificate images.
type MediaStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// MaxMediaBytes caps a single photo upload.
const MaxMediaBytes = 10 << 20

var mediaExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

type CertificateService struct {
	Repo      CertificateRepository
	Customers CustomerLookup
	Media     MediaStorage
}

func NewCertificateService(repo CertificateRepository, customers CustomerLookup, media MediaStorage) *CertificateService {
	return &CertificateService{Repo: repo, Customers: customers, Media: media}
}

func (s *CertificateService) CreateCertificate(ctx context.Context, kind models.CertificateKind, req *models.CreateCertificateRequest) (*models.Certificate, error) {
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

	cert := &models.Certificate{
		ID:            uuid.NewString(),
		Kind:          kind,
		CustomerID:    req.CustomerID,
		Status:        status,
		Data:          req.Data,
		ModeOfPayment: req.ModeOfPayment,
		Total:         *req.Total,
		GST:           orZero(req.GST),
		GSTBillNumber: req.GSTBillNumber,
		TotalTax:      orZero(req.TotalTax),
	}
	if kind == models.CertificatePhoto {
		cert.Media = req.Media
	}

	if err := s.Repo.Create(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *CertificateService) GetCertificate(ctx context.Context, kind models.CertificateKind, id string) (*models.Certificate, error) {
	return s.Repo.Get(ctx, kind, id)
}

func (s *CertificateService) ListCertificates(ctx context.Context, kind models.CertificateKind, p models.PageRequest) (models.Page[models.Certificate], error) {
	items, total, err := s.Repo.List(ctx, kind, p)
	if err != nil {
		return models.Page[models.Certificate]{}, err
	}
	return models.NewPage(items, total, p), nil
}

func (s *CertificateService) UpdateCertificate(ctx context.Context, kind models.CertificateKind, id string, req *models.UpdateCertificateRequest) (*models.Certificate, error) {
	if kind != models.CertificatePhoto {
		req.Media = nil
	}
	if req.Empty() {
		return nil, apperr.BadRequest("No fields to update")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Repo.Get(ctx, kind, id); err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		if err := requireCustomer(ctx, s.Customers, *req.CustomerID); err != nil {
			return nil, err
		}
	}
	return s.Repo.Update(ctx, kind, id, req)
}

func (s *CertificateService) DeleteCertificate(ctx context.Context, kind models.CertificateKind, id string) (bool, error) {
	return s.Repo.SoftDelete(ctx, kind, id)
}

// AttachMedia uploads an image for a photo certificate and records its
// object key.
func (s *CertificateService) AttachMedia(ctx context.Context, id, contentType string, body io.Reader, size int64) (*models.Certificate, error) {
	if s.Media == nil {
		return nil, apperr.Unavailable("Media storage is not configured")
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := mediaExtensions[contentType]
	if !ok {
		return nil, apperr.Validation("file: unsupported content type %q", contentType)
	}
	if size <= 0 || size > MaxMediaBytes {
		return nil, apperr.Validation("file: size must be between 1 byte and %d bytes", MaxMediaBytes)
	}

	if _, err := s.Repo.Get(ctx, models.CertificatePhoto, id); err != nil {
		return nil, err
	}

	key := path.Join(models.CertificatePhoto.Table(), id, uuid.NewString()+ext)
	if err := s.Media.Put(ctx, key, contentType, body, size); err != nil {
		return nil, apperr.Internal("upload media", err)
	}

	return s.Repo.Update(ctx, models.CertificatePhoto, id, &models.UpdateCertificateRequest{Media: &key})
}

// MediaURL returns a time-limited download link for the certificate photo.
func (s *CertificateService) MediaURL(ctx context.Context, id string) (string, error) {
	if s.Media == nil {
		return "", apperr.Unavailable("Media storage is not configured")
	}
	cert, err := s.Repo.Get(ctx, models.CertificatePhoto, id)
	if err != nil {
		return "", err
	}
	if cert.Media == nil || *cert.Media == "" {
		return "", apperr.NotFound("Photo certificate has no media")
	}
	url, err := s.Media.PresignGet(ctx, *cert.Media)
	if err != nil {
		return "", apperr.Internal(fmt.Sprintf("presign %s", *cert.Media), err)
	}
	return url, nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
