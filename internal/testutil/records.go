package testutil

import (
	"context"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
)

// ---- certificates ----

type MemCertificates struct{ s *MemoryStore }

func (r *MemCertificates) Create(_ context.Context, c *models.Certificate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	c.CreatedDate, c.LastModifiedDate = now, now
	cp := *c
	r.s.certificates[c.ID] = &cp
	return nil
}

func (r *MemCertificates) live(kind models.CertificateKind, id string) (*models.Certificate, bool) {
	c, ok := r.s.certificates[id]
	if !ok || c.Kind != kind || c.DeletedAt != nil {
		return nil, false
	}
	return c, true
}

func (r *MemCertificates) Get(_ context.Context, kind models.CertificateKind, id string) (*models.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.live(kind, id)
	if !ok {
		return nil, apperr.NotFound(kind.Title() + " not found")
	}
	cp := *c
	return &cp, nil
}

func (r *MemCertificates) List(_ context.Context, kind models.CertificateKind, p models.PageRequest) ([]models.Certificate, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []models.Certificate
	for _, c := range r.s.certificates {
		if c.Kind == kind && c.DeletedAt == nil {
			rows = append(rows, *c)
		}
	}
	out, total := paginate(rows, func(a, b models.Certificate) bool {
		return newestFirst(a.CreatedDate, b.CreatedDate, a.ID, b.ID)
	}, p)
	return out, total, nil
}

func (r *MemCertificates) Update(_ context.Context, kind models.CertificateKind, id string, req *models.UpdateCertificateRequest) (*models.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.live(kind, id)
	if !ok {
		return nil, apperr.NotFound(kind.Title() + " not found")
	}
	if req.CustomerID != nil {
		c.CustomerID = req.CustomerID
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Data != nil {
		c.Data = req.Data
	}
	if req.ModeOfPayment != nil {
		c.ModeOfPayment = *req.ModeOfPayment
	}
	if req.Total != nil {
		c.Total = *req.Total
	}
	if req.GST != nil {
		c.GST = *req.GST
	}
	if req.GSTBillNumber != nil {
		c.GSTBillNumber = req.GSTBillNumber
	}
	if req.TotalTax != nil {
		c.TotalTax = *req.TotalTax
	}
	if req.Media != nil && kind == models.CertificatePhoto {
		c.Media = req.Media
	}
	c.LastModifiedDate = r.s.now()
	cp := *c
	return &cp, nil
}

func (r *MemCertificates) SoftDelete(_ context.Context, kind models.CertificateKind, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.live(kind, id)
	if !ok {
		return false, nil
	}
	now := r.s.now()
	c.DeletedAt = &now
	return true, nil
}

// ---- gold tests ----

type MemGoldTests struct{ s *MemoryStore }

func (r *MemGoldTests) Create(_ context.Context, g *models.GoldTest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	g.CreatedDate, g.LastModifiedDate = now, now
	cp := *g
	r.s.goldTests[g.ID] = &cp
	return nil
}

func (r *MemGoldTests) live(id string) (*models.GoldTest, bool) {
	g, ok := r.s.goldTests[id]
	if !ok || g.DeletedAt != nil {
		return nil, false
	}
	return g, true
}

func (r *MemGoldTests) Get(_ context.Context, id string) (*models.GoldTest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.live(id)
	if !ok {
		return nil, apperr.NotFound("Gold test not found")
	}
	cp := *g
	return &cp, nil
}

func (r *MemGoldTests) List(_ context.Context, p models.PageRequest) ([]models.GoldTest, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []models.GoldTest
	for _, g := range r.s.goldTests {
		if g.DeletedAt == nil {
			rows = append(rows, *g)
		}
	}
	out, total := paginate(rows, func(a, b models.GoldTest) bool {
		return newestFirst(a.CreatedDate, b.CreatedDate, a.ID, b.ID)
	}, p)
	return out, total, nil
}

func (r *MemGoldTests) Update(_ context.Context, id string, req *models.UpdateGoldTestRequest) (*models.GoldTest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.live(id)
	if !ok {
		return nil, apperr.NotFound("Gold test not found")
	}
	if req.CustomerID != nil {
		g.CustomerID = req.CustomerID
	}
	if req.Status != nil {
		g.Status = *req.Status
	}
	if req.Data != nil {
		g.Data = req.Data
	}
	if req.ModeOfPayment != nil {
		g.ModeOfPayment = *req.ModeOfPayment
	}
	if req.Total != nil {
		g.Total = *req.Total
	}
	g.LastModifiedDate = r.s.now()
	cp := *g
	return &cp, nil
}

func (r *MemGoldTests) SoftDelete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.live(id)
	if !ok {
		return false, nil
	}
	now := r.s.now()
	g.DeletedAt = &now
	return true, nil
}

// ---- weight loss ----

type MemWeightLoss struct{ s *MemoryStore }

func (r *MemWeightLoss) Create(_ context.Context, w *models.WeightLoss) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	w.CreatedDate, w.LastModifiedDate = now, now
	cp := *w
	r.s.weightLoss[w.ID] = &cp
	return nil
}

func (r *MemWeightLoss) live(id string) (*models.WeightLoss, bool) {
	w, ok := r.s.weightLoss[id]
	if !ok || w.DeletedAt != nil {
		return nil, false
	}
	return w, true
}

func (r *MemWeightLoss) Get(_ context.Context, id string) (*models.WeightLoss, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.live(id)
	if !ok {
		return nil, apperr.NotFound("Weight loss entry not found")
	}
	cp := *w
	return &cp, nil
}

func (r *MemWeightLoss) List(_ context.Context, customerID string, p models.PageRequest) ([]models.WeightLoss, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []models.WeightLoss
	for _, w := range r.s.weightLoss {
		if w.DeletedAt == nil && (customerID == "" || w.CustomerID == customerID) {
			rows = append(rows, *w)
		}
	}
	out, total := paginate(rows, func(a, b models.WeightLoss) bool {
		return newestFirst(a.CreatedDate, b.CreatedDate, a.ID, b.ID)
	}, p)
	return out, total, nil
}

func (r *MemWeightLoss) Update(_ context.Context, id string, req *models.UpdateWeightLossRequest) (*models.WeightLoss, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.live(id)
	if !ok {
		return nil, apperr.NotFound("Weight loss entry not found")
	}
	if req.CustomerID != nil {
		w.CustomerID = *req.CustomerID
	}
	if req.Amount != nil {
		w.Amount = *req.Amount
	}
	if req.ModeOfPayment != nil {
		w.ModeOfPayment = *req.ModeOfPayment
	}
	w.LastModifiedDate = r.s.now()
	cp := *w
	return &cp, nil
}

func (r *MemWeightLoss) SoftDelete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.live(id)
	if !ok {
		return false, nil
	}
	now := r.s.now()
	w.DeletedAt = &now
	return true, nil
}

// ---- globals ----

type MemGlobals struct{ s *MemoryStore }

func (r *MemGlobals) live(key string) (*models.GlobalSetting, bool) {
	for _, g := range r.s.globals {
		if g.DeletedAt == nil && g.Key == key {
			return g, true
		}
	}
	return nil, false
}

func (r *MemGlobals) Create(_ context.Context, g *models.GlobalSetting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.live(g.Key); taken {
		return apperr.Conflict("Key already exists")
	}
	now := r.s.now()
	g.CreatedDate, g.LastModifiedDate = now, now
	cp := *g
	r.s.globals[g.ID] = &cp
	return nil
}

func (r *MemGlobals) GetByKey(_ context.Context, key string) (*models.GlobalSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.live(key)
	if !ok {
		return nil, apperr.NotFound("Global setting not found")
	}
	cp := *g
	return &cp, nil
}

func (r *MemGlobals) List(_ context.Context, p models.PageRequest) ([]models.GlobalSetting, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []models.GlobalSetting
	for _, g := range r.s.globals {
		if g.DeletedAt == nil {
			rows = append(rows, *g)
		}
	}
	out, total := paginate(rows, func(a, b models.GlobalSetting) bool { return a.Key < b.Key }, p)
	return out, total, nil
}

func (r *MemGlobals) UpdateValue(_ context.Context, key string, value *string) (*models.GlobalSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.live(key)
	if !ok {
		return nil, apperr.NotFound("Global setting not found")
	}
	g.Value = value
	g.LastModifiedDate = r.s.now()
	cp := *g
	return &cp, nil
}

func (r *MemGlobals) SoftDeleteByKey(_ context.Context, key string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.live(key)
	if !ok {
		return false, nil
	}
	now := r.s.now()
	g.DeletedAt = &now
	return true, nil
}
