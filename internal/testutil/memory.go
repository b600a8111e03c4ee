// Package testutil provides in-memory stores that mirror the PostgreSQL
// repositories closely enough for service, ledger and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
)

// MemoryStore holds every table. Use the accessor methods to get a
// repository for one entity.
type MemoryStore struct {
	mu    sync.Mutex
	tick  int64
	epoch time.Time

	customers    map[string]*models.Customer
	entries      map[string]*models.CreditHistory
	certificates map[string]*models.Certificate
	goldTests    map[string]*models.GoldTest
	weightLoss   map[string]*models.WeightLoss
	globals      map[string]*models.GlobalSetting

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	// Failure injection for ledger transactions.
	FailInsert error
	FailUpdate error
	FailCommit error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		epoch:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		customers:    make(map[string]*models.Customer),
		entries:      make(map[string]*models.CreditHistory),
		certificates: make(map[string]*models.Certificate),
		goldTests:    make(map[string]*models.GoldTest),
		weightLoss:   make(map[string]*models.WeightLoss),
		globals:      make(map[string]*models.GlobalSetting),
		locks:        make(map[string]*sync.Mutex),
	}
}

// now returns a strictly increasing timestamp. Callers hold s.mu.
func (s *MemoryStore) now() time.Time {
	s.tick++
	return s.epoch.Add(time.Duration(s.tick) * time.Millisecond)
}

func (s *MemoryStore) Customers() *MemCustomers         { return &MemCustomers{s} }
func (s *MemoryStore) CreditHistory() *MemCreditHistory { return &MemCreditHistory{s} }
func (s *MemoryStore) Certificates() *MemCertificates   { return &MemCertificates{s} }
func (s *MemoryStore) GoldTests() *MemGoldTests         { return &MemGoldTests{s} }
func (s *MemoryStore) WeightLoss() *MemWeightLoss       { return &MemWeightLoss{s} }
func (s *MemoryStore) Globals() *MemGlobals             { return &MemGlobals{s} }

// paginate sorts rows with less and returns the requested window.
func paginate[T any](rows []T, less func(a, b T) bool, p models.PageRequest) ([]T, int64) {
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	total := int64(len(rows))
	start := p.Offset()
	if start >= len(rows) {
		return []T{}, total
	}
	end := start + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total
}

func newestFirst(a, b time.Time, aID, bID string) bool {
	if a.Equal(b) {
		return aID > bID
	}
	return a.After(b)
}

func (s *MemoryStore) liveCustomer(id string) (*models.Customer, bool) {
	c, ok := s.customers[id]
	if !ok || c.DeletedAt != nil {
		return nil, false
	}
	return c, true
}

// ---- customers ----

type MemCustomers struct{ s *MemoryStore }

func (r *MemCustomers) Create(_ context.Context, c *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c.Phone != nil {
		for _, other := range r.s.customers {
			if other.DeletedAt == nil && other.Phone != nil && *other.Phone == *c.Phone {
				return apperr.Conflict("Phone number already exists")
			}
		}
	}
	now := r.s.now()
	c.CreatedDate, c.LastModifiedDate = now, now
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *MemCustomers) Get(_ context.Context, id string) (*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.liveCustomer(id)
	if !ok {
		return nil, apperr.NotFound("Customer not found")
	}
	cp := *c
	return &cp, nil
}

func (r *MemCustomers) List(_ context.Context, p models.PageRequest) ([]models.Customer, int64, error) {
	return r.filter(func(*models.Customer) bool { return true }, func(a, b models.Customer) bool {
		return newestFirst(a.CreatedDate, b.CreatedDate, a.ID, b.ID)
	}, p)
}

func (r *MemCustomers) Search(_ context.Context, q string, p models.PageRequest) ([]models.Customer, int64, error) {
	q = strings.ToLower(q)
	return r.filter(func(c *models.Customer) bool {
		if strings.Contains(strings.ToLower(c.Name), q) {
			return true
		}
		return c.Phone != nil && strings.Contains(strings.ToLower(*c.Phone), q)
	}, func(a, b models.Customer) bool { return a.Name < b.Name }, p)
}

func (r *MemCustomers) filter(keep func(*models.Customer) bool, less func(a, b models.Customer) bool, p models.PageRequest) ([]models.Customer, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []models.Customer
	for _, c := range r.s.customers {
		if c.DeletedAt == nil && keep(c) {
			rows = append(rows, *c)
		}
	}
	out, total := paginate(rows, less, p)
	return out, total, nil
}

func (r *MemCustomers) Update(_ context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.liveCustomer(id)
	if !ok {
		return nil, apperr.NotFound("Customer not found")
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if req.Disabled != nil {
		c.Disabled = *req.Disabled
	}
	c.LastModifiedDate = r.s.now()
	cp := *c
	return &cp, nil
}

func (r *MemCustomers) SoftDelete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.liveCustomer(id)
	if !ok {
		return false, nil
	}
	now := r.s.now()
	c.DeletedAt = &now
	return true, nil
}

func (r *MemCustomers) PhoneInUse(_ context.Context, phone, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.DeletedAt == nil && c.ID != excludeID && c.Phone != nil && *c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

// Raw returns a customer including soft-deleted rows.
func (r *MemCustomers) Raw(id string) (models.Customer, bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return models.Customer{}, false
	}
	return *c, true
}
