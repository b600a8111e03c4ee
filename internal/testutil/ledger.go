package testutil

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"assay-backend/internal/apperr"
	"assay-backend/internal/ledger"
	"assay-backend/internal/models"
)

// MemCreditHistory implements ledger.Store with one mutex per customer,
// standing in for SELECT ... FOR UPDATE. Writes are buffered and applied
// on commit so a failed transaction leaves nothing behind.
type MemCreditHistory struct{ s *MemoryStore }

var _ ledger.Store = (*MemCreditHistory)(nil)

func (s *MemoryStore) customerLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

type memTx struct {
	s        *MemoryStore
	held     []*sync.Mutex
	inserts  []models.CreditHistory
	balances map[string]decimal.Decimal
}

func (t *memTx) LockCustomerBalance(_ context.Context, customerID string) (decimal.Decimal, error) {
	l := t.s.customerLock(customerID)
	l.Lock()
	t.held = append(t.held, l)

	if b, ok := t.balances[customerID]; ok {
		return b, nil
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	c, ok := t.s.liveCustomer(customerID)
	if !ok {
		return decimal.Decimal{}, apperr.NotFound("Customer not found")
	}
	return c.Balance, nil
}

func (t *memTx) InsertEntry(_ context.Context, entry *models.CreditHistory) error {
	if t.s.FailInsert != nil {
		return t.s.FailInsert
	}
	t.inserts = append(t.inserts, *entry)
	return nil
}

func (t *memTx) UpdateCustomerBalance(_ context.Context, customerID string, balance decimal.Decimal) error {
	if t.s.FailUpdate != nil {
		return t.s.FailUpdate
	}
	t.balances[customerID] = balance
	return nil
}

func (r *MemCreditHistory) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	tx := &memTx{s: r.s, balances: make(map[string]decimal.Decimal)}
	defer func() {
		for i := len(tx.held) - 1; i >= 0; i-- {
			tx.held[i].Unlock()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if r.s.FailCommit != nil {
		return r.s.FailCommit
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range tx.inserts {
		e := tx.inserts[i]
		now := r.s.now()
		e.CreatedDate, e.LastModifiedDate = now, now
		r.s.entries[e.ID] = &e
	}
	for id, b := range tx.balances {
		if c, ok := r.s.customers[id]; ok {
			c.Balance = b
			c.LastModifiedDate = r.s.now()
		}
	}
	return nil
}

func (r *MemCreditHistory) List(_ context.Context, customerID string, p models.PageRequest) ([]models.CreditHistory, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []models.CreditHistory
	for _, e := range r.s.entries {
		if e.DeletedAt == nil && (customerID == "" || e.CustomerID == customerID) {
			rows = append(rows, *e)
		}
	}
	out, total := paginate(rows, func(a, b models.CreditHistory) bool {
		return newestFirst(a.CreatedDate, b.CreatedDate, a.ID, b.ID)
	}, p)
	return out, total, nil
}

func (r *MemCreditHistory) Get(_ context.Context, id string) (*models.CreditHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok || e.DeletedAt != nil {
		return nil, apperr.NotFound("Credit history not found")
	}
	cp := *e
	return &cp, nil
}

func (r *MemCreditHistory) SoftDelete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok || e.DeletedAt != nil {
		return false, nil
	}
	now := r.s.now()
	e.DeletedAt = &now
	return true, nil
}

// All returns every stored entry for a customer, deleted or not, oldest first.
func (r *MemCreditHistory) All(customerID string) []models.CreditHistory {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []models.CreditHistory
	for _, e := range r.s.entries {
		if e.CustomerID == customerID {
			rows = append(rows, *e)
		}
	}
	out, _ := paginate(rows, func(a, b models.CreditHistory) bool {
		return a.CreatedDate.Before(b.CreatedDate)
	}, models.PageRequest{Page: 1, Limit: len(rows) + 1})
	return out
}
