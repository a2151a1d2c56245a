package leads

import (
	"context"
	"sync"
)

// Repository is the narrow contract the upsert algorithm needs. The row index
// returned by FindByPhone identifies the matched position for positional
// stores (the spreadsheet); indexed stores may ignore it and key on Phone.
type Repository interface {
	// FindByPhone returns the first row matching phone in scan order, or
	// ErrLeadNotFound. If duplicate rows exist, later ones are never touched.
	FindByPhone(ctx context.Context, phone string) (*Lead, int, error)
	// Append adds a new row after all existing ones.
	Append(ctx context.Context, lead *Lead) error
	// Update rewrites the updated-at and last-message fields of the row at
	// the given position. Name, status and created-at are left untouched.
	Update(ctx context.Context, row int, lead *Lead) error
}

// InMemoryRepository keeps leads in a slice, preserving append order so that
// first-match-wins scans behave like the spreadsheet store. Used in tests.
type InMemoryRepository struct {
	mu   sync.Mutex
	rows []Lead
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// FindByPhone scans rows in insertion order.
func (r *InMemoryRepository) FindByPhone(ctx context.Context, phone string) (*Lead, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Phone == phone {
			lead := r.rows[i]
			return &lead, i, nil
		}
	}
	return nil, 0, ErrLeadNotFound
}

// Append adds a row at the end.
func (r *InMemoryRepository) Append(ctx context.Context, lead *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *lead)
	return nil
}

// Update rewrites only the mutable fields of the row at the given index.
func (r *InMemoryRepository) Update(ctx context.Context, row int, lead *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row < 0 || row >= len(r.rows) {
		return ErrLeadNotFound
	}
	r.rows[row].UpdatedAt = lead.UpdatedAt
	r.rows[row].LastMessage = lead.LastMessage
	return nil
}

// All returns a copy of every stored row, in order.
func (r *InMemoryRepository) All() []Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Lead, len(r.rows))
	copy(out, r.rows)
	return out
}

// Seed replaces the stored rows. Test helper.
func (r *InMemoryRepository) Seed(rows []Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append([]Lead(nil), rows...)
}
