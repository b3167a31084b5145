package member

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/netandconnect/portal/pkg/sanitizer"
)

// MemoryRepository keeps members in process memory. Used in development
// when Airtable is not configured.
type MemoryRepository struct {
	mu            sync.RWMutex
	byID          map[string]*Member
	byEmail       map[string]string
	defaultTokens int
}

func NewMemoryRepository(defaultTokens int) *MemoryRepository {
	if defaultTokens <= 0 {
		defaultTokens = DefaultTokens
	}
	return &MemoryRepository{
		byID:          make(map[string]*Member),
		byEmail:       make(map[string]string),
		defaultTokens: defaultTokens,
	}
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*Member, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrMemberNotFound
	}
	m := *r.byID[id]
	return &m, nil
}

func (r *MemoryRepository) Create(_ context.Context, email, fullName string) (*Member, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if fullName == "" {
		fullName = sanitizer.EmailLocalPart(email)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byEmail[email]; ok {
		m := *r.byID[id]
		return &m, nil
	}

	m := &Member{
		ID:       "rec" + ulid.Make().String(),
		Email:    email,
		FullName: fullName,
		Tokens:   r.defaultTokens,
	}
	r.byID[m.ID] = m
	r.byEmail[email] = m.ID
	out := *m
	return &out, nil
}

func (r *MemoryRepository) UpdateTokens(_ context.Context, id string, tokens int) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	m.Tokens = tokens
	out := *m
	return &out, nil
}
