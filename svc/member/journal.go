package member

import (
	"context"
	"slices"
	"sync"
	"time"
)

// TransactionType says which way tokens moved.
type TransactionType string

const (
	TransactionSpend TransactionType = "spend"
	TransactionAdd   TransactionType = "add"
)

// Transaction is one balance change.
type Transaction struct {
	ID              string          `json:"id"`
	MemberID        string          `json:"member_id"`
	Email           string          `json:"email"`
	Type            TransactionType `json:"type"`
	Amount          int             `json:"amount"`
	PreviousBalance int             `json:"previousBalance"`
	NewBalance      int             `json:"newBalance"`
	Reason          string          `json:"reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Journal is an append-only history of transactions.
// List returns the newest entries first.
type Journal interface {
	Record(ctx context.Context, tx Transaction) error
	List(ctx context.Context, memberID string, limit int) ([]Transaction, error)
}

// MemoryJournal keeps the history in process memory.
type MemoryJournal struct {
	mu  sync.RWMutex
	txs []Transaction
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

func (j *MemoryJournal) Record(_ context.Context, tx Transaction) error {
	j.mu.Lock()
	j.txs = append(j.txs, tx)
	j.mu.Unlock()
	return nil
}

func (j *MemoryJournal) List(_ context.Context, memberID string, limit int) ([]Transaction, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []Transaction
	for _, tx := range slices.Backward(j.txs) {
		if tx.MemberID != memberID {
			continue
		}
		out = append(out, tx)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
