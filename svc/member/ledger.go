package member

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/sanitizer"
)

// Ledger changes token balances. Concurrent Spend and Add calls for the same
// member are serialized within the process; the repository offers no
// compare-and-swap, so separate processes can still interleave.
type Ledger struct {
	repo    Repository
	journal Journal
	log     *slog.Logger
	now     func() time.Time
	locks   keyedMutex
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

func WithLedgerLogger(l *slog.Logger) LedgerOption {
	return func(lg *Ledger) {
		if l != nil {
			lg.log = l
		}
	}
}

func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(lg *Ledger) {
		if now != nil {
			lg.now = now
		}
	}
}

// NewLedger builds a ledger. A nil journal keeps history in memory.
func NewLedger(repo Repository, journal Journal, opts ...LedgerOption) *Ledger {
	if journal == nil {
		journal = NewMemoryJournal()
	}
	l := &Ledger{
		repo:    repo,
		journal: journal,
		log:     logger.Discard(),
		now:     time.Now,
		locks:   keyedMutex{m: make(map[string]*refMutex)},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Balance returns the current member record.
func (l *Ledger) Balance(ctx context.Context, email string) (*Member, error) {
	return l.repo.FindByEmail(ctx, email)
}

// Spend removes amount tokens. The balance never goes below zero.
func (l *Ledger) Spend(ctx context.Context, email string, amount int, reason string) (*Member, Transaction, error) {
	return l.apply(ctx, email, TransactionSpend, amount, reason)
}

// Add credits amount tokens.
func (l *Ledger) Add(ctx context.Context, email string, amount int, reason string) (*Member, Transaction, error) {
	return l.apply(ctx, email, TransactionAdd, amount, reason)
}

// History lists the member's latest transactions, newest first.
func (l *Ledger) History(ctx context.Context, memberID string, limit int) ([]Transaction, error) {
	return l.journal.List(ctx, memberID, limit)
}

func (l *Ledger) apply(ctx context.Context, email string, typ TransactionType, amount int, reason string) (*Member, Transaction, error) {
	if amount <= 0 {
		return nil, Transaction{}, ErrInvalidAmount
	}
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, Transaction{}, ErrInvalidEmail
	}

	unlock := l.locks.lock(email)
	defer unlock()

	current, err := l.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, Transaction{}, err
	}

	next := current.Tokens + amount
	if typ == TransactionSpend {
		if current.Tokens < amount {
			return current, Transaction{}, ErrInsufficientTokens
		}
		next = current.Tokens - amount
	}

	updated, err := l.repo.UpdateTokens(ctx, current.ID, next)
	if err != nil {
		return nil, Transaction{}, err
	}

	tx := Transaction{
		ID:              ulid.Make().String(),
		MemberID:        current.ID,
		Email:           email,
		Type:            typ,
		Amount:          amount,
		PreviousBalance: current.Tokens,
		NewBalance:      next,
		Reason:          reason,
		CreatedAt:       l.now().UTC(),
	}

	// The balance is already updated upstream, so journal failures are only logged.
	if err := l.journal.Record(ctx, tx); err != nil {
		l.log.ErrorContext(ctx, "failed to journal token transaction",
			logger.Error(err),
			logger.MemberID(current.ID),
			slog.String("transaction_id", tx.ID),
			slog.String("type", string(typ)),
			slog.Int("amount", amount),
		)
	}

	l.log.InfoContext(ctx, "token balance changed",
		logger.Event("tokens."+string(typ)),
		logger.MemberID(current.ID),
		slog.Int("amount", amount),
		slog.Int("previous_balance", current.Tokens),
		slog.Int("new_balance", next),
	)
	return updated, tx, nil
}

// keyedMutex hands out one mutex per key and forgets it once unused.
type keyedMutex struct {
	mu sync.Mutex
	m  map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	rm, ok := k.m[key]
	if !ok {
		rm = &refMutex{}
		k.m[key] = rm
	}
	rm.refs++
	k.mu.Unlock()

	rm.Lock()
	return func() {
		rm.Unlock()
		k.mu.Lock()
		rm.refs--
		if rm.refs == 0 {
			delete(k.m, key)
		}
		k.mu.Unlock()
	}
}
