package accountrepo

import (
	"context"
	"sync"
	"time"

	"github.com/instapay/ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// RepoMem is an in-memory account store with the same behavior as RepoPGS.
// It is the default store when no database is configured and backs most tests.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[string]*memAccount
}

type memAccount struct {
	credentialRef string
	balance       decimal.Decimal
	createdAt     time.Time
}

// NewRepoMem returns an empty in-memory account store.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[string]*memAccount),
	}
}

func (r *RepoMem) snapshot(username string, a *memAccount) domain.Account {
	return domain.Account{
		Username:      username,
		CredentialRef: a.credentialRef,
		Balance:       a.balance.String(),
		CreatedAt:     a.createdAt,
	}
}

// Create creates the account with a zero balance and then returns it.
func (r *RepoMem) Create(ctx context.Context, username, credentialRef string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[username]; ok {
		return domain.Account{}, domain.ErrUsernameAlreadyExists
	}

	a := &memAccount{
		credentialRef: credentialRef,
		balance:       decimal.Zero,
		createdAt:     time.Now().UTC(),
	}
	r.accounts[username] = a

	return r.snapshot(username, a), nil
}

// Get returns the account with the given username.
func (r *RepoMem) Get(ctx context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[username]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return r.snapshot(username, a), nil
}

// AdjustBalance applies the signed delta to the account's balance and returns
// the changed account. The store never lets a balance go negative, mirroring
// the database check constraint.
func (r *RepoMem) AdjustBalance(ctx context.Context, username, delta string, checkBalance bool) (domain.Account, error) {
	deltaDecimal, err := decimal.NewFromString(delta)
	if err != nil {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[username]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	newBalance := a.balance.Add(deltaDecimal)
	if newBalance.IsNegative() {
		return domain.Account{}, domain.ErrInsufficientBalance
	}

	a.balance = newBalance

	return r.snapshot(username, a), nil
}

// ReadBalance returns the committed balance of the account.
func (r *RepoMem) ReadBalance(ctx context.Context, username string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[username]
	if !ok {
		return "", domain.ErrAccountNotFound
	}

	return a.balance.String(), nil
}

// Exists reports whether an account with the given username is registered.
func (r *RepoMem) Exists(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[username]

	return ok, nil
}
