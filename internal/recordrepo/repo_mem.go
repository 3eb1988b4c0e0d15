package recordrepo

import (
	"context"
	"sync"
	"time"

	"github.com/instapay/ledger/internal/domain"
)

// RepoMem is an in-memory append-only transaction log.
type RepoMem struct {
	mu      sync.RWMutex
	nextID  int64
	records []domain.TransactionRecord
}

// NewRepoMem returns an empty in-memory transaction log.
func NewRepoMem() *RepoMem {
	return &RepoMem{}
}

func (r *RepoMem) append(arg domain.TransactionRecord) domain.TransactionRecord {
	r.nextID++
	arg.ID = r.nextID

	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now().UTC()
	}

	r.records = append(r.records, arg)

	return arg
}

// Append persists the record and returns it with its assigned id.
func (r *RepoMem) Append(ctx context.Context, arg domain.TransactionRecord) (domain.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.append(arg), nil
}

// AppendTransferPair persists both transfer records within a single critical
// section so no reader observes one without the other.
func (r *RepoMem) AppendTransferPair(ctx context.Context, out, in domain.TransactionRecord) (domain.TransactionRecord, domain.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.append(out), r.append(in), nil
}

// ListForUsername returns the account's records in append order.
func (r *RepoMem) ListForUsername(ctx context.Context, username string) ([]domain.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []domain.TransactionRecord{}

	for _, rec := range r.records {
		if rec.Username == username {
			items = append(items, rec)
		}
	}

	return items, nil
}
