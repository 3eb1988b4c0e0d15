// Package ledgerservice implements the ledger engine: it is the only writer to
// account balances and the transaction log, and it enforces the non-negativity
// and transfer atomicity invariants under concurrent access.
package ledgerservice

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/instapay/ledger/internal/domain"
	"github.com/instapay/ledger/internal/eventpub"
	"github.com/instapay/ledger/pkg/errorspkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultLockWaitBudget = 3 * time.Second
	defaultAppendRetry    = 2
)

// AccountRepo provides the account store interface needed by the engine.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type AccountRepo interface {
	Create(ctx context.Context, username, credentialRef string) (domain.Account, error)
	Get(ctx context.Context, username string) (domain.Account, error)
	AdjustBalance(ctx context.Context, username, delta string, checkBalance bool) (domain.Account, error)
	ReadBalance(ctx context.Context, username string) (string, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// RecordRepo provides the append-only transaction log interface needed by the engine.
type RecordRepo interface {
	Append(ctx context.Context, arg domain.TransactionRecord) (domain.TransactionRecord, error)
	AppendTransferPair(ctx context.Context, out, in domain.TransactionRecord) (domain.TransactionRecord, domain.TransactionRecord, error)
	ListForUsername(ctx context.Context, username string) ([]domain.TransactionRecord, error)
}

// Service facilitates ledger engine logic.
type Service struct {
	accounts AccountRepo
	records  RecordRepo
	events   eventpub.Publisher

	lockWaitBudget time.Duration
	appendRetry    int

	mu    sync.Mutex
	locks map[string]chan struct{}
}

// New returns a ledger engine over the given stores.
func New(ar AccountRepo, rr RecordRepo, ep eventpub.Publisher) *Service {
	return &Service{
		accounts:       ar,
		records:        rr,
		events:         ep,
		lockWaitBudget: defaultLockWaitBudget,
		appendRetry:    defaultAppendRetry,
		locks:          make(map[string]chan struct{}),
	}
}

// WithLockWaitBudget bounds how long an operation may wait for account
// exclusivity before reporting domain.ErrTooBusy.
func (s *Service) WithLockWaitBudget(d time.Duration) *Service {
	if d > 0 {
		s.lockWaitBudget = d
	}

	return s
}

// WithAppendRetry sets how many times a failed log append is retried under the
// exclusive hold before the balance mutation is reversed.
func (s *Service) WithAppendRetry(n int) *Service {
	if n >= 0 {
		s.appendRetry = n
	}

	return s
}

// lockFor returns the semaphore channel guarding the account's balance.
func (s *Service) lockFor(username string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.locks[username]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[username] = ch
	}

	return ch
}

// acquire takes the per-account lock, waiting at most the lock wait budget.
func (s *Service) acquire(ctx context.Context, username string) (func(), error) {
	ch := s.lockFor(username)

	timer := time.NewTimer(s.lockWaitBudget)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, domain.ErrTooBusy
	}
}

// acquireBoth takes both account locks in lexicographic username order so
// opposite-direction transfers cannot deadlock each other.
func (s *Service) acquireBoth(ctx context.Context, username1, username2 string) (func(), error) {
	ordered := []string{username1, username2}
	sort.Strings(ordered)

	release1, err := s.acquire(ctx, ordered[0])
	if err != nil {
		return nil, err
	}

	release2, err := s.acquire(ctx, ordered[1])
	if err != nil {
		release1()
		return nil, err
	}

	return func() {
		release2()
		release1()
	}, nil
}

// parseAmount validates that the amount is a positive decimal number.
func parseAmount(amount string) (decimal.Decimal, error) {
	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	return amountDecimal, nil
}

// CreateAccount registers a new account with a zero balance. The credential
// reference is stored as-is on behalf of the authentication layer.
func (s *Service) CreateAccount(ctx context.Context, username, credentialRef string) (domain.Account, error) {
	return s.accounts.Create(ctx, username, credentialRef)
}

// appendWithRetry appends the record, retrying transient failures under the
// exclusive hold. The caller still owns the account lock while this runs.
func (s *Service) appendWithRetry(ctx context.Context, arg domain.TransactionRecord) (domain.TransactionRecord, error) {
	var (
		rec domain.TransactionRecord
		err error
	)

	for attempt := 0; attempt <= s.appendRetry; attempt++ {
		rec, err = s.records.Append(ctx, arg)
		if err == nil {
			return rec, nil
		}
	}

	return rec, err
}

func (s *Service) publish(ctx context.Context, event eventpub.TransactionCompleted) {
	if err := s.events.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("operation_id", event.OperationID).
			Str("kind", event.Kind).
			Msg("event publish failed")
	}
}

// Deposit credits the account and appends a deposit record, returning the
// account with its new balance.
func (s *Service) Deposit(ctx context.Context, username, amount string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(amount)
	if err != nil {
		return domain.Account{}, err
	}

	release, err := s.acquire(ctx, username)
	if err != nil {
		return domain.Account{}, err
	}
	defer release()

	account, err := s.accounts.AdjustBalance(ctx, username, amountDecimal.String(), false)
	if err != nil {
		return domain.Account{}, err
	}

	opID := uuid.NewString()

	rec, err := s.appendWithRetry(ctx, domain.TransactionRecord{
		Username:    username,
		Kind:        domain.KindDeposit,
		OperationID: opID,
		Amount:      amountDecimal.String(),
	})
	if err != nil {
		// The credit committed but no record can be written. Reverse the
		// credit under the same hold so balance and history stay consistent.
		if _, revErr := s.accounts.AdjustBalance(ctx, username, amountDecimal.Neg().String(), true); revErr != nil {
			l.Error().Err(revErr).
				Str("op", "deposit").
				Str("username", username).
				Str("amount", amount).
				Msg("deposit reversal failed, balance and history diverged")
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	s.publish(ctx, eventpub.TransactionCompleted{
		OperationID: opID,
		Kind:        domain.KindDeposit,
		Username:    username,
		Amount:      amountDecimal.String(),
		OccurredAt:  rec.CreatedAt,
	})

	return account, nil
}

// Withdraw debits the account and appends a withdraw record, returning the
// account with its new balance. Debits never take the balance below zero.
func (s *Service) Withdraw(ctx context.Context, username, amount string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(amount)
	if err != nil {
		return domain.Account{}, err
	}

	release, err := s.acquire(ctx, username)
	if err != nil {
		return domain.Account{}, err
	}
	defer release()

	account, err := s.debit(ctx, username, amountDecimal)
	if err != nil {
		return domain.Account{}, err
	}

	opID := uuid.NewString()

	rec, err := s.appendWithRetry(ctx, domain.TransactionRecord{
		Username:    username,
		Kind:        domain.KindWithdraw,
		OperationID: opID,
		Amount:      amountDecimal.String(),
	})
	if err != nil {
		if _, revErr := s.accounts.AdjustBalance(ctx, username, amountDecimal.String(), false); revErr != nil {
			l.Error().Err(revErr).
				Str("op", "withdraw").
				Str("username", username).
				Str("amount", amount).
				Msg("withdraw reversal failed, balance and history diverged")
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	s.publish(ctx, eventpub.TransactionCompleted{
		OperationID: opID,
		Kind:        domain.KindWithdraw,
		Username:    username,
		Amount:      amountDecimal.String(),
		OccurredAt:  rec.CreatedAt,
	})

	return account, nil
}

// debit is the internal debit-without-record step shared by Withdraw and
// Transfer. It must only run while the caller holds the account's lock.
// Transfer relies on it appending nothing to the log: a transfer shows up in
// history as a correlated transfer pair, never as a plain withdrawal.
func (s *Service) debit(ctx context.Context, username string, amount decimal.Decimal) (domain.Account, error) {
	return s.accounts.AdjustBalance(ctx, username, amount.Neg().String(), true)
}

// Transfer atomically moves the amount from the source to the destination
// account and appends the correlated transfer_out/transfer_in record pair.
//
// If the credit fails after the debit committed, the debit is reversed before
// the fault is reported; money is never withdrawn without being delivered or
// returned.
func (s *Service) Transfer(ctx context.Context, fromUsername, amount, toUsername string) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(amount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	if fromUsername == toUsername {
		return domain.TransferResult{}, domain.ErrSelfTransfer
	}

	exists, err := s.accounts.Exists(ctx, toUsername)
	if err != nil {
		return domain.TransferResult{}, err
	}

	if !exists {
		return domain.TransferResult{}, domain.ErrUnknownDestination
	}

	release, err := s.acquireBoth(ctx, fromUsername, toUsername)
	if err != nil {
		return domain.TransferResult{}, err
	}
	defer release()

	fromAccount, err := s.debit(ctx, fromUsername, amountDecimal)
	if err != nil {
		return domain.TransferResult{}, err
	}

	toAccount, err := s.accounts.AdjustBalance(ctx, toUsername, amountDecimal.String(), false)
	if err != nil {
		l.Error().Err(err).
			Str("op", "transfer").
			Str("from", fromUsername).
			Str("to", toUsername).
			Str("amount", amount).
			Msg("credit failed, reversing debit")

		if _, revErr := s.accounts.AdjustBalance(ctx, fromUsername, amountDecimal.String(), false); revErr != nil {
			l.Error().Err(revErr).
				Str("op", "transfer").
				Str("from", fromUsername).
				Str("amount", amount).
				Msg("debit reversal failed, source balance lost funds")
		}

		return domain.TransferResult{}, errorspkg.ErrInternal
	}

	opID := uuid.NewString()

	out := domain.TransactionRecord{
		Username:        fromUsername,
		Kind:            domain.KindTransferOut,
		RelatedUsername: toUsername,
		OperationID:     opID,
		Amount:          amountDecimal.String(),
	}
	in := domain.TransactionRecord{
		Username:        toUsername,
		Kind:            domain.KindTransferIn,
		RelatedUsername: fromUsername,
		OperationID:     opID,
		Amount:          amountDecimal.String(),
	}

	outRec, inRec, err := s.appendTransferPairWithRetry(ctx, out, in)
	if err != nil {
		// Both balance moves committed but the record pair cannot be written.
		// Unwind the whole transfer under the exclusive hold.
		if _, revErr := s.accounts.AdjustBalance(ctx, toUsername, amountDecimal.Neg().String(), true); revErr != nil {
			l.Error().Err(revErr).
				Str("op", "transfer").
				Str("to", toUsername).
				Str("amount", amount).
				Msg("credit reversal failed, balance and history diverged")
		} else if _, revErr := s.accounts.AdjustBalance(ctx, fromUsername, amountDecimal.String(), false); revErr != nil {
			l.Error().Err(revErr).
				Str("op", "transfer").
				Str("from", fromUsername).
				Str("amount", amount).
				Msg("debit reversal failed, balance and history diverged")
		}

		return domain.TransferResult{}, errorspkg.ErrInternal
	}

	s.publish(ctx, eventpub.TransactionCompleted{
		OperationID:     opID,
		Kind:            domain.KindTransferOut,
		Username:        fromUsername,
		RelatedUsername: toUsername,
		Amount:          amountDecimal.String(),
		OccurredAt:      outRec.CreatedAt,
	})

	return domain.TransferResult{
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		OutRecord:   outRec,
		InRecord:    inRec,
	}, nil
}

func (s *Service) appendTransferPairWithRetry(ctx context.Context, out, in domain.TransactionRecord) (domain.TransactionRecord, domain.TransactionRecord, error) {
	var (
		outRec, inRec domain.TransactionRecord
		err           error
	)

	for attempt := 0; attempt <= s.appendRetry; attempt++ {
		outRec, inRec, err = s.records.AppendTransferPair(ctx, out, in)
		if err == nil {
			return outRec, inRec, nil
		}
	}

	return outRec, inRec, err
}

// GetBalance returns the account's current committed balance.
func (s *Service) GetBalance(ctx context.Context, username string) (string, error) {
	return s.accounts.ReadBalance(ctx, username)
}

// GetHistory returns the account's transaction records in append order.
func (s *Service) GetHistory(ctx context.Context, username string) ([]domain.TransactionRecord, error) {
	exists, err := s.accounts.Exists(ctx, username)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrAccountNotFound
	}

	return s.records.ListForUsername(ctx, username)
}
