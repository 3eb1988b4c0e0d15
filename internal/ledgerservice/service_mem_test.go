package ledgerservice

// Engine tests against the in-memory stores: end-to-end scenarios and the
// concurrency properties the mocks cannot exercise.

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/instapay/ledger/internal/accountrepo"
	"github.com/instapay/ledger/internal/domain"
	"github.com/instapay/ledger/internal/eventpub"
	"github.com/instapay/ledger/internal/recordrepo"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []eventpub.TransactionCompleted
}

func (p *capturePublisher) Publish(ctx context.Context, event eventpub.TransactionCompleted) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func newMemService(t *testing.T) (*Service, *capturePublisher) {
	t.Helper()

	publisher := &capturePublisher{}
	service := New(accountrepo.NewRepoMem(), recordrepo.NewRepoMem(), publisher)

	return service, publisher
}

func createTestAccount(t *testing.T, s *Service, username string) domain.Account {
	t.Helper()

	account, err := s.CreateAccount(context.Background(), username, "credential-ref")
	require.NoError(t, err)
	require.Equal(t, "0", account.Balance)

	return account
}

func TestDepositAndWithdrawRoundTrip(t *testing.T) {
	ctx := context.Background()
	service, publisher := newMemService(t)

	createTestAccount(t, service, "Alice")

	account, err := service.Deposit(ctx, "Alice", "100")
	require.NoError(t, err)
	require.Equal(t, "100", account.Balance)

	records, err := service.GetHistory(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, domain.KindDeposit, records[0].Kind)
	require.Equal(t, "100", records[0].Amount)

	account, err = service.Withdraw(ctx, "Alice", "100")
	require.NoError(t, err)
	require.Equal(t, "0", account.Balance)

	records, err = service.GetHistory(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, domain.KindDeposit, records[0].Kind)
	require.Equal(t, domain.KindWithdraw, records[1].Kind)

	require.Len(t, publisher.events, 2)
}

func TestWithdrawInsufficientBalanceHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	service, _ := newMemService(t)

	createTestAccount(t, service, "Alice")

	_, err := service.Deposit(ctx, "Alice", "100")
	require.NoError(t, err)

	_, err = service.Withdraw(ctx, "Alice", "150")
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())

	balance, err := service.GetBalance(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, "100", balance)

	records, err := service.GetHistory(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestTransferScenario(t *testing.T) {
	ctx := context.Background()
	service, _ := newMemService(t)

	createTestAccount(t, service, "Alice")
	createTestAccount(t, service, "Bob")

	_, err := service.Deposit(ctx, "Alice", "100")
	require.NoError(t, err)

	result, err := service.Transfer(ctx, "Alice", "40", "Bob")
	require.NoError(t, err)
	require.Equal(t, "60", result.FromAccount.Balance)
	require.Equal(t, "40", result.ToAccount.Balance)

	aliceRecords, err := service.GetHistory(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, aliceRecords, 2) // the deposit plus the transfer_out

	out := aliceRecords[1]
	require.Equal(t, domain.KindTransferOut, out.Kind)
	require.Equal(t, "Bob", out.RelatedUsername)
	require.Equal(t, "40", out.Amount)

	bobRecords, err := service.GetHistory(ctx, "Bob")
	require.NoError(t, err)
	require.Len(t, bobRecords, 1)

	in := bobRecords[0]
	require.Equal(t, domain.KindTransferIn, in.Kind)
	require.Equal(t, "Alice", in.RelatedUsername)
	require.Equal(t, "40", in.Amount)

	require.Equal(t, out.OperationID, in.OperationID)
}

func TestTransferUnknownDestinationHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	service, _ := newMemService(t)

	createTestAccount(t, service, "Alice")

	_, err := service.Deposit(ctx, "Alice", "100")
	require.NoError(t, err)

	_, err = service.Transfer(ctx, "Alice", "10", "Carol")
	require.EqualError(t, err, domain.ErrUnknownDestination.Error())

	balance, err := service.GetBalance(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, "100", balance)

	records, err := service.GetHistory(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestConcurrentDeposits(t *testing.T) {
	ctx := context.Background()
	service, _ := newMemService(t)

	createTestAccount(t, service, "Alice")

	const n = 50

	var wg sync.WaitGroup

	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := service.Deposit(ctx, "Alice", "1")
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	balance, err := service.GetBalance(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, "50", balance)

	records, err := service.GetHistory(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, records, n)
}

func TestConcurrentOppositeTransfers(t *testing.T) {
	ctx := context.Background()
	service, _ := newMemService(t)

	createTestAccount(t, service, "Alice")
	createTestAccount(t, service, "Bob")

	_, err := service.Deposit(ctx, "Alice", "500")
	require.NoError(t, err)
	_, err = service.Deposit(ctx, "Bob", "500")
	require.NoError(t, err)

	const n = 100

	var wg sync.WaitGroup

	errs := make(chan error, 2*n)

	// Opposite-direction transfers must not deadlock: locks are taken in
	// username order, not source-then-destination order.
	for i := 0; i < n; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()

			_, err := service.Transfer(ctx, "Alice", "1", "Bob")
			errs <- err
		}()
		go func() {
			defer wg.Done()

			_, err := service.Transfer(ctx, "Bob", "1", "Alice")
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	aliceBalance, err := service.GetBalance(ctx, "Alice")
	require.NoError(t, err)
	bobBalance, err := service.GetBalance(ctx, "Bob")
	require.NoError(t, err)

	// Every transfer conserves the total of the two balances.
	alice, err := decimal.NewFromString(aliceBalance)
	require.NoError(t, err)
	bob, err := decimal.NewFromString(bobBalance)
	require.NoError(t, err)
	require.True(t, alice.Add(bob).Equal(decimal.NewFromInt(1000)))

	require.True(t, alice.GreaterThanOrEqual(decimal.Zero))
	require.True(t, bob.GreaterThanOrEqual(decimal.Zero))
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	service, _ := newMemService(t)

	createTestAccount(t, service, "Alice")

	_, err := service.Deposit(ctx, "Alice", "10")
	require.NoError(t, err)

	const n = 30

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := service.Withdraw(ctx, "Alice", "1"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	require.Equal(t, 10, succeeded)

	balance, err := service.GetBalance(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, "0", balance)
}

func TestLockWaitBudgetExpiry(t *testing.T) {
	ctx := context.Background()
	service, _ := newMemService(t)
	service.WithLockWaitBudget(50 * time.Millisecond)

	createTestAccount(t, service, "Alice")

	// Hold Alice's lock so the deposit cannot acquire it.
	ch := service.lockFor("Alice")
	ch <- struct{}{}

	defer func() { <-ch }()

	_, err := service.Deposit(ctx, "Alice", "1")
	require.EqualError(t, err, domain.ErrTooBusy.Error())

	balance, err := service.GetBalance(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, "0", balance)
}
