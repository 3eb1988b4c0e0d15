// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/instapay/ledger/internal/domain"
	"github.com/instapay/ledger/pkg/dbpkg"
	"github.com/instapay/ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (username, credential_ref, balance)
VALUES
    ($1, $2, $3)
RETURNING username, credential_ref, balance, created_at
`

// Create creates the account with a zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, username, credentialRef string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, username, credentialRef, "0")

	var a domain.Account

	err := row.Scan(
		&a.Username,
		&a.CredentialRef,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Str("username", username).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_pkey" {
				return a, domain.ErrUsernameAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	username, credential_ref, balance, created_at
FROM accounts
WHERE username = $1
`

// Get returns the account with the given username.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, username)

	var a domain.Account

	err := row.Scan(
		&a.Username,
		&a.CredentialRef,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Str("username", username).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const adjustBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE username = $2
RETURNING username, credential_ref, balance, created_at
`

// AdjustBalance applies the signed delta to the account's balance and returns
// the changed account.
//
// The accounts_balance_check constraint enforces the non-negative invariant
// whether or not checkBalance is set; the flag states the caller's intent, so
// a credit that trips the constraint is still reported as a storage fault by
// the engine rather than as insufficient funds.
func (r *RepoPGS) AdjustBalance(ctx context.Context, username, delta string, checkBalance bool) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, adjustBalanceQuery, delta, username)

	var a domain.Account

	err := row.Scan(
		&a.Username,
		&a.CredentialRef,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		l.Error().Err(err).Str("username", username).Str("delta", delta).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const readBalanceQuery = `
SELECT balance FROM accounts
WHERE username = $1
`

// ReadBalance returns the committed balance of the account.
func (r *RepoPGS) ReadBalance(ctx context.Context, username string) (string, error) {
	l := zerolog.Ctx(ctx)

	var balance string

	err := r.db.QueryRowContext(ctx, readBalanceQuery, username).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", domain.ErrAccountNotFound
		}

		l.Error().Err(err).Str("username", username).Send()

		return "", errorspkg.ErrInternal
	}

	return balance, nil
}

const existsQuery = `
SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)
`

// Exists reports whether an account with the given username is registered.
func (r *RepoPGS) Exists(ctx context.Context, username string) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool

	err := r.db.QueryRowContext(ctx, existsQuery, username).Scan(&exists)
	if err != nil {
		l.Error().Err(err).Str("username", username).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}
