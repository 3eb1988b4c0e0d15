// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameAlreadyExists indicates that the username is already registered.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount indicates that the amount is not a positive number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrTooBusy indicates that the account lock could not be acquired within the wait budget.
	ErrTooBusy = errors.New("account is busy, try again")
)

// Account holds the balance for a single user.
//
// Balance is carried as a decimal string; the credential reference is opaque
// to the ledger and is only stored on behalf of the authentication layer.
type Account struct {
	Username      string    `json:"username"`
	CredentialRef string    `json:"-"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
}
