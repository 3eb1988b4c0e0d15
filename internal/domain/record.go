package domain

import (
	"errors"
	"time"
)

var (
	// ErrSelfTransfer indicates that the source and destination accounts are the same.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")
	// ErrUnknownDestination indicates that the transfer destination does not exist.
	ErrUnknownDestination = errors.New("unknown destination account")
)

// Transaction kinds as persisted in the transactions table.
const (
	KindDeposit     = "deposit"
	KindWithdraw    = "withdraw"
	KindTransferOut = "transfer_out"
	KindTransferIn  = "transfer_in"
)

// TransactionRecord is an immutable history entry for a single account.
//
// Transfer records come in pairs: the transfer_out record on the source and
// the transfer_in record on the destination share one OperationID and refer
// to each other through RelatedUsername.
type TransactionRecord struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Kind            string    `json:"kind"`
	RelatedUsername string    `json:"related_username,omitempty"`
	OperationID     string    `json:"operation_id"`
	Amount          string    `json:"amount"` // always positive
	CreatedAt       time.Time `json:"created_at"`
}

// TransferResult is the outcome of a completed transfer.
type TransferResult struct {
	FromAccount Account           `json:"from_account"`
	ToAccount   Account           `json:"to_account"`
	OutRecord   TransactionRecord `json:"out_record"`
	InRecord    TransactionRecord `json:"in_record"`
}
