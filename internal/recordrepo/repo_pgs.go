// Package recordrepo manages repository layer of transaction records.
package recordrepo

import (
	"context"
	"database/sql"

	"github.com/instapay/ledger/internal/domain"
	"github.com/instapay/ledger/pkg/dbpkg"
	"github.com/instapay/ledger/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction record repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns record RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns record RepoPGS scoped to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const appendQuery = `
INSERT INTO
    transactions (username, kind, related_username, operation_id, amount)
VALUES
    ($1, $2, NULLIF($3, ''), $4, $5)
RETURNING id, username, kind, COALESCE(related_username, ''), operation_id, amount, created_at
`

// Append persists the record and returns it with its assigned id and timestamp.
func (r *RepoPGS) Append(ctx context.Context, arg domain.TransactionRecord) (domain.TransactionRecord, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, appendQuery,
		arg.Username,
		arg.Kind,
		arg.RelatedUsername,
		arg.OperationID,
		arg.Amount,
	)

	var rec domain.TransactionRecord

	err := row.Scan(
		&rec.ID,
		&rec.Username,
		&rec.Kind,
		&rec.RelatedUsername,
		&rec.OperationID,
		&rec.Amount,
		&rec.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).
			Str("username", arg.Username).
			Str("kind", arg.Kind).
			Str("amount", arg.Amount).
			Send()

		return rec, errorspkg.ErrInternal
	}

	return rec, nil
}

// AppendTransferPair persists the transfer_out and transfer_in records within
// a single database transaction so that both are committed or neither is.
func (r *RepoPGS) AppendTransferPair(ctx context.Context, out, in domain.TransactionRecord) (domain.TransactionRecord, domain.TransactionRecord, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransactionRecord{}, domain.TransactionRecord{}, errorspkg.ErrInternal
	}

	defer func() {
		_ = tx.Rollback()
	}()

	txRepo := NewTxRepoPGS(tx)

	outRec, err := txRepo.Append(ctx, out)
	if err != nil {
		return domain.TransactionRecord{}, domain.TransactionRecord{}, err
	}

	inRec, err := txRepo.Append(ctx, in)
	if err != nil {
		return domain.TransactionRecord{}, domain.TransactionRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransactionRecord{}, domain.TransactionRecord{}, errorspkg.ErrInternal
	}

	return outRec, inRec, nil
}

const listQuery = `
SELECT id, username, kind, COALESCE(related_username, ''), operation_id, amount, created_at
FROM transactions
WHERE username = $1
ORDER BY id
`

// ListForUsername returns the account's records in append order.
func (r *RepoPGS) ListForUsername(ctx context.Context, username string) ([]domain.TransactionRecord, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, username)
	if err != nil {
		l.Error().Err(err).Str("username", username).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.TransactionRecord{}

	for rows.Next() {
		var rec domain.TransactionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&rec.Kind,
			&rec.RelatedUsername,
			&rec.OperationID,
			&rec.Amount,
			&rec.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, rec)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
