package member

import (
	"context"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Migrations holds the goose migrations for the journal table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGJournal stores transactions in the token_transactions table.
type PGJournal struct {
	db DBTX
}

func NewPGJournal(db DBTX) *PGJournal {
	return &PGJournal{db: db}
}

const insertTransaction = `
INSERT INTO token_transactions
	(id, member_id, email, type, amount, previous_balance, new_balance, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (j *PGJournal) Record(ctx context.Context, tx Transaction) error {
	_, err := j.db.Exec(ctx, insertTransaction,
		tx.ID, tx.MemberID, tx.Email, string(tx.Type), tx.Amount,
		tx.PreviousBalance, tx.NewBalance, tx.Reason, tx.CreatedAt,
	)
	if err != nil {
		return errors.Join(ErrJournal, err)
	}
	return nil
}

const listTransactions = `
SELECT id, member_id, email, type, amount, previous_balance, new_balance, reason, created_at
FROM token_transactions
WHERE member_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (j *PGJournal) List(ctx context.Context, memberID string, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := j.db.Query(ctx, listTransactions, memberID, limit)
	if err != nil {
		return nil, errors.Join(ErrJournal, err)
	}

	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Transaction, error) {
		var tx Transaction
		var typ string
		err := row.Scan(&tx.ID, &tx.MemberID, &tx.Email, &typ, &tx.Amount,
			&tx.PreviousBalance, &tx.NewBalance, &tx.Reason, &tx.CreatedAt)
		tx.Type = TransactionType(typ)
		return tx, err
	})
	if err != nil {
		return nil, errors.Join(ErrJournal, err)
	}
	return txs, nil
}
