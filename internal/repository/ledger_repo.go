package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mystick682/ExTremeData/internal/domain"
)

// LedgerRepository guards and mutates wallet balances. Balance must be a
// fresh read per request; SettleDebit must apply the decrement and its
// precondition (balance >= amount) atomically so concurrent spends can never
// drive a balance negative.
type LedgerRepository interface {
	Balance(ctx context.Context, userID string) (float64, error)
	SettleDebit(ctx context.Context, userID string, amount float64, record *domain.TransactionRecord) (float64, error)
}

type ledgerRepo struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Balance(ctx context.Context, userID string) (float64, error) {
	query := `SELECT balance FROM user_profiles WHERE id = $1`

	var balance float64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}

	return balance, nil
}

// SettleDebit decrements the balance and appends the success journal record
// in one database transaction. The conditional UPDATE is the concurrency
// guard: if another request drained the balance between the pre-check and
// this commit, no row matches and ErrInsufficientBalance is returned with
// nothing written.
func (r *ledgerRepo) SettleDebit(ctx context.Context, userID string, amount float64, record *domain.TransactionRecord) (float64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE user_profiles
		SET balance = balance - $1
		WHERE id = $2 AND balance >= $1
		RETURNING balance
	`

	var newBalance float64
	if err := tx.QueryRow(ctx, query, amount, userID).Scan(&newBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientBalance
		}
		return 0, fmt.Errorf("failed to debit balance: %w", err)
	}

	if err := insertRecord(ctx, tx, record); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit settlement: %w", err)
	}

	return newBalance, nil
}
