package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/Mystick682/ExTremeData/internal/domain"
)

// TransactionRepository appends to the immutable spend journal. There are no
// update or delete operations on transactions anywhere in this service.
type TransactionRepository interface {
	Append(ctx context.Context, record *domain.TransactionRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.TransactionRecord, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Append(ctx context.Context, record *domain.TransactionRecord) error {
	return insertRecord(ctx, r.db, record)
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.TransactionRecord, error) {
	query := `
		SELECT id, user_id, service_type, description, amount, status,
		       reference_id, provider_reference, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var rec domain.TransactionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.ServiceType,
			&rec.Description,
			&rec.Amount,
			&rec.Status,
			&rec.Reference,
			&rec.ProviderReference,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// pgxQuerier lets insertRecord run against the pool or inside a settlement
// transaction.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertRecord(ctx context.Context, db pgxQuerier, record *domain.TransactionRecord) error {
	if record.ID == "" {
		record.ID = ulid.Make().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO transactions (
			id, user_id, service_type, description, amount, status,
			reference_id, provider_reference, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := db.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.ServiceType,
		record.Description,
		record.Amount,
		record.Status,
		record.Reference,
		record.ProviderReference,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	return nil
}
