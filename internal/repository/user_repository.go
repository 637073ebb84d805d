package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureUser создает пользователя с нулевым балансом, если его еще нет
func (r *UserRepository) EnsureUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (user_id, balance) VALUES ($1, 0)
		 ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}

// AddToBalance атомарно изменяет баланс и возвращает новое значение
func (r *UserRepository) AddToBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE users
		 SET balance = balance + $2, updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = $1
		 RETURNING balance`, userID, delta).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}
	return balance, nil
}

// GetBalance возвращает 0 для неизвестного пользователя
func (r *UserRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM users WHERE user_id = $1`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func (r *UserRepository) ResetAllBalances(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET balance = 0, updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to reset balances: %w", err)
	}
	return nil
}
