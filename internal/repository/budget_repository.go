package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ozodbekov/cashbot/internal/models"
)

type BudgetRepository struct {
	db DBTX
}

func NewBudgetRepository(db DBTX) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert перезаписывает лимит по (user, category)
func (r *BudgetRepository) Upsert(ctx context.Context, userID string, category string, amount int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category, amount)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, category)
		 DO UPDATE SET amount = EXCLUDED.amount, updated_at = CURRENT_TIMESTAMP`,
		userID, category, amount)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}

// Get возвращает (nil, nil), если лимит не настроен
func (r *BudgetRepository) Get(ctx context.Context, userID string, category string) (*models.Budget, error) {
	budget := &models.Budget{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, category, amount, created_at, updated_at
		 FROM budgets
		 WHERE user_id = $1 AND lower(category) = lower($2)`,
		userID, category).Scan(&budget.UserID, &budget.Category, &budget.Amount,
		&budget.CreatedAt, &budget.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}
