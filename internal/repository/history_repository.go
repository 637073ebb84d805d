package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ozodbekov/cashbot/internal/models"
)

type HistoryRepository struct {
	db DBTX
}

func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, e *models.HistoryEntry) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO history (user_id, amount, comment, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.UserID, e.Amount, e.Comment, e.Category).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// CategorySpend - сумма |amount| по категории за текущий период.
// Сравнение категорий регистронезависимое.
func (r *HistoryRepository) CategorySpend(ctx context.Context, userID string, category string) (int64, error) {
	var spent int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(ABS(amount)), 0) FROM history
		 WHERE user_id = $1 AND lower(category) = lower($2)`,
		userID, category).Scan(&spent)
	if err != nil {
		return 0, fmt.Errorf("failed to sum category spend: %w", err)
	}
	return spent, nil
}

// Recent возвращает последние limit записей, новые первыми
func (r *HistoryRepository) Recent(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount, comment, category, created_at
		 FROM history WHERE user_id = $1
		 ORDER BY id DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

// AllForUser - все записи периода в порядке добавления
func (r *HistoryRepository) AllForUser(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount, comment, category, created_at
		 FROM history WHERE user_id = $1
		 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user history: %w", err)
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

// CategoryTotals - суммы |amount| по категориям, по убыванию
func (r *HistoryRepository) CategoryTotals(ctx context.Context, userID string) ([]models.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT lower(category), SUM(ABS(amount)) AS total
		 FROM history WHERE user_id = $1
		 GROUP BY lower(category)
		 ORDER BY total DESC, lower(category)`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var t models.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Amount); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// ActiveUsers - пользователи, у которых есть хоть одна запись за период
func (r *HistoryRepository) ActiveUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM history ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get active users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

func (r *HistoryRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}

func scanHistoryRows(rows *sql.Rows) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	for rows.Next() {
		e := models.HistoryEntry{}
		err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Comment, &e.Category, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
