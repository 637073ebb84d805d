// Package storage описывает порт хранилища журнала.
// Каждая логическая операция получает свою сессию: никакого
// общего соединения, переживающего неудавшийся запрос.
package storage

import (
	"context"
	"errors"

	"github.com/ozodbekov/cashbot/internal/models"
)

// ErrUnavailable - хранилище недоступно; запрос можно повторить
var ErrUnavailable = errors.New("storage unavailable")

// Session - операции, доступные внутри одной единицы работы.
// Все вызовы видят незакоммиченные изменения этой же сессии.
type Session interface {
	EnsureUser(ctx context.Context, userID string) error
	AddToBalance(ctx context.Context, userID string, delta int64) (int64, error)
	AppendHistory(ctx context.Context, e *models.HistoryEntry) error

	// Budget возвращает (nil, nil), если лимит не настроен
	Budget(ctx context.Context, userID, category string) (*models.Budget, error)
	UpsertBudget(ctx context.Context, userID, category string, amount int64) error
	CategorySpend(ctx context.Context, userID, category string) (int64, error)

	// архивный цикл
	CopyHistoryToArchive(ctx context.Context) (int64, error)
	DeleteAllHistory(ctx context.Context) error
	ResetAllBalances(ctx context.Context) error
}

// Store - хранилище журнала. WithinTx выполняет fn атомарно:
// при ошибке ни одно изменение сессии не видно снаружи.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Session) error) error

	Balance(ctx context.Context, userID string) (int64, error)
	RecentHistory(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error)
	UserHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error)
	SetBudget(ctx context.Context, userID, category string, amount int64) error
	ActiveUsers(ctx context.Context) ([]string, error)
	CategoryTotals(ctx context.Context, userID string) ([]models.CategoryTotal, error)
}
