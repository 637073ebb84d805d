package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ozodbekov/cashbot/internal/models"
	"github.com/ozodbekov/cashbot/internal/repository"
	"github.com/ozodbekov/cashbot/internal/storage"
)

// Store реализует storage.Store поверх Postgres.
// Репозитории создаются на каждую операцию поверх *sql.DB либо *sql.Tx.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type session struct {
	users   *repository.UserRepository
	history *repository.HistoryRepository
	budgets *repository.BudgetRepository
	archive *repository.ArchiveRepository
}

func newSession(db repository.DBTX) *session {
	return &session{
		users:   repository.NewUserRepository(db),
		history: repository.NewHistoryRepository(db),
		budgets: repository.NewBudgetRepository(db),
		archive: repository.NewArchiveRepository(db),
	}
}

func (s *session) EnsureUser(ctx context.Context, userID string) error {
	return s.users.EnsureUser(ctx, userID)
}

func (s *session) AddToBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	return s.users.AddToBalance(ctx, userID, delta)
}

func (s *session) AppendHistory(ctx context.Context, e *models.HistoryEntry) error {
	return s.history.Append(ctx, e)
}

func (s *session) Budget(ctx context.Context, userID, category string) (*models.Budget, error) {
	return s.budgets.Get(ctx, userID, category)
}

func (s *session) UpsertBudget(ctx context.Context, userID, category string, amount int64) error {
	return s.budgets.Upsert(ctx, userID, category, amount)
}

func (s *session) CategorySpend(ctx context.Context, userID, category string) (int64, error) {
	return s.history.CategorySpend(ctx, userID, category)
}

func (s *session) CopyHistoryToArchive(ctx context.Context) (int64, error) {
	return s.archive.CopyFromHistory(ctx)
}

func (s *session) DeleteAllHistory(ctx context.Context) error {
	return s.history.DeleteAll(ctx)
}

func (s *session) ResetAllBalances(ctx context.Context) error {
	return s.users.ResetAllBalances(ctx)
}

// WithinTx выполняет fn в одной транзакции read committed
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, sess storage.Session) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", storage.ErrUnavailable, err)
	}

	if err := fn(ctx, newSession(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Balance(ctx context.Context, userID string) (int64, error) {
	return newSession(s.db).users.GetBalance(ctx, userID)
}

func (s *Store) RecentHistory(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	return newSession(s.db).history.Recent(ctx, userID, limit)
}

func (s *Store) UserHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	return newSession(s.db).history.AllForUser(ctx, userID)
}

// SetBudget создает пользователя при необходимости: лимит можно
// настроить раньше первой транзакции
func (s *Store) SetBudget(ctx context.Context, userID, category string, amount int64) error {
	return s.WithinTx(ctx, func(ctx context.Context, sess storage.Session) error {
		if err := sess.EnsureUser(ctx, userID); err != nil {
			return err
		}
		return sess.UpsertBudget(ctx, userID, category, amount)
	})
}

func (s *Store) ActiveUsers(ctx context.Context) ([]string, error) {
	return newSession(s.db).history.ActiveUsers(ctx)
}

func (s *Store) CategoryTotals(ctx context.Context, userID string) ([]models.CategoryTotal, error) {
	return newSession(s.db).history.CategoryTotals(ctx, userID)
}
