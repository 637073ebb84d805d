package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ozodbekov/cashbot/internal/extractor"
	"github.com/ozodbekov/cashbot/internal/models"
	"github.com/ozodbekov/cashbot/internal/storage"
)

// TxnExtractor - контракт извлечения транзакции из строки
type TxnExtractor interface {
	Extract(ctx context.Context, line string) (*models.Transaction, error)
}

// LedgerService - ядро учета: одна строка сообщения = одна
// атомарная единица работы над хранилищем
type LedgerService struct {
	store     storage.Store
	extractor TxnExtractor
}

func NewLedgerService(store storage.Store, extractor TxnExtractor) *LedgerService {
	return &LedgerService{
		store:     store,
		extractor: extractor,
	}
}

// Apply записывает одну транзакцию: создание пользователя при
// необходимости, изменение баланса, запись в журнал и проверка
// лимита - все в одной транзакции БД.
func (s *LedgerService) Apply(ctx context.Context, userID string, txn models.Transaction) (*models.LedgerResult, error) {
	category := normalizeCategory(txn.Category)

	var result models.LedgerResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, sess storage.Session) error {
		if err := sess.EnsureUser(ctx, userID); err != nil {
			return err
		}

		balance, err := sess.AddToBalance(ctx, userID, txn.Amount)
		if err != nil {
			return err
		}
		result.NewBalance = balance

		entry := &models.HistoryEntry{
			UserID:   userID,
			Amount:   txn.Amount,
			Comment:  txn.Comment,
			Category: category,
		}
		if err := sess.AppendHistory(ctx, entry); err != nil {
			return err
		}

		// проверка лимита видит только что добавленную запись
		budget, err := sess.Budget(ctx, userID, category)
		if err != nil {
			return err
		}
		if budget == nil {
			return nil
		}

		spent, err := sess.CategorySpend(ctx, userID, category)
		if err != nil {
			return err
		}
		if ExceedsBudget(budget.Amount, spent) {
			result.Alert = &models.BudgetAlert{
				Category: category,
				Limit:    budget.Amount,
				Spent:    spent,
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply transaction: %w", err)
	}

	log.Printf("💾 Recorded: user=%s amount=%d category=%s balance=%d",
		userID, txn.Amount, category, result.NewBalance)
	return &result, nil
}

// ProcessMessage обрабатывает каждую непустую строку сообщения
// независимо; частичный успех - норма. Строки коммитятся по очереди,
// поэтому лимиты видят уже записанные строки этого же сообщения.
func (s *LedgerService) ProcessMessage(ctx context.Context, userID string, text string) (*models.MessageResult, error) {
	result := &models.MessageResult{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result.Total++

		txn, err := s.extractor.Extract(ctx, line)
		if err != nil {
			if errors.Is(err, extractor.ErrUnparseable) {
				log.Printf("⏭️  Skipping unparseable line from %s: %q", userID, line)
				continue
			}
			return result, fmt.Errorf("failed to extract line: %w", err)
		}

		applied, err := s.Apply(ctx, userID, *txn)
		if err != nil {
			if errors.Is(err, storage.ErrUnavailable) {
				// вся оставшаяся часть сообщения бессмысленна без БД
				return result, err
			}
			log.Printf("⚠️  Failed to record line from %s: %v", userID, err)
			continue
		}

		result.Recorded = append(result.Recorded, models.LineResult{
			Line:        line,
			Transaction: *txn,
			Result:      *applied,
		})
	}

	return result, nil
}

func (s *LedgerService) Balance(ctx context.Context, userID string) (int64, error) {
	return s.store.Balance(ctx, userID)
}

func (s *LedgerService) RecentHistory(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	return s.store.RecentHistory(ctx, userID, limit)
}

// SetBudget перезаписывает лимит; категория нормализуется,
// сумма должна быть строго положительной
func (s *LedgerService) SetBudget(ctx context.Context, userID string, category string, amount int64) error {
	if amount <= 0 {
		return errors.New("budget amount must be positive")
	}
	return s.store.SetBudget(ctx, userID, normalizeCategory(category), amount)
}

func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "other"
	}
	return category
}
