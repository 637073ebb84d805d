// Package memory - хранилище в памяти для тестов и локального запуска.
// Семантика повторяет постгресовую реализацию, включая атомарность
// WithinTx: изменения видны снаружи только после успешного завершения fn.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ozodbekov/cashbot/internal/models"
	"github.com/ozodbekov/cashbot/internal/storage"
)

type state struct {
	balances map[string]int64
	history  []models.HistoryEntry
	budgets  map[string]map[string]int64 // userID -> lower(category) -> limit
	archive  []models.ArchiveEntry
	nextID   int64
}

func newState() *state {
	return &state{
		balances: make(map[string]int64),
		budgets:  make(map[string]map[string]int64),
		nextID:   1,
	}
}

func (st *state) clone() *state {
	c := newState()
	c.nextID = st.nextID
	for k, v := range st.balances {
		c.balances[k] = v
	}
	c.history = append([]models.HistoryEntry(nil), st.history...)
	c.archive = append([]models.ArchiveEntry(nil), st.archive...)
	for user, limits := range st.budgets {
		m := make(map[string]int64, len(limits))
		for cat, amount := range limits {
			m[cat] = amount
		}
		c.budgets[user] = m
	}
	return c
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: newState()}
}

// session работает с копией состояния; Store подменяет состояние
// на копию только при успехе fn
type session struct {
	st *state
}

func (s *session) EnsureUser(_ context.Context, userID string) error {
	if _, ok := s.st.balances[userID]; !ok {
		s.st.balances[userID] = 0
	}
	return nil
}

func (s *session) AddToBalance(_ context.Context, userID string, delta int64) (int64, error) {
	s.st.balances[userID] += delta
	return s.st.balances[userID], nil
}

func (s *session) AppendHistory(_ context.Context, e *models.HistoryEntry) error {
	e.ID = s.st.nextID
	s.st.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.st.history = append(s.st.history, *e)
	return nil
}

func (s *session) Budget(_ context.Context, userID, category string) (*models.Budget, error) {
	limits, ok := s.st.budgets[userID]
	if !ok {
		return nil, nil
	}
	amount, ok := limits[strings.ToLower(category)]
	if !ok {
		return nil, nil
	}
	return &models.Budget{
		UserID:   userID,
		Category: strings.ToLower(category),
		Amount:   amount,
	}, nil
}

func (s *session) UpsertBudget(_ context.Context, userID, category string, amount int64) error {
	limits, ok := s.st.budgets[userID]
	if !ok {
		limits = make(map[string]int64)
		s.st.budgets[userID] = limits
	}
	limits[strings.ToLower(category)] = amount
	return nil
}

func (s *session) CategorySpend(_ context.Context, userID, category string) (int64, error) {
	var spent int64
	for _, e := range s.st.history {
		if e.UserID == userID && strings.EqualFold(e.Category, category) {
			spent += abs(e.Amount)
		}
	}
	return spent, nil
}

func (s *session) CopyHistoryToArchive(_ context.Context) (int64, error) {
	now := time.Now()
	for _, e := range s.st.history {
		s.st.archive = append(s.st.archive, models.ArchiveEntry{
			ID:         int64(len(s.st.archive) + 1),
			UserID:     e.UserID,
			Amount:     e.Amount,
			Comment:    e.Comment,
			Category:   e.Category,
			CreatedAt:  e.CreatedAt,
			ArchivedAt: now,
		})
	}
	return int64(len(s.st.history)), nil
}

func (s *session) DeleteAllHistory(_ context.Context) error {
	s.st.history = nil
	return nil
}

func (s *session) ResetAllBalances(_ context.Context) error {
	for k := range s.st.balances {
		s.st.balances[k] = 0
	}
	return nil
}

func (m *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, s storage.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.st.clone()
	if err := fn(ctx, &session{st: next}); err != nil {
		return err
	}
	m.st = next
	return nil
}

func (m *Store) Balance(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.balances[userID], nil
}

func (m *Store) RecentHistory(_ context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []models.HistoryEntry
	for i := len(m.st.history) - 1; i >= 0 && len(entries) < limit; i-- {
		if m.st.history[i].UserID == userID {
			entries = append(entries, m.st.history[i])
		}
	}
	return entries, nil
}

func (m *Store) UserHistory(_ context.Context, userID string) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []models.HistoryEntry
	for _, e := range m.st.history {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *Store) SetBudget(ctx context.Context, userID, category string, amount int64) error {
	return m.WithinTx(ctx, func(ctx context.Context, s storage.Session) error {
		if err := s.EnsureUser(ctx, userID); err != nil {
			return err
		}
		return s.UpsertBudget(ctx, userID, category, amount)
	})
}

func (m *Store) ActiveUsers(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var users []string
	for _, e := range m.st.history {
		if !seen[e.UserID] {
			seen[e.UserID] = true
			users = append(users, e.UserID)
		}
	}
	sort.Strings(users)
	return users, nil
}

func (m *Store) CategoryTotals(_ context.Context, userID string) ([]models.CategoryTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byCategory := make(map[string]int64)
	for _, e := range m.st.history {
		if e.UserID == userID {
			byCategory[strings.ToLower(e.Category)] += abs(e.Amount)
		}
	}

	totals := make([]models.CategoryTotal, 0, len(byCategory))
	for cat, amount := range byCategory {
		totals = append(totals, models.CategoryTotal{Category: cat, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return totals[i].Category < totals[j].Category
	})
	return totals, nil
}

// Archive возвращает копию архива; используется тестами архивного цикла
func (m *Store) Archive() []models.ArchiveEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ArchiveEntry(nil), m.st.archive...)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
