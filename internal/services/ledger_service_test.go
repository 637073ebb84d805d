package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ozodbekov/cashbot/internal/extractor"
	"github.com/ozodbekov/cashbot/internal/models"
	"github.com/ozodbekov/cashbot/internal/storage"
	"github.com/ozodbekov/cashbot/internal/storage/memory"
)

type downInterpreter struct{}

func (downInterpreter) Interpret(context.Context, string) (string, error) {
	return "", errors.New("interpreter down")
}

// newTestLedger - сервис поверх памяти; извлечение идет запасным
// путем, так что тесты не зависят от доступности модели
func newTestLedger() (*LedgerService, *memory.Store) {
	store := memory.New()
	return NewLedgerService(store, extractor.New(downInterpreter{})), store
}

func TestApplyRecordsBalanceAndHistory(t *testing.T) {
	ctx := context.Background()
	s, store := newTestLedger()

	res, err := s.Apply(ctx, "chat1", models.Transaction{Amount: -25000, Comment: "ovqat", Category: "food"})
	if err != nil {
		t.Fatal(err)
	}
	if res.NewBalance != -25000 {
		t.Errorf("balance = %d, want -25000", res.NewBalance)
	}

	entries, err := store.UserHistory(ctx, "chat1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("history rows = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Amount != -25000 || e.Comment != "ovqat" || e.Category != "food" {
		t.Errorf("entry = %+v", e)
	}
}

func TestApplyIdempotentUserCreation(t *testing.T) {
	ctx := context.Background()
	s, store := newTestLedger()

	if _, err := s.Apply(ctx, "chat1", models.Transaction{Amount: 100}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Apply(ctx, "chat1", models.Transaction{Amount: 200}); err != nil {
		t.Fatal(err)
	}

	balance, err := store.Balance(ctx, "chat1")
	if err != nil {
		t.Fatal(err)
	}
	if balance != 300 {
		t.Errorf("balance = %d, want 300 (single user row)", balance)
	}
}

func TestApplyBudgetAlertThreshold(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	if err := s.SetBudget(ctx, "chat1", "food", 100000); err != nil {
		t.Fatal(err)
	}

	// ровно на лимите - тревоги нет
	res, err := s.Apply(ctx, "chat1", models.Transaction{Amount: -100000, Category: "food"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Alert != nil {
		t.Errorf("alert at exactly the limit: %+v", res.Alert)
	}

	// строгое превышение накопленной суммой - тревога, даже если
	// сама транзакция маленькая
	res, err = s.Apply(ctx, "chat1", models.Transaction{Amount: -1, Category: "food"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Alert == nil {
		t.Fatal("expected alert above the limit")
	}
	if res.Alert.Spent != 100001 || res.Alert.Limit != 100000 || res.Alert.Category != "food" {
		t.Errorf("alert = %+v", res.Alert)
	}

	// каждая следующая транзакция снова дает тревогу
	res, err = s.Apply(ctx, "chat1", models.Transaction{Amount: -5000, Category: "food"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Alert == nil || res.Alert.Spent != 105001 {
		t.Errorf("alert = %+v, want re-fire with spent=105001", res.Alert)
	}
}

func TestApplyCategoryCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestLedger()

	if err := s.SetBudget(ctx, "chat1", "Food", 1000); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Apply(ctx, "chat1", models.Transaction{Amount: -600, Category: "Food"}); err != nil {
		t.Fatal(err)
	}
	res, err := s.Apply(ctx, "chat1", models.Transaction{Amount: -600, Category: "food"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Alert == nil || res.Alert.Spent != 1200 {
		t.Errorf("alert = %+v, want aggregated spend 1200", res.Alert)
	}
}

func TestProcessMessagePartialSuccess(t *testing.T) {
	ctx := context.Background()
	s, store := newTestLedger()

	text := "-25000 ovqat\n100000 maosh keldi\nhech qanday raqam yo'q\n-7000 taksi"
	res, err := s.ProcessMessage(ctx, "chat1", text)
	if err != nil {
		t.Fatal(err)
	}

	if res.Total != 4 {
		t.Errorf("total = %d, want 4", res.Total)
	}
	if res.Processed() != 3 {
		t.Errorf("processed = %d, want 3", res.Processed())
	}

	balance, _ := store.Balance(ctx, "chat1")
	if balance != -25000+100000-7000 {
		t.Errorf("balance = %d, want 68000", balance)
	}

	entries, _ := store.UserHistory(ctx, "chat1")
	if len(entries) != 3 {
		t.Errorf("history rows = %d, want 3", len(entries))
	}
}

// failingStore имитирует отвал БД на записи
type failingStore struct {
	*memory.Store
}

func (f *failingStore) WithinTx(context.Context, func(context.Context, storage.Session) error) error {
	return storage.ErrUnavailable
}

func TestProcessMessageStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: memory.New()}
	s := NewLedgerService(store, extractor.New(downInterpreter{}))

	res, err := s.ProcessMessage(ctx, "chat1", "-25000 ovqat")
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if res.Processed() != 0 {
		t.Errorf("processed = %d, want 0", res.Processed())
	}
}

func TestSetBudgetRejectsNonPositive(t *testing.T) {
	s, _ := newTestLedger()

	for _, amount := range []int64{0, -100} {
		if err := s.SetBudget(context.Background(), "chat1", "food", amount); err == nil {
			t.Errorf("amount %d: expected error", amount)
		}
	}
}

func TestExceedsBudget(t *testing.T) {
	cases := []struct {
		limit, spent int64
		want         bool
	}{
		{100000, 99999, false},
		{100000, 100000, false},
		{100000, 100001, true},
	}
	for _, tc := range cases {
		if got := ExceedsBudget(tc.limit, tc.spent); got != tc.want {
			t.Errorf("ExceedsBudget(%d, %d) = %v, want %v", tc.limit, tc.spent, got, tc.want)
		}
	}
}
