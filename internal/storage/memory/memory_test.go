package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/ozodbekov/cashbot/internal/models"
	"github.com/ozodbekov/cashbot/internal/storage"
)

func TestWithinTxCommit(t *testing.T) {
	ctx := context.Background()
	store := New()

	err := store.WithinTx(ctx, func(ctx context.Context, s storage.Session) error {
		if err := s.EnsureUser(ctx, "u1"); err != nil {
			return err
		}
		if _, err := s.AddToBalance(ctx, "u1", 500); err != nil {
			return err
		}
		return s.AppendHistory(ctx, &models.HistoryEntry{UserID: "u1", Amount: 500, Category: "other"})
	})
	if err != nil {
		t.Fatal(err)
	}

	balance, _ := store.Balance(ctx, "u1")
	if balance != 500 {
		t.Errorf("balance = %d, want 500", balance)
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := New()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, s storage.Session) error {
		if err := s.EnsureUser(ctx, "u1"); err != nil {
			return err
		}
		if _, err := s.AddToBalance(ctx, "u1", 500); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	// ни одно изменение не видно снаружи
	balance, _ := store.Balance(ctx, "u1")
	if balance != 0 {
		t.Errorf("balance = %d, want 0 after rollback", balance)
	}
	entries, _ := store.UserHistory(ctx, "u1")
	if len(entries) != 0 {
		t.Errorf("history leaked after rollback: %+v", entries)
	}
}
