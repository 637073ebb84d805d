package services

import (
	"context"
	"fmt"
	"log"

	"github.com/ozodbekov/cashbot/internal/storage"
)

// ArchiveService выполняет месячный свип: копия журнала в архив,
// очистка журнала, обнуление балансов - одной транзакцией
type ArchiveService struct {
	store storage.Store
}

func NewArchiveService(store storage.Store) *ArchiveService {
	return &ArchiveService{store: store}
}

// RunCycle идемпотентен в рамках цикла: при пустом журнале
// повторный запуск ничего не делает
func (s *ArchiveService) RunCycle(ctx context.Context) error {
	var moved int64
	err := s.store.WithinTx(ctx, func(ctx context.Context, sess storage.Session) error {
		var err error
		moved, err = sess.CopyHistoryToArchive(ctx)
		if err != nil {
			return err
		}
		if moved == 0 {
			return nil
		}

		if err := sess.DeleteAllHistory(ctx); err != nil {
			return err
		}
		return sess.ResetAllBalances(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to run archive cycle: %w", err)
	}

	log.Printf("🗄️  Archive cycle finished: %d entries moved", moved)
	return nil
}
