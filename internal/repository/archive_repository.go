package repository

import (
	"context"
	"fmt"
)

type ArchiveRepository struct {
	db DBTX
}

func NewArchiveRepository(db DBTX) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// CopyFromHistory переносит копию всех записей периода в архив,
// сохраняя исходный created_at. Возвращает число скопированных строк.
func (r *ArchiveRepository) CopyFromHistory(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO history_archive (user_id, amount, comment, category, created_at)
		 SELECT user_id, amount, comment, category, created_at FROM history`)
	if err != nil {
		return 0, fmt.Errorf("failed to copy history to archive: %w", err)
	}

	moved, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count archived rows: %w", err)
	}
	return moved, nil
}
