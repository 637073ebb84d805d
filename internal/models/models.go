package models

import "time"

// User - владелец кошелька; ключ - это chat id в Telegram
type User struct {
	ID        string
	Balance   int64 // в тийинах (минимальная единица)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryEntry - одна запись журнала за текущий период
type HistoryEntry struct {
	ID        int64
	UserID    string
	Amount    int64 // расход < 0, доход > 0
	Comment   string
	Category  string // всегда в нижнем регистре, по умолчанию "other"
	CreatedAt time.Time
}

// Budget - лимит расходов по категории
type Budget struct {
	UserID    string
	Category  string
	Amount    int64 // всегда > 0
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArchiveEntry - запись журнала, перенесенная архивной задачей
type ArchiveEntry struct {
	ID         int64
	UserID     string
	Amount     int64
	Comment    string
	Category   string
	CreatedAt  time.Time // исходное время записи
	ArchivedAt time.Time
}

// Transaction - разобранная строка сообщения до записи в журнал
type Transaction struct {
	Amount   int64
	Comment  string
	Category string
}

// BudgetAlert - превышение лимита по категории
type BudgetAlert struct {
	Category string
	Limit    int64
	Spent    int64 // сумма |amount| по категории после записи
}

// LedgerResult - результат одной записи в журнал
type LedgerResult struct {
	NewBalance int64
	Alert      *BudgetAlert
}

// LineResult - одна успешно записанная строка сообщения
type LineResult struct {
	Line        string
	Transaction Transaction
	Result      LedgerResult
}

// MessageResult - итог обработки многострочного сообщения
type MessageResult struct {
	Recorded []LineResult
	Total    int // всего непустых строк в сообщении
}

// Processed - количество строк, реально попавших в журнал
func (r *MessageResult) Processed() int {
	return len(r.Recorded)
}

// CategoryTotal - сумма |amount| по одной категории
type CategoryTotal struct {
	Category string
	Amount   int64
}

// Report - отчет по пользователю за текущий период
type Report struct {
	UserID     string
	Categories []CategoryTotal // по убыванию суммы
	Total      int64
}
