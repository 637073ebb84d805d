package bot_handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ozodbekov/cashbot/internal/storage"
)

// HandleTextMessage - основной путь: каждая строка сообщения
// проходит полный конвейер извлечение -> запись
func (h *BotHandler) HandleTextMessage(message *tgbotapi.Message) {
	ctx := context.Background()
	userID := userKey(message)

	result, err := h.ledger.ProcessMessage(ctx, userID, message.Text)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			h.sendMessage(message.Chat.ID, "Baza bilan muammo, qaytadan yuboring 🙏")
			return
		}
		log.Printf("⚠️  Failed to process message from %s: %v", userID, err)
		h.sendMessage(message.Chat.ID, "Xatolik yuz berdi, qaytadan urinib ko'ring")
		return
	}

	if result.Processed() == 0 {
		h.sendMessage(message.Chat.ID, "Tushunmadim 🤔\nMasalan: -25000 ovqat")
		return
	}

	var sb strings.Builder
	for _, line := range result.Recorded {
		fmt.Fprintf(&sb, "Qo'shildi: %d\nIzoh: %s\n", line.Transaction.Amount, lineComment(line.Transaction.Comment))
	}
	if result.Total > 1 {
		fmt.Fprintf(&sb, "Qayd etildi: %d/%d\n", result.Processed(), result.Total)
	}

	last := result.Recorded[len(result.Recorded)-1]
	fmt.Fprintf(&sb, "Balans: %d", last.Result.NewBalance)

	// тревоги информационные: транзакции уже записаны
	for _, line := range result.Recorded {
		if alert := line.Result.Alert; alert != nil {
			fmt.Fprintf(&sb, "\n⚠️ Budjet oshdi! %s: %d / %d", alert.Category, alert.Spent, alert.Limit)
		}
	}

	h.sendMessage(message.Chat.ID, sb.String())
}

func lineComment(comment string) string {
	if comment == "" {
		return "izoh yo'q"
	}
	return comment
}
