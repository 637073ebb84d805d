package bot_handler

import (
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ozodbekov/cashbot/internal/services"
)

const startText = `Cash bot tayyor 💰

Yozing:
+100000 ish
-25000 ovqat

Komandalar:
/balance - balans
/history - oxirgi yozuvlar
/budget <kategoriya> <summa> - limit o'rnatish
/report - kategoriyalar bo'yicha hisobot
/analyze - moliyaviy maslahat`

type BotHandler struct {
	bot     *tgbotapi.BotAPI
	ledger  *services.LedgerService
	reports *services.ReportService
	advisor *services.AdvisorService
}

func NewBotHandler(
	bot *tgbotapi.BotAPI,
	ledger *services.LedgerService,
	reports *services.ReportService,
	advisor *services.AdvisorService,
) *BotHandler {
	return &BotHandler{
		bot:     bot,
		ledger:  ledger,
		reports: reports,
		advisor: advisor,
	}
}

// userKey - ключ пользователя в хранилище; непрозрачная строка,
// как в исходных данных
func userKey(message *tgbotapi.Message) string {
	return strconv.FormatInt(message.From.ID, 10)
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("⚠️  Failed to send message to %d: %v", chatID, err)
	}
}
