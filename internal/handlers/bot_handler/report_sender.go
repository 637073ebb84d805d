package bot_handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ozodbekov/cashbot/internal/models"
)

const maxBarWidth = 10

// TelegramReportSender доставляет месячный отчет в чат пользователя;
// реализует services.ReportSender
type TelegramReportSender struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramReportSender(bot *tgbotapi.BotAPI) *TelegramReportSender {
	return &TelegramReportSender{bot: bot}
}

func (s *TelegramReportSender) SendReport(_ context.Context, userID string, report *models.Report) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad chat id %q: %w", userID, err)
	}

	msg := tgbotapi.NewMessage(chatID, "📅 Oylik hisobot\n\n"+renderReport(report))
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

// renderReport - текстовая диаграмма по категориям; генерация
// картинок остается внешней заботой
func renderReport(report *models.Report) string {
	var sb strings.Builder
	sb.WriteString("Kategoriyalar bo'yicha:\n")

	max := report.Categories[0].Amount
	for _, c := range report.Categories {
		width := 1
		if max > 0 {
			width = int(c.Amount * maxBarWidth / max)
			if width < 1 {
				width = 1
			}
		}
		fmt.Fprintf(&sb, "%s %s — %d\n", strings.Repeat("▇", width), c.Category, c.Amount)
	}

	fmt.Fprintf(&sb, "\nJami: %d", report.Total)
	return sb.String()
}
