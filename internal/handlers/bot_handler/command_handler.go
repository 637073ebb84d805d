package bot_handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ozodbekov/cashbot/internal/services"
)

const historyLimit = 10

const budgetUsageText = "Format: /budget <kategoriya> <summa>\nMasalan: /budget food 100000"

func (h *BotHandler) HandleStart(message *tgbotapi.Message) {
	h.sendMessage(message.Chat.ID, startText)
}

func (h *BotHandler) HandleHelp(message *tgbotapi.Message) {
	h.sendMessage(message.Chat.ID, startText)
}

func (h *BotHandler) HandleUnknownCommand(message *tgbotapi.Message) {
	h.sendMessage(message.Chat.ID, "Bunday komanda yo'q 🤷 /help yozing")
}

func (h *BotHandler) HandleBalance(message *tgbotapi.Message) {
	ctx := context.Background()

	balance, err := h.ledger.Balance(ctx, userKey(message))
	if err != nil {
		log.Printf("⚠️  Failed to get balance for %d: %v", message.From.ID, err)
		h.sendMessage(message.Chat.ID, "Baza bilan muammo, keyinroq urinib ko'ring 🙏")
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf("Balans: %d", balance))
}

func (h *BotHandler) HandleHistory(message *tgbotapi.Message) {
	ctx := context.Background()

	entries, err := h.ledger.RecentHistory(ctx, userKey(message), historyLimit)
	if err != nil {
		log.Printf("⚠️  Failed to get history for %d: %v", message.From.ID, err)
		h.sendMessage(message.Chat.ID, "Baza bilan muammo, keyinroq urinib ko'ring 🙏")
		return
	}
	if len(entries) == 0 {
		h.sendMessage(message.Chat.ID, "History yo'q")
		return
	}

	var sb strings.Builder
	sb.WriteString("Oxirgi yozuvlar:\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%d — %s (%s)\n", e.Amount, e.Comment, e.Category)
	}
	h.sendMessage(message.Chat.ID, sb.String())
}

// HandleBudget - команда /budget <категория> <положительная сумма>
func (h *BotHandler) HandleBudget(message *tgbotapi.Message) {
	ctx := context.Background()

	category, amount, err := parseBudgetCommand(message.CommandArguments())
	if err != nil {
		h.sendMessage(message.Chat.ID, budgetUsageText)
		return
	}

	if err := h.ledger.SetBudget(ctx, userKey(message), category, amount); err != nil {
		log.Printf("⚠️  Failed to set budget for %d: %v", message.From.ID, err)
		h.sendMessage(message.Chat.ID, "Baza bilan muammo, keyinroq urinib ko'ring 🙏")
		return
	}

	h.sendMessage(message.Chat.ID,
		fmt.Sprintf("✅ Budjet o'rnatildi: %s — %d", strings.ToLower(strings.TrimSpace(category)), amount))
}

func (h *BotHandler) HandleReport(message *tgbotapi.Message) {
	ctx := context.Background()

	report, err := h.reports.BuildReport(ctx, userKey(message))
	if err != nil {
		log.Printf("⚠️  Failed to build report for %d: %v", message.From.ID, err)
		h.sendMessage(message.Chat.ID, "Baza bilan muammo, keyinroq urinib ko'ring 🙏")
		return
	}
	if report == nil {
		h.sendMessage(message.Chat.ID, "Report uchun data yo'q.")
		return
	}

	h.sendMessage(message.Chat.ID, renderReport(report))
}

func (h *BotHandler) HandleAnalyze(message *tgbotapi.Message) {
	ctx := context.Background()

	advice, err := h.advisor.Advise(ctx, userKey(message))
	if err != nil {
		if errors.Is(err, services.ErrNoHistory) {
			h.sendMessage(message.Chat.ID, "Analiz uchun data yo'q.")
			return
		}
		log.Printf("⚠️  Failed to get advice for %d: %v", message.From.ID, err)
		h.sendMessage(message.Chat.ID, "Analiz hozircha ishlamayapti, keyinroq urinib ko'ring 🙏")
		return
	}

	h.sendMessage(message.Chat.ID, advice)
}

// parseBudgetCommand разбирает аргументы /budget; сумма должна быть
// целым положительным числом
func parseBudgetCommand(args string) (category string, amount int64, err error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected 2 arguments, got %d", len(fields))
	}

	amount, err = strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("amount is not an integer: %w", err)
	}
	if amount <= 0 {
		return "", 0, fmt.Errorf("amount must be positive, got %d", amount)
	}

	return fields[0], amount, nil
}
