package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ozodbekov/cashbot/internal/extractor"
	"github.com/ozodbekov/cashbot/internal/storage"
)

// ErrNoHistory - нечего анализировать
var ErrNoHistory = errors.New("no history to analyze")

const adviceTimeout = 30 * time.Second

const advicePromptHeader = `You are a professional financial advisor.

Analyze these financial transactions:
`

const advicePromptFooter = `
Give short and clear advice:

1. Where most money is spent
2. How to save money
3. Budget recommendations
4. Warn if there are unnecessary expenses

Write simple, practical advice in Uzbek.`

// AdvisorService - финансовые советы по журналу текущего периода
type AdvisorService struct {
	store       storage.Store
	interpreter extractor.Interpreter
}

func NewAdvisorService(store storage.Store, interpreter extractor.Interpreter) *AdvisorService {
	return &AdvisorService{
		store:       store,
		interpreter: interpreter,
	}
}

func (s *AdvisorService) Advise(ctx context.Context, userID string) (string, error) {
	entries, err := s.store.UserHistory(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		return "", ErrNoHistory
	}

	var sb strings.Builder
	sb.WriteString(advicePromptHeader)
	for _, e := range entries {
		fmt.Fprintf(&sb, "%d — %s (%s)\n", e.Amount, e.Comment, e.Category)
	}
	sb.WriteString(advicePromptFooter)

	ctx, cancel := context.WithTimeout(ctx, adviceTimeout)
	defer cancel()

	advice, err := s.interpreter.Interpret(ctx, sb.String())
	if err != nil {
		return "", fmt.Errorf("failed to get advice: %w", err)
	}
	return advice, nil
}
