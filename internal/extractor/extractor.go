// Package extractor превращает строку свободного текста в транзакцию.
// Основной путь - языковая модель; при любой ее ошибке строка
// разбирается детерминированным запасным путем.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ozodbekov/cashbot/internal/models"
)

// ErrUnparseable - ни один из путей не нашел сумму; строка пропускается
var ErrUnparseable = errors.New("line is unparseable")

// Interpreter - внешний NLU-сервис; считается ненадежным
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (string, error)
}

const defaultTimeout = 5 * time.Second

const promptTemplate = `You are a bookkeeping assistant. The user wrote one line about money:

%q

Return STRICTLY a single JSON object, nothing else:
{"amount": <signed integer, expense negative, income positive, smallest currency unit>, "comment": "<short description>", "category": "<single lowercase word: food, transport, shopping, health, salary, entertainment, other>"}`

type Extractor struct {
	interpreter Interpreter
	timeout     time.Duration
}

func New(interpreter Interpreter) *Extractor {
	return &Extractor{
		interpreter: interpreter,
		timeout:     defaultTimeout,
	}
}

// Extract разбирает одну строку. Возвращает ErrUnparseable, если и
// модель, и запасной путь не нашли пригодной суммы.
func (e *Extractor) Extract(ctx context.Context, line string) (*models.Transaction, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrUnparseable
	}

	txn, err := e.primary(ctx, line)
	if err == nil {
		return txn, nil
	}
	log.Printf("⚠️  Primary extraction failed (%v), falling back: %q", err, line)

	return fallbackParse(line)
}

func (e *Extractor) primary(ctx context.Context, line string) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.interpreter.Interpret(ctx, fmt.Sprintf(promptTemplate, line))
	if err != nil {
		return nil, fmt.Errorf("interpreter: %w", err)
	}

	return scrapeTransaction(raw)
}
