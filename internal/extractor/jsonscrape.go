package extractor

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/ozodbekov/cashbot/internal/models"
)

// Причины отказа основного пути; каждая проверяется тестами отдельно.
var (
	ErrNoJSON        = errors.New("no json object in response")
	ErrMalformedJSON = errors.New("malformed json object")
	ErrMissingAmount = errors.New("amount missing or not an integer")
	ErrZeroAmount    = errors.New("amount is zero")
)

// scrapeTransaction вырезает первый объект {...} из ответа модели.
// Модель может заворачивать JSON в прозу, markdown-блоки и одинарные
// кавычки - формат ответа контрактно не гарантирован.
func scrapeTransaction(raw string) (*models.Transaction, error) {
	raw = stripFences(raw)

	start := strings.Index(raw, "{")
	if start == -1 {
		return nil, ErrNoJSON
	}
	end := strings.LastIndex(raw, "}")
	if end == -1 || end < start {
		return nil, ErrNoJSON
	}
	candidate := raw[start : end+1]

	fields, err := decodeObject(candidate)
	if err != nil {
		// одинарные кавычки встречаются регулярно - нормализуем и пробуем еще раз
		fields, err = decodeObject(strings.ReplaceAll(candidate, "'", `"`))
		if err != nil {
			return nil, ErrMalformedJSON
		}
	}

	amount, ok := coerceAmount(fields["amount"])
	if !ok {
		return nil, ErrMissingAmount
	}
	if amount == 0 {
		return nil, ErrZeroAmount
	}

	txn := &models.Transaction{
		Amount:   amount,
		Comment:  strings.TrimSpace(asString(fields["comment"])),
		Category: normalizeCategory(asString(fields["category"])),
	}
	return txn, nil
}

func stripFences(raw string) string {
	if i := strings.Index(raw, "```json"); i != -1 {
		raw = raw[i+7:]
		if j := strings.Index(raw, "```"); j != -1 {
			raw = raw[:j]
		}
	} else if i := strings.Index(raw, "```"); i != -1 {
		raw = raw[i+3:]
		if j := strings.Index(raw, "```"); j != -1 {
			raw = raw[:j]
		}
	}
	return raw
}

func decodeObject(candidate string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// coerceAmount принимает целое число либо строку с целым числом.
// Дробные суммы отвергаются - учет ведется в минимальных единицах.
func coerceAmount(v any) (int64, bool) {
	switch amount := v.(type) {
	case json.Number:
		n, err := strconv.ParseInt(amount.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(amount), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// normalizeCategory приводит категорию к нижнему регистру;
// пустая категория становится "other"
func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "other"
	}
	return category
}
