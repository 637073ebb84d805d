package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ozodbekov/cashbot/internal/models"
)

// Слова, указывающие на доход. Без явного знака и без такого слова
// сумма считается расходом.
var incomeWords = []string{
	"maosh",
	"oylik",
	"daromad",
	"keldi",
	"bonus",
	"stipendiya",
	"salary",
	"income",
}

var amountPattern = regexp.MustCompile(`[+-]?\d+`)

const maxCommentTokens = 4

// fallbackParse - детерминированный разбор без модели: первая
// целочисленная лексема задает сумму, знак - по явному +/- либо
// по словарю доходов.
func fallbackParse(line string) (*models.Transaction, error) {
	token := amountPattern.FindString(line)
	if token == "" {
		return nil, ErrUnparseable
	}

	amount, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		// лексема длиннее int64 - считаем строку мусором
		return nil, ErrUnparseable
	}
	if amount == 0 {
		return nil, ErrUnparseable
	}

	explicitSign := strings.HasPrefix(token, "+") || strings.HasPrefix(token, "-")
	if !explicitSign {
		if hasIncomeWord(line) {
			amount = abs64(amount)
		} else {
			amount = -abs64(amount)
		}
	}

	return &models.Transaction{
		Amount:   amount,
		Comment:  synthesizeComment(line),
		Category: "other",
	}, nil
}

func hasIncomeWord(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range incomeWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// synthesizeComment - первые несколько слов строки как комментарий
func synthesizeComment(line string) string {
	tokens := strings.Fields(line)
	if len(tokens) > maxCommentTokens {
		tokens = tokens[:maxCommentTokens]
	}
	return strings.TrimSpace(strings.Join(tokens, " "))
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
