package extractor

import (
	"errors"
	"testing"
)

func TestScrapeTransaction(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		amount   int64
		comment  string
		category string
	}{
		{
			name:     "clean json",
			raw:      `{"amount": -25000, "comment": "ovqat", "category": "food"}`,
			amount:   -25000,
			comment:  "ovqat",
			category: "food",
		},
		{
			name:     "wrapped in prose",
			raw:      `Here is the extracted transaction: {"amount": 100000, "comment": "maosh", "category": "salary"} hope it helps!`,
			amount:   100000,
			comment:  "maosh",
			category: "salary",
		},
		{
			name: "markdown fence",
			raw: "```json\n" +
				`{"amount": -7000, "comment": "taksi", "category": "transport"}` +
				"\n```",
			amount:   -7000,
			comment:  "taksi",
			category: "transport",
		},
		{
			name:     "single quotes",
			raw:      `{'amount': -3000, 'comment': 'non', 'category': 'food'}`,
			amount:   -3000,
			comment:  "non",
			category: "food",
		},
		{
			name:     "amount as string",
			raw:      `{"amount": "-4500", "comment": "avtobus", "category": "transport"}`,
			amount:   -4500,
			comment:  "avtobus",
			category: "transport",
		},
		{
			name:     "empty category defaults",
			raw:      `{"amount": -100, "comment": "x", "category": ""}`,
			amount:   -100,
			comment:  "x",
			category: "other",
		},
		{
			name:     "category normalized to lowercase",
			raw:      `{"amount": -100, "comment": "x", "category": " Food "}`,
			amount:   -100,
			comment:  "x",
			category: "food",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			txn, err := scrapeTransaction(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if txn.Amount != tc.amount {
				t.Errorf("amount = %d, want %d", txn.Amount, tc.amount)
			}
			if txn.Comment != tc.comment {
				t.Errorf("comment = %q, want %q", txn.Comment, tc.comment)
			}
			if txn.Category != tc.category {
				t.Errorf("category = %q, want %q", txn.Category, tc.category)
			}
		})
	}
}

func TestScrapeTransactionFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"no json at all", "sorry, I cannot do that", ErrNoJSON},
		{"only opening brace", "here { goes nothing", ErrNoJSON},
		{"malformed json", `{"amount": -100,, "comment"}`, ErrMalformedJSON},
		{"missing amount", `{"comment": "ovqat", "category": "food"}`, ErrMissingAmount},
		{"float amount", `{"amount": 12.5, "comment": "x", "category": "y"}`, ErrMissingAmount},
		{"non numeric string amount", `{"amount": "ko'p", "comment": "x", "category": "y"}`, ErrMissingAmount},
		{"zero amount", `{"amount": 0, "comment": "x", "category": "y"}`, ErrZeroAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := scrapeTransaction(tc.raw); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
