package bot_handler

import (
	"strings"
	"testing"

	"github.com/ozodbekov/cashbot/internal/models"
)

func TestRenderReport(t *testing.T) {
	report := &models.Report{
		UserID: "chat1",
		Categories: []models.CategoryTotal{
			{Category: "food", Amount: 40000},
			{Category: "transport", Amount: 4000},
		},
		Total: 44000,
	}

	out := renderReport(report)

	if !strings.Contains(out, "food — 40000") {
		t.Errorf("missing food line:\n%s", out)
	}
	if !strings.Contains(out, "transport — 4000") {
		t.Errorf("missing transport line:\n%s", out)
	}
	if !strings.Contains(out, "Jami: 44000") {
		t.Errorf("missing total:\n%s", out)
	}
	// самая крупная категория получает самую длинную полосу
	foodLine, transportLine := "", ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "food") {
			foodLine = line
		}
		if strings.Contains(line, "transport") {
			transportLine = line
		}
	}
	if strings.Count(foodLine, "▇") <= strings.Count(transportLine, "▇") {
		t.Errorf("bar widths not proportional:\n%s", out)
	}
}
