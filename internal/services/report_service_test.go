package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ozodbekov/cashbot/internal/extractor"
	"github.com/ozodbekov/cashbot/internal/models"
	"github.com/ozodbekov/cashbot/internal/storage/memory"
)

type recordingSender struct {
	reports map[string]*models.Report
	failFor string
}

func (r *recordingSender) SendReport(_ context.Context, userID string, report *models.Report) error {
	if userID == r.failFor {
		return errors.New("delivery failed")
	}
	if r.reports == nil {
		r.reports = make(map[string]*models.Report)
	}
	r.reports[userID] = report
	return nil
}

func seedReportData(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	ledger := NewLedgerService(store, extractor.New(downInterpreter{}))

	seed := []struct {
		user string
		txn  models.Transaction
	}{
		{"chat1", models.Transaction{Amount: -25000, Category: "food"}},
		{"chat1", models.Transaction{Amount: -15000, Category: "Food"}},
		{"chat1", models.Transaction{Amount: -7000, Category: "transport"}},
		{"chat2", models.Transaction{Amount: 100000, Category: "salary"}},
	}
	for _, tc := range seed {
		if _, err := ledger.Apply(ctx, tc.user, tc.txn); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuildReportAggregatesByCategory(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedReportData(t, store)

	report, err := NewReportService(store).BuildReport(ctx, "chat1")
	if err != nil {
		t.Fatal(err)
	}
	if report == nil {
		t.Fatal("expected report")
	}

	if report.Total != 47000 {
		t.Errorf("total = %d, want 47000", report.Total)
	}
	want := []models.CategoryTotal{
		{Category: "food", Amount: 40000},
		{Category: "transport", Amount: 7000},
	}
	if len(report.Categories) != len(want) {
		t.Fatalf("categories = %+v", report.Categories)
	}
	for i, w := range want {
		if report.Categories[i] != w {
			t.Errorf("categories[%d] = %+v, want %+v", i, report.Categories[i], w)
		}
	}
}

func TestBuildReportInactiveUser(t *testing.T) {
	store := memory.New()
	report, err := NewReportService(store).BuildReport(context.Background(), "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if report != nil {
		t.Errorf("report for inactive user: %+v", report)
	}
}

func TestRunCycleIsolatesDeliveryFailures(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedReportData(t, store)

	sender := &recordingSender{failFor: "chat1"}
	if err := NewReportService(store).RunCycle(ctx, sender); err != nil {
		t.Fatal(err)
	}

	if _, ok := sender.reports["chat2"]; !ok {
		t.Error("chat2 report not delivered after chat1 failure")
	}
	if _, ok := sender.reports["chat1"]; ok {
		t.Error("chat1 delivery should have failed")
	}
}
