package services

import (
	"context"
	"fmt"
	"log"

	"github.com/ozodbekov/cashbot/internal/models"
	"github.com/ozodbekov/cashbot/internal/storage"
)

// ReportSender доставляет готовый отчет получателю; доставка -
// забота внешнего транспорта
type ReportSender interface {
	SendReport(ctx context.Context, userID string, report *models.Report) error
}

type ReportService struct {
	store storage.Store
}

func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// BuildReport агрегирует |amount| по категориям за текущий период.
// Для пользователя без записей возвращает nil.
func (s *ReportService) BuildReport(ctx context.Context, userID string) (*models.Report, error) {
	totals, err := s.store.CategoryTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	if len(totals) == 0 {
		return nil, nil
	}

	report := &models.Report{
		UserID:     userID,
		Categories: totals,
	}
	for _, t := range totals {
		report.Total += t.Amount
	}
	return report, nil
}

// RunCycle строит и рассылает отчеты всем активным пользователям.
// Сбой доставки одному получателю не прерывает остальных.
func (s *ReportService) RunCycle(ctx context.Context, sender ReportSender) error {
	users, err := s.store.ActiveUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	var failed int
	for _, userID := range users {
		report, err := s.BuildReport(ctx, userID)
		if err != nil {
			log.Printf("⚠️  Failed to build report for %s: %v", userID, err)
			failed++
			continue
		}
		if report == nil {
			continue
		}

		if err := sender.SendReport(ctx, userID, report); err != nil {
			log.Printf("⚠️  Failed to deliver report to %s: %v", userID, err)
			failed++
			continue
		}
	}

	log.Printf("📊 Report cycle finished: %d users, %d failures", len(users), failed)
	return nil
}
