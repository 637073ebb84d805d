package services

import (
	"context"
	"log"
	"time"
)

// Scheduler раз в месяц, в настроенный день и час, запускает
// отчетный цикл и сразу за ним архивный свип
type Scheduler struct {
	reports *ReportService
	archive *ArchiveService
	sender  ReportSender

	day  int // день месяца, 1..28
	hour int

	interval time.Duration
	lastRun  time.Time
}

func NewScheduler(reports *ReportService, archive *ArchiveService, sender ReportSender, day int, hour int) *Scheduler {
	return &Scheduler{
		reports:  reports,
		archive:  archive,
		sender:   sender,
		day:      day,
		hour:     hour,
		interval: time.Hour,
	}
}

// Start блокируется до отмены ctx; проверка расписания ежечасная
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("⏰ Scheduler started: cycle on day %d at %02d:00", s.day, s.hour)

	// проверяем сразу при запуске: процесс мог быть перезапущен
	// в момент срабатывания цикла
	s.tick(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️  Scheduler stopped")
			return ctx.Err()
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	if !cycleDue(now, s.day, s.hour, s.lastRun) {
		return
	}
	s.lastRun = now

	log.Println("🔄 Monthly cycle starting")

	// сначала отчеты - архивация очищает журнал
	if err := s.reports.RunCycle(ctx, s.sender); err != nil {
		log.Printf("⚠️  Report cycle failed: %v", err)
	}
	if err := s.archive.RunCycle(ctx); err != nil {
		log.Printf("⚠️  Archive cycle failed: %v", err)
	}
}

// cycleDue - пора ли запускать цикл: настал нужный день и час,
// и в этом месяце цикл еще не запускался
func cycleDue(now time.Time, day int, hour int, lastRun time.Time) bool {
	if now.Day() != day || now.Hour() != hour {
		return false
	}
	if !lastRun.IsZero() && lastRun.Year() == now.Year() && lastRun.Month() == now.Month() {
		return false
	}
	return true
}
