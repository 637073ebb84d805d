package app

import (
	"context"
	"database/sql"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ozodbekov/cashbot/internal/client/db"
	"github.com/ozodbekov/cashbot/internal/client/db/pg"
	"github.com/ozodbekov/cashbot/internal/client/gemini"
	"github.com/ozodbekov/cashbot/internal/closer"
	"github.com/ozodbekov/cashbot/internal/config"
	"github.com/ozodbekov/cashbot/internal/config/env"
	"github.com/ozodbekov/cashbot/internal/extractor"
	"github.com/ozodbekov/cashbot/internal/handlers/bot_handler"
	"github.com/ozodbekov/cashbot/internal/services"
	"github.com/ozodbekov/cashbot/internal/storage"
	"github.com/ozodbekov/cashbot/internal/storage/postgres"
)

type ServiceProvider struct {
	pgConfig     config.PGConfig
	botConfig    config.BotConfig
	geminiConfig config.GeminiConfig
	cycleConfig  config.CycleConfig

	dbClient     db.Client
	geminiClient *gemini.Client

	store storage.Store

	txnExtractor *extractor.Extractor

	ledgerService  *services.LedgerService
	reportService  *services.ReportService
	archiveService *services.ArchiveService
	advisorService *services.AdvisorService
	scheduler      *services.Scheduler

	botHandler *bot_handler.BotHandler

	bot *tgbotapi.BotAPI
}

func NewServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (s *ServiceProvider) PGConfig() config.PGConfig {
	if s.pgConfig == nil {
		pgConfig, err := env.NewPGConfig()
		if err != nil {
			log.Fatalf("failed to get pg config: %v", err)
		}
		s.pgConfig = pgConfig
	}
	return s.pgConfig
}

func (s *ServiceProvider) BotConfig() config.BotConfig {
	if s.botConfig == nil {
		botConfig, err := env.NewBotConfig()
		if err != nil {
			log.Fatalf("failed to get bot config: %v", err)
		}
		s.botConfig = botConfig
	}
	return s.botConfig
}

func (s *ServiceProvider) GeminiConfig() config.GeminiConfig {
	if s.geminiConfig == nil {
		geminiConfig, err := env.NewGeminiConfig()
		if err != nil {
			log.Fatalf("failed to get gemini config: %v", err)
		}
		s.geminiConfig = geminiConfig
	}
	return s.geminiConfig
}

func (s *ServiceProvider) CycleConfig() config.CycleConfig {
	if s.cycleConfig == nil {
		cycleConfig, err := env.NewCycleConfig()
		if err != nil {
			log.Fatalf("failed to get cycle config: %v", err)
		}
		s.cycleConfig = cycleConfig
	}
	return s.cycleConfig
}

func (s *ServiceProvider) DBClient(ctx context.Context) db.Client {
	if s.dbClient == nil {
		cl, err := pg.New(ctx, s.PGConfig().DSN())
		if err != nil {
			log.Fatalf("failed to get db client: %v", err)
		}

		closer.Add(cl.Close)
		s.dbClient = cl
	}
	return s.dbClient
}

func (s *ServiceProvider) SQLDB(ctx context.Context) *sql.DB {
	return s.DBClient(ctx).DB()
}

func (s *ServiceProvider) GeminiClient(ctx context.Context) *gemini.Client {
	if s.geminiClient == nil {
		cl, err := gemini.New(ctx, s.GeminiConfig().APIKey(), s.GeminiConfig().Model())
		if err != nil {
			log.Fatalf("failed to get gemini client: %v", err)
		}

		closer.Add(cl.Close)
		s.geminiClient = cl
	}
	return s.geminiClient
}

func (s *ServiceProvider) Store(ctx context.Context) storage.Store {
	if s.store == nil {
		s.store = postgres.New(s.SQLDB(ctx))
	}
	return s.store
}

func (s *ServiceProvider) TxnExtractor(ctx context.Context) *extractor.Extractor {
	if s.txnExtractor == nil {
		s.txnExtractor = extractor.New(s.GeminiClient(ctx))
	}
	return s.txnExtractor
}

func (s *ServiceProvider) LedgerService(ctx context.Context) *services.LedgerService {
	if s.ledgerService == nil {
		s.ledgerService = services.NewLedgerService(s.Store(ctx), s.TxnExtractor(ctx))
	}
	return s.ledgerService
}

func (s *ServiceProvider) ReportService(ctx context.Context) *services.ReportService {
	if s.reportService == nil {
		s.reportService = services.NewReportService(s.Store(ctx))
	}
	return s.reportService
}

func (s *ServiceProvider) ArchiveService(ctx context.Context) *services.ArchiveService {
	if s.archiveService == nil {
		s.archiveService = services.NewArchiveService(s.Store(ctx))
	}
	return s.archiveService
}

func (s *ServiceProvider) AdvisorService(ctx context.Context) *services.AdvisorService {
	if s.advisorService == nil {
		s.advisorService = services.NewAdvisorService(s.Store(ctx), s.GeminiClient(ctx))
	}
	return s.advisorService
}

func (s *ServiceProvider) TelegramBot(ctx context.Context) (*tgbotapi.BotAPI, error) {
	if s.bot == nil {
		bot, err := tgbotapi.NewBotAPI(s.BotConfig().Token())
		if err != nil {
			return nil, err
		}
		bot.Debug = s.BotConfig().Debug()
		log.Printf("✅ Bot authorized: @%s", bot.Self.UserName)
		s.bot = bot
	}
	return s.bot, nil
}

func (s *ServiceProvider) Scheduler(ctx context.Context) *services.Scheduler {
	if s.scheduler == nil {
		bot, err := s.TelegramBot(ctx)
		if err != nil {
			log.Fatalf("failed to get telegram bot: %v", err)
		}
		sender := bot_handler.NewTelegramReportSender(bot)
		s.scheduler = services.NewScheduler(
			s.ReportService(ctx),
			s.ArchiveService(ctx),
			sender,
			s.CycleConfig().Day(),
			s.CycleConfig().Hour(),
		)
	}
	return s.scheduler
}

func (s *ServiceProvider) BotHandler(ctx context.Context) *bot_handler.BotHandler {
	if s.botHandler == nil {
		s.botHandler = bot_handler.NewBotHandler(
			s.bot,
			s.LedgerService(ctx),
			s.ReportService(ctx),
			s.AdvisorService(ctx),
		)
	}
	return s.botHandler
}
