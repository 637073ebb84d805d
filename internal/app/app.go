package app

import (
	"context"
	"flag"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ozodbekov/cashbot/internal/closer"
	"github.com/ozodbekov/cashbot/internal/config"
	"github.com/ozodbekov/cashbot/internal/migrations"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config-path", ".env", "path to config file")
}

type App struct {
	serviceProvider *ServiceProvider
	bot             *tgbotapi.BotAPI
}

// NewApp собирает все зависимости явно; никаких побочных эффектов
// на импорте - все инициализируется здесь
func NewApp(ctx context.Context) (*App, error) {
	a := &App{}

	err := a.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Run блокируется до отмены ctx; цикл обновлений и планировщик
// работают параллельно
func (a *App) Run(ctx context.Context) error {
	defer closer.CloseAll()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.serviceProvider.Scheduler(ctx).Start(ctx)
	})
	g.Go(func() error {
		return a.runUpdatesLoop(ctx)
	})

	return g.Wait()
}

func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
		a.runMigrations,
		a.initTelegramBot,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) initConfig(context.Context) error {
	err := config.Load(configPath)
	if err != nil {
		log.Printf("⚠️  No config file at %s, relying on environment: %v", configPath, err)
	}
	return nil
}

func (a *App) initServiceProvider(context.Context) error {
	a.serviceProvider = NewServiceProvider()
	return nil
}

func (a *App) runMigrations(ctx context.Context) error {
	if err := migrations.Up(a.serviceProvider.SQLDB(ctx)); err != nil {
		return err
	}
	log.Println("✅ Migrations applied")
	return nil
}

func (a *App) initTelegramBot(ctx context.Context) error {
	bot, err := a.serviceProvider.TelegramBot(ctx)
	if err != nil {
		return err
	}
	a.bot = bot
	return nil
}

func (a *App) runUpdatesLoop(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)
	log.Println("🤖 Bot is running... (Press Ctrl+C to stop)")

	botHandler := a.serviceProvider.BotHandler(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️  Shutting down gracefully...")
			a.bot.StopReceivingUpdates()
			return ctx.Err()

		case update := <-updates:
			if update.Message == nil {
				continue
			}
			log.Printf("📨 Message from %d: %s", update.Message.From.ID, update.Message.Text)

			if update.Message.IsCommand() {
				switch update.Message.Command() {
				case "start":
					botHandler.HandleStart(update.Message)
				case "help":
					botHandler.HandleHelp(update.Message)
				case "balance":
					botHandler.HandleBalance(update.Message)
				case "history":
					botHandler.HandleHistory(update.Message)
				case "budget":
					botHandler.HandleBudget(update.Message)
				case "report":
					botHandler.HandleReport(update.Message)
				case "analyze":
					botHandler.HandleAnalyze(update.Message)
				default:
					botHandler.HandleUnknownCommand(update.Message)
				}
			} else {
				botHandler.HandleTextMessage(update.Message)
			}
		}
	}
}
