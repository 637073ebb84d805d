package config

import (
	"github.com/joho/godotenv"
)

type PGConfig interface {
	DSN() string
}

type BotConfig interface {
	Token() string
	Debug() bool
}

type GeminiConfig interface {
	APIKey() string
	Model() string
}

// CycleConfig - день и час месячного цикла (отчет + архивация)
type CycleConfig interface {
	Day() int
	Hour() int
}

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}
