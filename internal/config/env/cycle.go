package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ozodbekov/cashbot/internal/config"
)

const (
	cycleDayEnvName  = "CYCLE_DAY"
	cycleHourEnvName = "CYCLE_HOUR"

	defaultCycleDay  = 1
	defaultCycleHour = 9
)

type cycleConfig struct {
	day  int
	hour int
}

// NewCycleConfig читает день месяца и час запуска месячного цикла.
// День ограничен 1..28, чтобы цикл срабатывал в любом месяце.
func NewCycleConfig() (config.CycleConfig, error) {
	day := defaultCycleDay
	if v := os.Getenv(cycleDayEnvName); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 28 {
			return nil, fmt.Errorf("CYCLE_DAY must be 1..28, got %q", v)
		}
		day = parsed
	}

	hour := defaultCycleHour
	if v := os.Getenv(cycleHourEnvName); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 23 {
			return nil, fmt.Errorf("CYCLE_HOUR must be 0..23, got %q", v)
		}
		hour = parsed
	}

	return &cycleConfig{day: day, hour: hour}, nil
}

func (cfg *cycleConfig) Day() int {
	return cfg.day
}

func (cfg *cycleConfig) Hour() int {
	return cfg.hour
}
