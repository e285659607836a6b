package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	LogLevel              string
	Environment           string
	StorageDriver         string
	ScheduleFile          string
	StorageDSN            string
	Timezone              string
	TimezoneFallbackHours int
	LeadDays              int
	RosterNames           []string // from ROSTER_FILE or ROSTER; empty means the built-in roster
	CronSpecReminder      string   // For the daily remind-today run in serve mode
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER")))
	switch cfg.StorageDriver {
	case "":
		cfg.StorageDriver = DriverFile
	case DriverFile, DriverPostgres:
	case "sqlite3":
		cfg.StorageDriver = DriverSQLite
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.StorageDriver)
	}

	cfg.ScheduleFile = os.Getenv("SCHEDULE_FILE")
	if cfg.ScheduleFile == "" {
		cfg.ScheduleFile = "escala.json"
	}

	cfg.StorageDSN = os.Getenv("STORAGE_DSN")
	if cfg.StorageDSN == "" && cfg.StorageDriver == DriverPostgres {
		cfg.StorageDSN = os.Getenv("DATABASE_URL")
	}
	if cfg.StorageDSN == "" && cfg.StorageDriver != DriverFile {
		return nil, fmt.Errorf("STORAGE_DSN is not set (required for STORAGE_DRIVER=%s)", cfg.StorageDriver)
	}

	cfg.Timezone = os.Getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Sao_Paulo"
	}

	cfg.TimezoneFallbackHours = -3
	if v := os.Getenv("TIMEZONE_FALLBACK_OFFSET_HOURS"); v != "" {
		cfg.TimezoneFallbackHours, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE_FALLBACK_OFFSET_HOURS: %w", err)
		}
		if cfg.TimezoneFallbackHours < -12 || cfg.TimezoneFallbackHours > 14 {
			return nil, fmt.Errorf("invalid TIMEZONE_FALLBACK_OFFSET_HOURS: %d out of range", cfg.TimezoneFallbackHours)
		}
	}

	cfg.LeadDays = 5
	if v := os.Getenv("REMINDER_LEAD_DAYS"); v != "" {
		cfg.LeadDays, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_LEAD_DAYS: %w", err)
		}
		if cfg.LeadDays < 0 {
			return nil, fmt.Errorf("invalid REMINDER_LEAD_DAYS: %d is negative", cfg.LeadDays)
		}
	}

	if path := os.Getenv("ROSTER_FILE"); path != "" {
		cfg.RosterNames, err = LoadRosterFile(path)
		if err != nil {
			return nil, err
		}
	} else if v := os.Getenv("ROSTER"); v != "" {
		cfg.RosterNames = splitNames(v)
	}

	cfg.CronSpecReminder = os.Getenv("CRON_SPEC_REMINDER")
	if cfg.CronSpecReminder == "" {
		cfg.CronSpecReminder = "0 8 * * *" // Default: 8 AM daily, civil timezone
	}

	return cfg, nil
}

func splitNames(v string) []string {
	parts := strings.Split(v, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
