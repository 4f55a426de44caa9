package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where smartstudy stores its own data
	DSN string
	// Driver is the database driver (sqlite, postgres or memory)
	Driver string
	// Version is the current version of server
	Version string
	// StorageFile is the JSON file used for favorites and study history when no database is configured.
	StorageFile string

	// Notification configuration
	NotificationsEnabled bool     // SMARTSTUDY_NOTIFICATIONS_ENABLED (default: true)
	ReminderTimes        []string // SMARTSTUDY_REMINDER_TIMES, comma separated HH:MM
	WebhookURL           string   // SMARTSTUDY_WEBHOOK_URL
	WebhookSecret        string   // SMARTSTUDY_WEBHOOK_SECRET

	// HTTP rate limiting
	RateLimitPerSecond float64 // SMARTSTUDY_RATE_LIMIT_RPS (default: 10)
	RateLimitBurst     int     // SMARTSTUDY_RATE_LIMIT_BURST (default: 20)

	DashboardCacheTTL time.Duration // SMARTSTUDY_DASHBOARD_CACHE_TTL (default: 1m)

	// Timezone is the IANA zone of study days and reminder times (default: UTC).
	Timezone string // SMARTSTUDY_TIMEZONE
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

func (p *Profile) IsDemo() bool {
	return p.Mode == "demo"
}

// HasDatabase reports whether a SQL driver backs the store.
func (p *Profile) HasDatabase() bool {
	return p.Driver == DriverSQLite || p.Driver == DriverPostgres
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads the notification and limit settings from SMARTSTUDY_* variables.
// Values already set on the profile are kept when the variable is absent.
func (p *Profile) FromEnv() {
	if v := os.Getenv("SMARTSTUDY_NOTIFICATIONS_ENABLED"); v != "" {
		p.NotificationsEnabled = v == "true"
	}
	if v := os.Getenv("SMARTSTUDY_REMINDER_TIMES"); v != "" {
		p.ReminderTimes = SplitList(v)
	}
	p.WebhookURL = getEnvOrDefault("SMARTSTUDY_WEBHOOK_URL", p.WebhookURL)
	p.WebhookSecret = getEnvOrDefault("SMARTSTUDY_WEBHOOK_SECRET", p.WebhookSecret)
	p.Timezone = getEnvOrDefault("SMARTSTUDY_TIMEZONE", p.Timezone)

	if v, err := strconv.ParseFloat(os.Getenv("SMARTSTUDY_RATE_LIMIT_RPS"), 64); err == nil && v > 0 {
		p.RateLimitPerSecond = v
	}
	if v, err := strconv.Atoi(os.Getenv("SMARTSTUDY_RATE_LIMIT_BURST")); err == nil && v > 0 {
		p.RateLimitBurst = v
	}
	if v, err := time.ParseDuration(os.Getenv("SMARTSTUDY_DASHBOARD_CACHE_TTL")); err == nil && v > 0 {
		p.DashboardCacheTTL = v
	}
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(value string) []string {
	var list []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid time of day %q", value)
	}
	return t.Hour(), t.Minute(), nil
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "smartstudy")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/smartstudy"
		}
	}
	if p.Data == "" {
		p.Data = "."
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver == "" {
		p.Driver = DriverSQLite
	}
	switch p.Driver {
	case DriverSQLite:
		if p.DSN == "" {
			p.DSN = filepath.Join(dataDir, fmt.Sprintf("smartstudy_%s.db", p.Mode))
		}
	case DriverPostgres:
		if p.DSN == "" {
			return errors.New("dsn is required for the postgres driver")
		}
	case DriverMemory:
		if p.StorageFile == "" {
			p.StorageFile = filepath.Join(dataDir, fmt.Sprintf("smartstudy_%s.json", p.Mode))
		}
	default:
		return errors.Errorf("unknown driver %q: only 'sqlite', 'postgres' and 'memory' are supported", p.Driver)
	}

	for _, t := range p.ReminderTimes {
		if _, _, err := ParseClock(t); err != nil {
			return errors.Wrap(err, "invalid reminder time")
		}
	}

	if p.RateLimitPerSecond <= 0 {
		p.RateLimitPerSecond = 10
	}
	if p.RateLimitBurst <= 0 {
		p.RateLimitBurst = 20
	}
	if p.DashboardCacheTTL <= 0 {
		p.DashboardCacheTTL = time.Minute
	}
	return nil
}
