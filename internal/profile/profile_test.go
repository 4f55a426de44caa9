package profile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFromEnv(t *testing.T) {
	t.Setenv("SMARTSTUDY_NOTIFICATIONS_ENABLED", "true")
	t.Setenv("SMARTSTUDY_REMINDER_TIMES", "08:00, 19:30,,")
	t.Setenv("SMARTSTUDY_WEBHOOK_URL", "http://hooks.local/study")
	t.Setenv("SMARTSTUDY_RATE_LIMIT_RPS", "2.5")
	t.Setenv("SMARTSTUDY_RATE_LIMIT_BURST", "4")
	t.Setenv("SMARTSTUDY_DASHBOARD_CACHE_TTL", "30s")

	p := &Profile{}
	p.FromEnv()

	assert.True(t, p.NotificationsEnabled)
	assert.Equal(t, []string{"08:00", "19:30"}, p.ReminderTimes)
	assert.Equal(t, "http://hooks.local/study", p.WebhookURL)
	assert.Equal(t, 2.5, p.RateLimitPerSecond)
	assert.Equal(t, 4, p.RateLimitBurst)
	assert.Equal(t, 30*time.Second, p.DashboardCacheTTL)
}

func TestProfileFromEnvKeepsExisting(t *testing.T) {
	t.Setenv("SMARTSTUDY_NOTIFICATIONS_ENABLED", "")
	t.Setenv("SMARTSTUDY_RATE_LIMIT_RPS", "not-a-number")

	p := &Profile{NotificationsEnabled: true, RateLimitPerSecond: 7}
	p.FromEnv()

	assert.True(t, p.NotificationsEnabled)
	assert.Equal(t, 7.0, p.RateLimitPerSecond)
}

func TestProfileValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		profile Profile
		wantErr bool
		check   func(t *testing.T, p *Profile)
	}{
		{
			name:    "unknown mode falls back to demo",
			profile: Profile{Mode: "staging", Data: dir},
			check: func(t *testing.T, p *Profile) {
				assert.Equal(t, "demo", p.Mode)
				assert.Equal(t, DriverSQLite, p.Driver)
				assert.Equal(t, filepath.Join(dir, "smartstudy_demo.db"), p.DSN)
			},
		},
		{
			name:    "memory driver gets a storage file",
			profile: Profile{Mode: "dev", Data: dir, Driver: DriverMemory},
			check: func(t *testing.T, p *Profile) {
				assert.Equal(t, filepath.Join(dir, "smartstudy_dev.json"), p.StorageFile)
				assert.Equal(t, 10.0, p.RateLimitPerSecond)
				assert.Equal(t, 20, p.RateLimitBurst)
				assert.Equal(t, time.Minute, p.DashboardCacheTTL)
			},
		},
		{
			name:    "postgres requires dsn",
			profile: Profile{Mode: "prod", Data: dir, Driver: DriverPostgres},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			profile: Profile{Mode: "dev", Data: dir, Driver: "mysql"},
			wantErr: true,
		},
		{
			name:    "missing data dir",
			profile: Profile{Mode: "dev", Data: filepath.Join(dir, "missing")},
			wantErr: true,
		},
		{
			name:    "bad reminder time",
			profile: Profile{Mode: "dev", Data: dir, ReminderTimes: []string{"25:00"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.profile
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, &p)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock(" 07:05 ")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	_, _, err = ParseClock("7h")
	assert.Error(t, err)
}
