package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/internal/profile"
	storetest "github.com/hrygo/smartstudy/store/test"
)

func newTestProfile(t *testing.T, mode string) *profile.Profile {
	t.Helper()
	p := &profile.Profile{
		Mode:                 mode,
		Addr:                 "127.0.0.1",
		Data:                 t.TempDir(),
		Driver:               profile.DriverMemory,
		Version:              "test",
		NotificationsEnabled: true,
	}
	require.NoError(t, p.Validate())
	return p
}

func TestServerRoutes(t *testing.T) {
	ctx := context.Background()
	p := newTestProfile(t, "dev")
	s, err := NewServer(ctx, p, storetest.NewTestingStore(ctx, t))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/user1/notifications", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/system/metrics", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/healthz")
}

func TestServerPersistsFavoritesToStorageFile(t *testing.T) {
	ctx := context.Background()
	p := newTestProfile(t, "dev")
	require.Equal(t, filepath.Join(p.Data, "smartstudy_dev.json"), p.StorageFile)

	s, err := NewServer(ctx, p, storetest.NewTestingStore(ctx, t))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/questions/mat-01/favorite", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	s.Shutdown(ctx)

	data, err := os.ReadFile(p.StorageFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mat-01")
}

func TestServerWithoutNotifications(t *testing.T) {
	ctx := context.Background()
	p := newTestProfile(t, "dev")
	p.NotificationsEnabled = false

	s, err := NewServer(ctx, p, storetest.NewTestingStore(ctx, t))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user1/notifications/schedule", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartArmsDemoReminders(t *testing.T) {
	ctx := context.Background()
	p := newTestProfile(t, "demo")
	p.ReminderTimes = []string{"08:00", "19:30"}

	s, err := NewServer(ctx, p, storetest.NewDemoTestingStore(ctx, t))
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	defer s.Shutdown(ctx)

	times := s.api.Scheduler.Scheduled(DemoUserID)
	require.Len(t, times, 2)
	assert.Equal(t, "08:00", times[0].String())
	assert.Equal(t, "19:30", times[1].String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "prod").Info("ready", "port", 8081)
	assert.Contains(t, buf.String(), `"msg":"ready"`)
	assert.Contains(t, buf.String(), `"port":8081`)

	buf.Reset()
	logger := NewLogger(&buf, "dev")
	logger.Debug("tick")
	assert.Contains(t, buf.String(), "msg=tick")
}
