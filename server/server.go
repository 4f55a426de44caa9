package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/smartstudy/internal/profile"
	"github.com/hrygo/smartstudy/plugin/notification"
	"github.com/hrygo/smartstudy/server/internal/observability"
	"github.com/hrygo/smartstudy/server/middleware"
	apiv1 "github.com/hrygo/smartstudy/server/router/api/v1"
	"github.com/hrygo/smartstudy/server/service/audio"
	"github.com/hrygo/smartstudy/server/service/dashboard"
	"github.com/hrygo/smartstudy/server/service/question"
	"github.com/hrygo/smartstudy/server/timezone"
	"github.com/hrygo/smartstudy/store"
)

// DemoUserID is the user whose reminders are armed in demo mode.
const DemoUserID = "user1"

// NewLogger builds the process logger for mode: JSON in prod, text otherwise.
func NewLogger(w io.Writer, mode string) *slog.Logger {
	return observability.NewLogger(w, mode)
}

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	api        *apiv1.APIV1Service
	logger     *slog.Logger
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Store:   store,
		Profile: profile,
		logger:  slog.Default(),
	}

	loc, err := timezone.Parse(profile.Timezone)
	if err != nil {
		return nil, err
	}

	repo, err := question.New(ctx, question.Options{Storage: s.questionStorage()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create question repository")
	}

	api := apiv1.NewAPIV1Service(profile, repo)
	api.Metrics = observability.NewMetrics()
	api.Dashboard = dashboard.NewService(store, profile.DashboardCacheTTL)
	api.Dashboard.SetLocation(loc)
	api.Audio = audio.NewService(store)
	if profile.NotificationsEnabled {
		s.wireNotifications(api, repo)
		api.Scheduler.SetLocation(loc)
	}
	s.api = api

	echoServer := echo.New()
	echoServer.Debug = true
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.HTTPErrorHandler = apiv1.HTTPErrorHandler(s.logger)
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(middleware.RequestLogger(s.logger, api.Metrics))
	echoServer.Use(middleware.RateLimit(
		middleware.NewRateLimiter(profile.RateLimitPerSecond, profile.RateLimitBurst),
		api.Metrics,
	))
	api.RegisterRoutes(echoServer)
	s.echoServer = echoServer

	return s, nil
}

// questionStorage keeps favorites and study history in the database when one
// is configured, and in the JSON storage file otherwise.
func (s *Server) questionStorage() question.LocalStorage {
	if s.Profile.HasDatabase() || s.Profile.StorageFile == "" {
		return question.NewStoreStorage(s.Store)
	}
	return question.NewFileStorage(s.Profile.StorageFile)
}

func (s *Server) wireNotifications(api *apiv1.APIV1Service, repo *question.Repository) {
	dispatcher := notification.NewDispatcher()
	dispatcher.Register(notification.ChannelLog, notification.NewLogSender(s.logger))

	inbox := notification.NewAppSender(s.Store)
	dispatcher.Register(notification.ChannelApp, inbox)
	api.Inbox = inbox

	if s.Profile.WebhookURL != "" {
		dispatcher.Register(notification.ChannelWebhook, notification.NewWebhookSender(notification.WebhookConfig{
			URL:    s.Profile.WebhookURL,
			Secret: s.Profile.WebhookSecret,
		}))
	}

	due := apiv1.DueQuestions(repo)
	api.Notifications = notification.NewService(dispatcher, due, notification.Config{
		Progress: weeklyProgress(api.Dashboard),
	})
	api.Scheduler = notification.NewScheduler(api.Notifications, due)
}

// weeklyProgress reports the weekly study minutes against the weekly goal.
func weeklyProgress(d *dashboard.Service) notification.ProgressFunc {
	return func(ctx context.Context, userID string) (int, int, error) {
		stats, err := d.GetUserStatistics(ctx, userID)
		if err != nil {
			return 0, 0, err
		}
		return stats.WeeklyProgress, stats.WeeklyGoal, nil
	}
}

func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}

	if s.Profile.IsDemo() && s.api.Scheduler != nil && len(s.Profile.ReminderTimes) > 0 {
		if err := s.api.Scheduler.SchedulePeriodicStudy(DemoUserID, s.Profile.ReminderTimes); err != nil {
			return errors.Wrap(err, "failed to schedule reminders")
		}
	}

	go func() {
		s.echoServer.Listener = listener
		if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
			s.logger.Error("failed to start echo server", "error", err)
		}
	}()
	s.logger.InfoContext(ctx, "server started", "address", listener.Addr().String(), "mode", s.Profile.Mode)
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.api.Scheduler != nil {
		s.api.Scheduler.Stop()
	}

	// Shutdown echo server.
	if err := s.echoServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", "error", err)
	}

	if err := s.api.Questions.Close(ctx); err != nil {
		s.logger.Error("failed to save study state", "error", err)
	}
	if err := s.api.Dashboard.Close(); err != nil {
		s.logger.Error("failed to close dashboard", "error", err)
	}

	// Close database connection.
	if err := s.Store.Close(); err != nil {
		s.logger.Error("failed to close database", "error", err)
	}

	s.logger.Info("server stopped properly")
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}
