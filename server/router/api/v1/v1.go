// Package v1 serves the JSON API under /api/v1.
package v1

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/smartstudy/internal/profile"
	"github.com/hrygo/smartstudy/plugin/notification"
	apperrors "github.com/hrygo/smartstudy/server/internal/errors"
	"github.com/hrygo/smartstudy/server/internal/observability"
	"github.com/hrygo/smartstudy/server/service/audio"
	"github.com/hrygo/smartstudy/server/service/dashboard"
	"github.com/hrygo/smartstudy/server/service/question"
)

type APIV1Service struct {
	Profile       *profile.Profile
	Questions     *question.Repository
	Dashboard     *dashboard.Service
	Audio         *audio.Service
	Notifications *notification.Service
	Scheduler     *notification.Scheduler
	// Inbox lists in-app notifications; nil when no store backs them.
	Inbox   *notification.AppSender
	Metrics *observability.Metrics

	logger *slog.Logger
}

func NewAPIV1Service(profile *profile.Profile, questions *question.Repository) *APIV1Service {
	return &APIV1Service{
		Profile:   profile,
		Questions: questions,
		logger:    slog.Default(),
	}
}

// RegisterRoutes registers the API routes on e. Services left nil are not routed.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.Healthz)

	g := e.Group("/api/v1")
	g.GET("/system/metrics", s.GetSystemMetrics)

	g.GET("/questions", s.ListQuestions)
	g.GET("/questions/search", s.SearchQuestions)
	g.GET("/questions/:id", s.GetQuestion)
	g.GET("/questions/:id/stats", s.GetQuestionStats)
	g.POST("/questions/:id/favorite", s.ToggleFavorite)
	g.POST("/questions/:id/answers", s.RecordAnswer)
	g.GET("/favorites", s.ListFavorites)
	g.GET("/categories", s.ListCategories)
	g.GET("/categories/:id/questions", s.ListQuestionsByCategory)
	g.GET("/tags", s.ListTags)
	g.GET("/tags/:tag/questions", s.ListQuestionsByTag)
	g.POST("/recommendations", s.GetStudyRecommendations)
	g.POST("/sessions", s.StartStudySession)
	g.GET("/sessions/:id", s.GetStudySession)
	g.POST("/sessions/:id/end", s.EndStudySession)
	g.GET("/users/:user/sessions", s.ListStudySessions)
	g.GET("/users/:user/periodic-study", s.GetPeriodicStudy)

	if s.Dashboard != nil {
		g.GET("/users/:user/dashboard", s.GetDashboard)
		g.GET("/users/:user/statistics", s.GetUserStatistics)
		g.PATCH("/users/:user/statistics", s.UpdateUserStatistics)
		g.POST("/users/:user/study-time", s.LogStudyTime)
	}

	if s.Audio != nil {
		g.GET("/users/:user/recordings", s.ListRecordings)
		g.GET("/users/:user/recordings/stats", s.GetRecordingStats)
		g.GET("/users/:user/recordings/feed", s.GetRecordingFeed)
		g.POST("/users/:user/recordings/start", s.StartRecording)
		g.POST("/recordings/sessions/:handle/stop", s.StopRecording)
		g.PATCH("/recordings/:id", s.SaveRecordingMetadata)
		g.DELETE("/recordings/:id", s.DeleteRecording)
	}

	if s.Notifications != nil {
		g.GET("/users/:user/notifications", s.ListNotifications)
		g.POST("/users/:user/notifications/permission", s.RequestNotificationPermission)
		g.POST("/users/:user/notifications/test", s.TestNotification)
		g.POST("/users/:user/notifications/smart", s.SetupSmartNotifications)
	}
	if s.Scheduler != nil {
		g.GET("/users/:user/notifications/schedule", s.GetNotificationSchedule)
		g.POST("/users/:user/notifications/schedule", s.ScheduleNotifications)
		g.DELETE("/users/:user/notifications/schedule", s.CancelNotificationSchedule)
	}
}

// Healthz reports liveness.
func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": s.Profile.Version})
}

type errorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// HTTPErrorHandler renders every handler error as {"error": {"code", "message"}}.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		appErr := toAppError(err)
		status := appErr.Code.HTTPStatus()
		if status >= http.StatusInternalServerError {
			observability.LoggerFromContext(c.Request().Context(), logger).Error("request error",
				slog.String(observability.LogFieldErrorCode, string(appErr.Code)),
				slog.String("error", err.Error()),
			)
		}

		body := map[string]errorBody{"error": {Code: appErr.Code, Message: appErr.Message}}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}

// toAppError maps domain errors onto API error codes.
func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		switch httpErr.Code {
		case http.StatusNotFound:
			return &apperrors.AppError{Code: apperrors.ErrCodeNotFound, Message: message}
		case http.StatusTooManyRequests:
			return apperrors.RateLimitExceeded(message)
		case http.StatusServiceUnavailable:
			return apperrors.ServiceUnavailable(message)
		}
		if httpErr.Code < http.StatusInternalServerError {
			return apperrors.InvalidArgument(message)
		}
		return apperrors.Internal(message, err)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return apperrors.ContextCanceled(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("operation timed out")
	case errors.Is(err, question.ErrQuestionNotFound),
		errors.Is(err, dashboard.ErrStatisticsNotFound),
		errors.Is(err, audio.ErrRecordingNotFound),
		errors.Is(err, audio.ErrSessionNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, err.Error())
	case errors.Is(err, question.ErrInvalidExpression),
		errors.Is(err, dashboard.ErrInvalidMinutes),
		errors.Is(err, audio.ErrUnsupportedFeedFormat),
		errors.Is(err, notification.ErrInvalidTime):
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidArgument, err.Error())
	case errors.Is(err, notification.ErrSchedulerStopped):
		return apperrors.Wrap(err, apperrors.ErrCodeServiceUnavailable, err.Error())
	}
	return apperrors.Internal("internal error", err)
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidArgument, "invalid request body")
	}
	return nil
}
