package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/smartstudy/plugin/notification"
	apperrors "github.com/hrygo/smartstudy/server/internal/errors"
	"github.com/hrygo/smartstudy/server/service/question"
)

// DueQuestions feeds the questions due for review in repo to notifications.
func DueQuestions(repo *question.Repository) notification.QuestionProvider {
	return notification.QuestionProviderFunc(func(userID string, limit int) []notification.StudyQuestion {
		due := repo.GetQuestionsForPeriodicStudy(userID, limit)
		list := make([]notification.StudyQuestion, 0, len(due))
		for _, q := range due {
			list = append(list, notification.StudyQuestion{ID: q.ID, Category: q.Category})
		}
		return list
	})
}

// ListNotifications returns the in-app inbox of a user.
// GET /api/v1/users/:user/notifications[?unread=true&limit=]
func (s *APIV1Service) ListNotifications(c echo.Context) error {
	if s.Inbox == nil {
		return apperrors.FailedPrecondition("in-app notifications are not enabled")
	}
	unread := c.QueryParam("unread") == "true"
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return apperrors.InvalidArgument("limit must be a non-negative integer")
		}
		limit = n
	}
	list, err := s.Inbox.Inbox(c.Request().Context(), c.Param("user"), unread, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"notifications": list})
}

// RequestNotificationPermission asks the senders for permission.
// POST /api/v1/users/:user/notifications/permission
func (s *APIV1Service) RequestNotificationPermission(c echo.Context) error {
	ctx := c.Request().Context()
	granted := s.Notifications.RequestPermission(ctx)
	return c.JSON(http.StatusOK, map[string]any{
		"granted":    granted,
		"permission": s.Notifications.Permission(ctx),
	})
}

func (s *APIV1Service) TestNotification(c echo.Context) error {
	sent := s.Notifications.TestNotification(c.Request().Context(), c.Param("user"))
	return c.JSON(http.StatusOK, map[string]bool{"sent": sent})
}

func (s *APIV1Service) SetupSmartNotifications(c echo.Context) error {
	s.Notifications.SetupSmartNotifications(c.Request().Context(), c.Param("user"))
	return c.NoContent(http.StatusNoContent)
}

type scheduleRequest struct {
	Times []string `json:"times"`
}

type scheduleResponse struct {
	Times []string `json:"times"`
}

func (s *APIV1Service) scheduleOf(userID string) scheduleResponse {
	times := make([]string, 0)
	for _, t := range s.Scheduler.Scheduled(userID) {
		times = append(times, t.String())
	}
	return scheduleResponse{Times: times}
}

func (s *APIV1Service) GetNotificationSchedule(c echo.Context) error {
	return c.JSON(http.StatusOK, s.scheduleOf(c.Param("user")))
}

// ScheduleNotifications replaces the daily reminder times of a user.
// POST /api/v1/users/:user/notifications/schedule
func (s *APIV1Service) ScheduleNotifications(c echo.Context) error {
	var req scheduleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	userID := c.Param("user")
	if err := s.Scheduler.SchedulePeriodicStudy(userID, req.Times); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.scheduleOf(userID))
}

func (s *APIV1Service) CancelNotificationSchedule(c echo.Context) error {
	s.Scheduler.Cancel(c.Param("user"))
	return c.NoContent(http.StatusNoContent)
}
