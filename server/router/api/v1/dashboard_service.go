package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/smartstudy/server/service/dashboard"
)

// GetDashboard returns the assembled dashboard of a user.
// GET /api/v1/users/:user/dashboard
func (s *APIV1Service) GetDashboard(c echo.Context) error {
	data, err := s.Dashboard.GetDashboardData(c.Request().Context(), c.Param("user"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}

func (s *APIV1Service) GetUserStatistics(c echo.Context) error {
	stats, err := s.Dashboard.GetUserStatistics(c.Request().Context(), c.Param("user"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// UpdateUserStatistics patches the statistics of a user.
// PATCH /api/v1/users/:user/statistics
func (s *APIV1Service) UpdateUserStatistics(c echo.Context) error {
	var patch dashboard.StatisticsPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	stats, err := s.Dashboard.UpdateUserStatistics(c.Request().Context(), c.Param("user"), &patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

type studyTimeRequest struct {
	Minutes int `json:"minutes"`
}

// LogStudyTime adds study minutes.
// POST /api/v1/users/:user/study-time
func (s *APIV1Service) LogStudyTime(c echo.Context) error {
	var req studyTimeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	stats, err := s.Dashboard.LogStudyTime(c.Request().Context(), c.Param("user"), req.Minutes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
