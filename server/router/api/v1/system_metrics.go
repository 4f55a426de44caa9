package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/smartstudy/server/internal/errors"
	"github.com/hrygo/smartstudy/server/internal/observability"
)

// MetricsOverviewResponse is the request metrics overview.
type MetricsOverviewResponse struct {
	*observability.MetricsSnapshot
	SuccessRate float64 `json:"successRate"`
}

// GetSystemMetrics returns the in-process request metrics.
// GET /api/v1/system/metrics
func (s *APIV1Service) GetSystemMetrics(c echo.Context) error {
	if s.Metrics == nil {
		return apperrors.ServiceUnavailable("metrics are not enabled")
	}
	snapshot := s.Metrics.Snapshot()
	return c.JSON(http.StatusOK, MetricsOverviewResponse{
		MetricsSnapshot: snapshot,
		SuccessRate:     snapshot.SuccessRate(),
	})
}
