package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/pkg/response"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type CheckResult struct {
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type HealthReport struct {
	Status     string                 `json:"status"`
	DurationMS int64                  `json:"duration_ms"`
	Checks     map[string]CheckResult `json:"checks"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type HealthHandler struct {
	Checks  []HealthCheck
	Timeout time.Duration
	Logger  *logrus.Logger
}

func NewHealthHandler(logger *logrus.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{Checks: checks, Timeout: 2 * time.Second, Logger: logger}
}

// Run executes every check in order, each bounded by Timeout.
func (h *HealthHandler) Run(ctx context.Context) HealthReport {
	start := time.Now()
	report := HealthReport{Status: StatusHealthy, Checks: make(map[string]CheckResult, len(h.Checks))}
	for _, chk := range h.Checks {
		t := time.Now()
		c, cancel := context.WithTimeout(ctx, h.Timeout)
		err := chk.Ping(c)
		cancel()

		res := CheckResult{Status: StatusHealthy, DurationMS: time.Since(t).Milliseconds()}
		if err != nil {
			res.Status = StatusUnhealthy
			res.Error = err.Error()
			report.Status = StatusUnhealthy
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("check", chk.Name).Warn("health check failed")
			}
		}
		report.Checks[chk.Name] = res
	}
	report.DurationMS = time.Since(start).Milliseconds()
	return report
}

func (h *HealthHandler) Health(c *gin.Context) {
	report := h.Run(c.Request.Context())
	status, msg := http.StatusOK, "service is healthy"
	if report.Status != StatusHealthy {
		status, msg = http.StatusServiceUnavailable, "service is unhealthy"
	}
	resp := response.Success(c, status, report, msg, nil)
	resp.Success = status == http.StatusOK
	response.Send(c, resp)
}
