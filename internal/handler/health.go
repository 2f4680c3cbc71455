package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/code2244/bloglist/internal/middleware"
	"github.com/code2244/bloglist/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var errNotConnected = errors.New("not connected")

// HealthHandler reports whether the process is up and its dependencies
// answer.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// dependencyCheck pings one dependency. required marks dependencies whose
// failure makes the whole service unhealthy.
type dependencyCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

func (h *HealthHandler) dependencyChecks() []dependencyCheck {
	var checks []dependencyCheck

	for _, name := range h.server.Config.Observability.HealthChecks.Checks {
		switch name {
		case "database":
			checks = append(checks, dependencyCheck{
				name:     name,
				required: true,
				ping: func(ctx context.Context) error {
					if h.server.DB == nil {
						return errNotConnected
					}
					return h.server.DB.Ping(ctx)
				},
			})
		case "redis":
			// Redis is optional; skip the check when it was never connected.
			if h.server.Redis == nil {
				continue
			}
			checks = append(checks, dependencyCheck{
				name: name,
				ping: func(ctx context.Context) error {
					return h.server.Redis.Ping(ctx).Err()
				},
			})
		}
	}

	return checks
}

// CheckHealth returns 200 when every required dependency answers and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	healthCfg := h.server.Config.Observability.HealthChecks

	if healthCfg.Enabled {
		for _, check := range h.dependencyChecks() {
			if err := h.runCheck(c.Request().Context(), &logger, check, healthCfg.Timeout, checks); err != nil && check.required {
				isHealthy = false
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) runCheck(
	parent context.Context,
	logger *zerolog.Logger,
	check dependencyCheck,
	timeout time.Duration,
	results map[string]interface{},
) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := check.ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		results[check.name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Str("check", check.name).
			Dur("response_time", elapsed).
			Msg("dependency health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":       check.name,
			"operation":        "health_check",
			"error_type":       check.name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return err
	}

	results[check.name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	return nil
}

func (h *HealthHandler) recordHealthEvent(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
