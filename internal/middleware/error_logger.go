package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorLogger logs 4xx and 5xx responses with request context. Client
// errors log at Warn, server errors at Error.
type ErrorLogger struct {
	logger *logrus.Logger
}

// NewErrorLogger creates the response logging middleware
func NewErrorLogger(logger *logrus.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Handle logs failed responses after the rest of the chain runs
func (e *ErrorLogger) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()

		err := c.Next()

		statusCode := c.Response().StatusCode()
		if statusCode < 400 {
			return err
		}

		logFields := logrus.Fields{
			"status_code": statusCode,
			"method":      c.Method(),
			"path":        c.Path(),
			"ip":          clientIP(c),
			"request_id":  c.Get("X-Request-ID"),
			"duration_ms": time.Since(startTime).Milliseconds(),
		}

		if userID := GetUserID(c); userID != "" {
			logFields["user_id"] = userID
		}

		responseBody := string(c.Response().Body())
		if len(responseBody) > 500 {
			responseBody = responseBody[:500] + "...(truncated)"
		}
		if len(responseBody) > 0 {
			logFields["response_body"] = responseBody
		}

		logEntry := e.logger.WithFields(logFields)
		if statusCode >= 500 {
			if err != nil {
				logEntry = logEntry.WithError(err)
			}
			logEntry.Error("Server error response")
		} else {
			logEntry.Warn("Client error response")
		}

		return err
	}
}
