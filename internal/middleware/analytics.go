package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/bizbooks_backend/internal/utils/analytics"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health": true,
}

// AnalyticsMiddleware records one event per successful authenticated request,
// named after the matched route, e.g. "/api/v1/reports/day-book" -> "api_v1_reports_day-book".
func AnalyticsMiddleware(client *analytics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}
		eventName := EventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}
		client.Enqueue(userID, eventName, props)
	}
}

// EventName turns a route template into an event name.
func EventName(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/")
	name = strings.ReplaceAll(name, "/:", "_by_")
	return strings.ReplaceAll(name, "/", "_")
}
