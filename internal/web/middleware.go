package web

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// untracked are path prefixes that never count as page views.
var untracked = []string{"/static/", "/images/", "/audio/", "/assets/", "/metrics", "/healthz", "/favicon"}

// countPageViews counts requests per route. Assets are skipped and the Do
// Not Track header is respected. Nothing about the visitor is recorded.
func (s *Server) countPageViews() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untracked {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.PageViews.WithLabelValues(route).Inc()
		c.Next()
	}
}
