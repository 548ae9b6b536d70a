package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs each request with its method, path, status and latency
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			log.WithFields(fields).Error(c.Errors.String())
			return
		}
		if c.Writer.Status() >= 500 {
			log.WithFields(fields).Error("request failed")
			return
		}
		log.WithFields(fields).Info("request handled")
	}
}
