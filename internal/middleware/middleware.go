// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAACyberV99/VibeFlix/pkg/logger"
	"github.com/SAACyberV99/VibeFlix/pkg/ratelimiter"
)

// gzipResponseWriter starts compressing on the first body write, so bodiless
// responses such as 304 go out untouched.
type gzipResponseWriter struct {
	gin.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if w.gzipWriter == nil {
		w.Header().Del("Content-Length")
		w.Header().Set("Content-Encoding", "gzip")
		w.gzipWriter = gzip.NewWriter(w.ResponseWriter)
	}
	return w.gzipWriter.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *gzipResponseWriter) close() error {
	if w.gzipWriter == nil {
		return nil
	}
	return w.gzipWriter.Close()
}

func Gzip() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		gw := &gzipResponseWriter{ResponseWriter: c.Writer}
		c.Writer = gw
		defer gw.close()

		c.Next()
	}
}

// SecureHeaders sets the headers every HTML response should carry.
func SecureHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "same-origin")
		c.Next()
	}
}

// Recover turns a panic into a 500 and logs it.
func Recover(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Errorf("[HTTP] panic serving %s: %v", c.Request.URL.Path, err)
				c.Header("Connection", "close")
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// RateLimit rejects clients that exceed their token bucket with 429.
func RateLimit(limiter ratelimiter.RateLimiter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.Allow(ip) {
			log.Warnf("[HTTP] rate limit exceeded for %s", ip)
			c.Header("Retry-After", "1")
			c.String(http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}

func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}
		line := fmt.Sprintf("[HTTP] %s %s %d %v %s", c.ClientIP(), c.Request.Method, statusCode, latency, path)

		switch {
		case statusCode >= 500:
			log.Error(line)
		case statusCode >= 400:
			log.Warn(line)
		default:
			log.Info(line)
		}
	}
}
