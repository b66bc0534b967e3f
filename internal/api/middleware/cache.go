package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodieshare/recipe-service/internal/api/metrics"
	"github.com/foodieshare/recipe-service/internal/infrastructure/db/redis"
)

// Cache serves GET responses from the response cache keyed by method+path
// (query string included) and stores successful responses with the given TTL.
// Cache failures degrade to pass-through; they never fail the request.
func Cache(cache *redis.ResponseCache, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cache.Key(c.Request().Method, c.Request().RequestURI)

			payload, err := cache.Get(ctx, key)
			switch {
			case err == nil:
				metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
				return c.JSONBlob(http.StatusOK, payload)
			case errors.Is(err, redis.ErrCacheMiss):
				metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
			default:
				metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
			}

			// Capture the rendered body so it can be stored after the handler runs.
			buf := new(bytes.Buffer)
			writer := c.Response().Writer
			c.Response().Writer = &captureWriter{ResponseWriter: writer, body: buf}

			if err := next(c); err != nil {
				c.Response().Writer = writer
				return err
			}
			c.Response().Writer = writer

			if c.Response().Status == http.StatusOK && buf.Len() > 0 {
				// Best effort; a failed store just means the next request recomputes.
				_ = cache.Set(ctx, key, buf.Bytes(), ttl)
			}
			return nil
		}
	}
}

// Invalidate drops cached entries matching pattern after a successful
// mutating request, so list pages never serve stale data past a write.
func Invalidate(cache *redis.ResponseCache, pattern string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status < http.StatusBadRequest {
				_ = cache.InvalidatePattern(c.Request().Context(), pattern)
			}
			return nil
		}
	}
}

type captureWriter struct {
	http.ResponseWriter
	body io.Writer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if n, err := w.body.Write(b); err != nil {
		return n, err
	}
	return w.ResponseWriter.Write(b)
}
