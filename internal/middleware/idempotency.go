package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// IdempotencyHeader carries a client-chosen key for retry-safe POSTs.
const IdempotencyHeader = "Idempotency-Key"

// IdempotencyStore claims keys for a limited time.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Idempotency rejects a repeated Idempotency-Key with 409. A request without the header,
// or a nil store, passes through. A key whose request failed is released so the client can retry.
func Idempotency(store IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if store == nil || key == "" {
			c.Next()
			return
		}
		logger := GetLoggerFromCtx(c.Request.Context())

		// Keys are scoped to the concrete path and the caller, so /x/a and /x/b never collide.
		userID, _ := GetUserIDFromContext(c)
		scoped := c.Request.Method + " " + c.Request.URL.Path + ":" + userID + ":" + key

		claimed, err := store.Claim(c.Request.Context(), scoped, ttl)
		if err != nil {
			// Redis outage should not block writes; the DB constraints still hold.
			logger.Error("Idempotency store unavailable", slog.String("error", err.Error()))
			c.Next()
			return
		}
		if !claimed {
			logger.Warn("Duplicate idempotency key", slog.String("key", key))
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A request with this Idempotency-Key was already processed"})
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(context.WithoutCancel(c.Request.Context()), scoped); err != nil {
				logger.Warn("Failed to release idempotency key", slog.String("error", err.Error()))
			}
		}
	}
}
