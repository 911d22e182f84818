package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	appctx "github.com/PnBafon/viten-backend/internal/core/context"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

const HeaderIdempotencyKey = "X-Idempotency-Key"
const maxIdempotencyBodyBytes = 1 << 20 // 1 MiB

// Idempotency middleware protects against duplicate requests. A seller
// double-tapping "record sale" on a flaky connection must not drain stock
// twice, so sale routes replay the first response for a reused key.
func Idempotency(store *postgres.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}

		userID := ""
		if user := appctx.GetUser(c.Request.Context()); user != nil {
			userID = strconv.FormatInt(user.UserID, 10)
		}

		limited := io.LimitReader(c.Request.Body, maxIdempotencyBodyBytes+1)
		body, _ := io.ReadAll(limited)
		if len(body) > maxIdempotencyBodyBytes {
			appErr := apperror.NewValidation("request body too large for idempotency")
			appErr.HTTPStatus = http.StatusRequestEntityTooLarge
			_ = c.Error(appErr.WithDetail("max_bytes", maxIdempotencyBodyBytes))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])

		operation := c.Request.Method + " " + c.FullPath()

		replay, err := store.AcquireKey(c.Request.Context(), key, userID, operation, requestHash)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				_ = c.Error(appErr)
				c.Abort()
				return
			}
			_ = c.Error(apperror.NewInternal(err).WithDetail("component", "idempotency"))
			c.Abort()
			return
		}

		if replay != nil {
			c.Data(replay.StatusCode, replay.ContentType, replay.Body)
			c.Abort()
			return
		}

		c.Set("idempotency_key", key)
		c.Set("idempotency_store", store)

		c.Next()
	}
}
