package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/codelens/pkg/common/apperr"
	"github.com/huynhanx03/codelens/pkg/common/http/response"
	"github.com/huynhanx03/codelens/pkg/constraints"
)

type ctxKey struct{}

// Identity requires a positive integer user id in the X-User-ID header and
// stores it in the request context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(constraints.HeaderUserID)
		if raw == "" {
			response.ErrorResponse(c, apperr.Unauthorized("user not authenticated"))
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.ErrorResponse(c, apperr.Unauthorized("invalid user id"))
			return
		}

		c.Set(constraints.ContextKeyUserID, id)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), id))
		c.Next()
	}
}

func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}
