package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/codelens/pkg/common/http/request"
	"github.com/huynhanx03/codelens/pkg/common/http/response"
)

// HandlerFunc is the generic function signature
type HandlerFunc[T any, R any] func(context.Context, *T) (R, error)

// Empty is the request type of handlers that read nothing from the request.
type Empty struct{}

// Wrap converts a generic handler to a Gin handler replying 200.
func Wrap[T any, R any](h HandlerFunc[T, R]) gin.HandlerFunc {
	return WrapStatus(http.StatusOK, h)
}

// WrapStatus is Wrap with an explicit success status.
func WrapStatus[T any, R any](status int, h HandlerFunc[T, R]) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := request.ParseRequest[T](c)
		if err != nil {
			response.ErrorResponse(c, err)
			return
		}

		res, err := h(c.Request.Context(), req)
		if err != nil {
			response.ErrorResponse(c, err)
			return
		}

		response.SuccessResponse(c, status, res)
	}
}
