package request

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/codelens/pkg/common/apperr"
	"github.com/huynhanx03/codelens/pkg/common/http/validation"
)

// ParseRequest binds path parameters, then the query string for reads or the
// JSON body for writes, and validates the result.
func ParseRequest[T any](c *gin.Context) (*T, error) {
	var req T

	if len(c.Params) > 0 {
		if err := c.ShouldBindUri(&req); err != nil {
			return nil, apperr.InvalidParam("invalid path parameter", err)
		}
	}

	switch c.Request.Method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		if err := c.ShouldBindQuery(&req); err != nil {
			return nil, apperr.InvalidParam("invalid query parameter", err)
		}
	default:
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, apperr.InvalidParam("invalid request body", err)
		}
	}

	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	return &req, nil
}
