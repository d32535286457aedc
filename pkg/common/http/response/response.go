package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/codelens/pkg/common/apperr"
)

const (
	CodeSuccess = 0
	MsgSuccess  = "success"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// SuccessResponse writes data with the given HTTP status.
func SuccessResponse(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Code: CodeSuccess, Message: MsgSuccess, Data: data})
}

// ErrorResponse writes err using the code and status of its AppError, or a
// generic internal error.
func ErrorResponse(c *gin.Context, err error) {
	appErr := apperr.From(err)
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	msg := appErr.Message
	if status >= http.StatusInternalServerError {
		// internal causes stay in the logs
		msg = http.StatusText(status)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, Response{Code: appErr.Code, Message: msg})
}
