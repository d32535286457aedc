package constraints

const (
	// HeaderUserID carries the caller identity set by the fronting auth layer.
	HeaderUserID = "X-User-ID"
	// HeaderRequestID correlates log lines of one request.
	HeaderRequestID = "X-Request-ID"

	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)
