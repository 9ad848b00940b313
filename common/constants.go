package common

const (
	// UserContextKey holds the authenticated staff user in the Gin context.
	UserContextKey = "ctx_user"

	// RequestIDContextKey holds the per-request correlation ID.
	RequestIDContextKey = "ctx_request_id"

	// RequestIDHeader is echoed back to the client on every response.
	RequestIDHeader = "X-Request-Id"
)
