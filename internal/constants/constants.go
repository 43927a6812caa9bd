package constants

// ContextKeyUserID is the key under which the resolved user ID is stored
// in both the session and the request context.
const ContextKeyUserID = "user_id"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "fittrack_session"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Pagination bounds for list endpoints.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
