package common

const (
	// AuthorizationHeaderName carries the bearer access token on outbound
	// requests to the auth backend.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries the per-attempt correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// DefaultLanguage is used when no language preference is stored.
	DefaultLanguage = "en"
)
