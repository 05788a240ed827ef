package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeInvalidToken = "invalid_token"
	ErrCodeTokenExpired = "token_expired"
	ErrCodeForbidden    = "forbidden"

	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidAnswer  = "invalid_answer"
	ErrCodeUnknownRuleSet = "unknown_rule_set"
	ErrCodeInvalidSession = "invalid_session_id"

	// Resource errors
	ErrCodeSessionNotFound = "session_not_found"
	ErrCodeWrongState      = "wrong_state"
	ErrCodeSessionBusy     = "session_busy"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
