package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderUserAgent      = "User-Agent"
	HeaderDeviceID       = "X-Device-ID"
	HeaderAppVersion     = "X-App-Version"
	HeaderIdempotencyKey = "X-Idempotency-Key"
	HeaderPunchToken     = "X-Punch-Token"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeySiteID    = "site_id"
	ContextKeyAgency    = "agency"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableAttendanceEvents   = "attendance_events"
	TablePunchTokens        = "punch_tokens"
	TableContractorProfiles = "contractor_profiles"
)
