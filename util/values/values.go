package values

type ContextKey string

// Context keys
const (
	ContextTracingKey ContextKey = "tracing_context"
	ContextUserIDKey  ContextKey = "user_id"
)

// Request headers
const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-ID"
)

// Response statuses
const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	BadRequestBody = "bad-request-body"
	Unprocessable  = "unprocessable"
	NotAllowed     = "not-allowed"
	NotAuthorised  = "not-authorised"
	TokenExpired   = "token-expired"
	Conflict       = "conflict"
	NotFound       = "not-found"
)

// Session cookies
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
)

// Redirect targets for admin-gated routes
const (
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User-facing messages for poll input and voting rules
const (
	MsgQuestionEmpty    = "Poll question cannot be empty"
	MsgQuestionTooShort = "Poll question must be at least 5 characters"
	MsgQuestionTooLong  = "Poll question must be 200 characters or less"
	MsgTooFewOptions    = "Poll must have at least 2 options"
	MsgDuplicateOptions = "Poll options must be unique"
	MsgOptionTooLong    = "Poll options must be 100 characters or less"
	MsgDuplicateVote    = "You have already voted on this poll"
)
