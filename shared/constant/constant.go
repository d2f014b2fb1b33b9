// Package constant holds names shared across layers: context keys, roles, headers and defaults.
package constant

import "time"

// ContextKey keys request scoped values.
type ContextKey string

// Request scoped values set by the auth middleware.
const (
	ContextKeyUserID    ContextKey = "user_id"
	ContextKeyUserEmail ContextKey = "user_email"
	ContextKeyUserRole  ContextKey = "user_role"
	ContextKeyUserRoles ContextKey = "user_roles"
	ContextKeyTokenID   ContextKey = "token_id"
)

// Actors recorded in created_by and modified_by when no staff user is involved.
const (
	ContextGuest  = "guest"
	ContextSystem = "system"
	ContextBot    = "bot"
)

const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleFrontOffice  = "front-office"
	RoleHousekeeping = "housekeeping"
)

const (
	RequestParamID      = "id"
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	RequestMaxMemory = 10 << 20

	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"

	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

// Audit columns every table carries.
const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// SQLSTATE codes reported by lib/pq.
const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat       = time.RFC3339
	DateOnlyFormat   = time.DateOnly
	MinutesToSeconds = 60
)

// Tracer scope names.
const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelJobScopeName        = "job"
	OtelS3ScopeName         = "s3"

	OtelQueryAttributeKey = "query"
)

const ServerEnvProduction = "production"

const (
	Asterix = "*"
	Empty   = ""
	Colon   = ":"
)
