// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across Libra's layers:
server timeouts, rate limits, auth settings, header names and cache prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "libra-api"
	AppVersion = "0.3.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Imports upload whole CSV exports, so this is more generous than a typical API.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 45 * time.Second

	// ShutdownTimeout is how long in-flight requests get during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRequests is the per-IP request allowance per window.
	DefaultRateLimitRequests = 300

	// ImportRateLimitRequests is the per-IP allowance for import endpoints.
	ImportRateLimitRequests = 20

	// RateLimitWindow is the sliding window used by httprate.
	RateLimitWindow = 1 * time.Minute
)

// # Upload Limits

const (
	// MaxImportBytes caps the size of a CSV or notes upload.
	MaxImportBytes = 16 << 20

	// MaxCoverBytes caps the size of a cover image upload or download.
	MaxCoverBytes = 10 << 20

	// MaxBookFileBytes caps the size of an uploaded book file.
	MaxBookFileBytes = 512 << 20
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "libra.app"

	// AccessTokenTTL is the lifetime of an owner access token.
	AccessTokenTTL = 12 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaLibrary = "library"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRecommend = "recommend:book:"
)
