package utils

import "time"

// Application Constants
const (
	AppName    = "SponsorHub"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency    = "INR"
	DefaultCountryCode = "+91"
	DefaultTimeZone    = "Asia/Kolkata"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Earnings split: the sponsor keeps 70% of gross booking revenue, the
	// platform retains 30%. Applied at read time, never stored.
	SponsorShareRate = 0.70
	PlatformFeeRate  = 0.30

	// File Upload
	MaxImageSize = 5 * 1024 * 1024 // 5MB

	// Cache TTLs
	SponsorCacheTTL  = 15 * time.Minute
	VehiclesCacheTTL = 5 * time.Minute

	// Notification
	NotificationTimeout = 30 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrNotFound         = "not found"
	ErrValidationFailed = "validation failed"
	ErrUpstreamFailed   = "upstream dependency failed"
)

// Cache Keys
const (
	CacheKeySponsor         = "sponsor:%s"          // sponsor:<id>
	CacheKeySponsorVehicles = "sponsor_vehicles:%s" // sponsor_vehicles:<sponsor id>
)

// User types carried in JWT claims.
const (
	UserTypeSponsor = "sponsor"
	UserTypeAdmin   = "admin"
)
