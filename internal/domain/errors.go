package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrRecordNotFound indicates the user has no record on the remote service yet
	ErrRecordNotFound = errors.New("user record not found")

	// ErrServerOffline indicates the record service is unreachable
	ErrServerOffline = errors.New("record service is unreachable")

	// ErrAuthFailed indicates the stored credential was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrAccessDenied indicates a capability check failed. This is a UI
	// gate only; real authorization has to live server-side.
	ErrAccessDenied = errors.New("access denied")

	// ErrMaintenanceMode indicates the service is in maintenance and the
	// session's role does not bypass it
	ErrMaintenanceMode = errors.New("service is in maintenance mode")

	// ErrCatalogUnavailable indicates the catalog could not be resolved
	// from either the cache or the remote source
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
