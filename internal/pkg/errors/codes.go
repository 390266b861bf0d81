package errors

import "net/http"

var (
	ErrVenueNotFound = New(
		"VENUE_NOT_FOUND",
		"Venue not found",
		http.StatusNotFound,
	)

	ErrCatalogNotLoaded = New(
		"CATALOG_NOT_LOADED",
		"Venue catalog is still loading",
		http.StatusServiceUnavailable,
	)

	ErrCatalogUnavailable = New(
		"CATALOG_UNAVAILABLE",
		"Venue catalog could not be loaded",
		http.StatusBadGateway,
	)

	ErrBannerUnavailable = New(
		"BANNER_UNAVAILABLE",
		"Banner image is not available",
		http.StatusNotFound,
	)

	ErrNavigationUnavailable = New(
		"NAVIGATION_UNAVAILABLE",
		"Navigation integration is not available.",
		http.StatusServiceUnavailable,
	)

	ErrDestinationEmpty = New(
		"DESTINATION_EMPTY",
		"Destination is empty.",
		http.StatusUnprocessableEntity,
	)

	ErrUnknownTimeZone = New(
		"UNKNOWN_TIME_ZONE",
		"Time zone could not be resolved",
		http.StatusUnprocessableEntity,
	)

	ErrIncompatibleDataset = New(
		"INCOMPATIBLE_DATASET",
		"Plot reference dataset has an unexpected format",
		http.StatusInternalServerError,
	)

	ErrPreferencesWrite = New(
		"PREFERENCES_WRITE_FAILED",
		"Failed to save preferences",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
