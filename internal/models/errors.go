package models

import "errors"

var (
	ErrPermissionDenied     = errors.New("permission denied")
	ErrPositionUnavailable  = errors.New("position unavailable")
	ErrGeocodeFailure       = errors.New("geocode failure")
	ErrStorage              = errors.New("storage error")
	ErrCycleInProgress      = errors.New("sample cycle already in progress")
	ErrConfirmationRequired = errors.New("confirmation required")
)
