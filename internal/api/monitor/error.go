package monitor

import (
	"DriverGuard/pkg/response"
	"net/http"
)

var (
	ErrInvalidFrame               = response.NewError(http.StatusBadRequest, "invalid frame")
	ErrInvalidSubject             = response.NewError(http.StatusBadRequest, "subject id is required")
	ErrInvalidTimeRange           = response.NewError(http.StatusBadRequest, "invalid time range")
	ErrSubjectNotFound            = response.NewError(http.StatusNotFound, "subject not found")
	ErrMalformedLandmarks         = response.NewError(http.StatusUnprocessableEntity, "malformed landmarks")
	ErrLandmarkServiceUnavailable = response.NewError(http.StatusServiceUnavailable, "landmark service unavailable")
	ErrInternalServerError        = response.NewError(http.StatusInternalServerError, "internal server error")
)
