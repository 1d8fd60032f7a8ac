// Package server provides the HTTP JSON API for company report generation.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/equity-insight/internal/extract"
	"github.com/jonathan/equity-insight/internal/research"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error.
// Blocked content is the caller's input problem; malformed or incomplete
// model output and transport failures are bad-gateway conditions.
func HTTPStatus(err error) int {
	var (
		configuration *research.ConfigurationError
		blocked       *research.ContentBlockedError
		malformed     *extract.MalformedResponseError
		incomplete    *extract.IncompleteDataError
		upstream      *research.UpstreamError
	)

	switch {
	case errors.As(err, &configuration):
		return http.StatusInternalServerError
	case errors.As(err, &blocked):
		return http.StatusUnprocessableEntity
	case errors.As(err, &malformed), errors.As(err, &incomplete), errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorKind returns a stable machine-readable identifier for a pipeline error
func errorKind(err error) string {
	var (
		configuration *research.ConfigurationError
		blocked       *research.ContentBlockedError
		malformed     *extract.MalformedResponseError
		incomplete    *extract.IncompleteDataError
		upstream      *research.UpstreamError
	)

	switch {
	case errors.As(err, &configuration):
		return "configuration_error"
	case errors.As(err, &blocked):
		return "content_blocked"
	case errors.As(err, &malformed):
		return "malformed_response"
	case errors.As(err, &incomplete):
		return "incomplete_data"
	case errors.As(err, &upstream):
		return "upstream_error"
	default:
		return "internal_error"
	}
}
