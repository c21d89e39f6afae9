package api

import "errors"

var (
	// ErrQueryParameters is returned when a /healthz request carries query parameters.
	ErrQueryParameters = errors.New("query parameters are not allowed")
	// ErrRequestBody is returned when a /healthz request carries a body.
	ErrRequestBody = errors.New("request body is not allowed")
)
