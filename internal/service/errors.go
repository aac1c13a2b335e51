package service

import "errors"

// Service layer errors. Handlers map them to HTTP status codes.
var (
	ErrPackNotFound       = errors.New("technique pack not found")
	ErrPackNotEditable    = errors.New("technique pack is read-only")
	ErrActionNotFound     = errors.New("sub-action not found")
	ErrKlassNotFound      = errors.New("class not found")
	ErrInvalidDate        = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidFeedback    = errors.New("invalid feedback")
	ErrStorageUnavailable = errors.New("video storage is not configured")
	ErrGenerationFailed   = errors.New("combo generation failed")
	ErrNotEnoughBasePacks = errors.New("select at least two base packs")
	ErrInvalidRole        = errors.New("role must be admin, coach or student")
	ErrTokenGeneration    = errors.New("failed to generate authentication token")
)
