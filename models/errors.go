package models

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrCoverageNotLive   = errors.New("coverage is not live")
	ErrInvalidTransition = errors.New("invalid question transition")
	ErrAlreadyAssigned   = errors.New("user already assigned to this coverage")
)
