package domain

import "errors"

// Common domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrMissingProfile  = errors.New("no profile found, complete your profile first")
	ErrInvalidStatus   = errors.New("invalid application status")
	ErrFieldNotFound   = errors.New("field not found in mapping session")
	ErrSessionNotFound = errors.New("autofill session not found")
)
