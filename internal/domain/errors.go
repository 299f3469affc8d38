package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrLectureNotFound indicates the requested lecture is not in the catalog
	ErrLectureNotFound = errors.New("lecture not found")

	// ErrStoreClosed indicates the progress store was used after Close
	ErrStoreClosed = errors.New("progress store is closed")

	// ErrUnknownDriver indicates an unsupported storage driver in configuration
	ErrUnknownDriver = errors.New("unknown storage driver")
)
