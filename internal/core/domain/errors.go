package domain

import "errors"

// Domain errors represent failures the core reports to its callers.
// Everything else (missing fields, empty filters, empty tables) is a
// defined edge case with a fallback value, not an error.
var (
	// ErrIO indicates the dataset source could not be read.
	ErrIO = errors.New("dataset unreadable")

	// ErrParse indicates the dataset could not be decoded into a mapping
	// of companies.
	ErrParse = errors.New("dataset not decodable")

	// ErrDuplicateKey indicates a company or plan name was declared twice
	// while the reject policy is active. It is always reported together
	// with ErrParse.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDataPath indicates no dataset path was configured.
	ErrNoDataPath = errors.New("no dataset path configured")
)
