package core

import "errors"

var (
	// ErrConfig is returned when a required input is missing or invalid.
	ErrConfig = errors.New("invalid configuration")

	// ErrLookup is returned when listing deploys fails.
	ErrLookup = errors.New("deploy lookup failed")

	// ErrDeployFailed is returned when the matched deploy entered the error state.
	ErrDeployFailed = errors.New("netlify deploy failed")

	// ErrTimeout is returned when the attempt budget ran out before the deploy was ready.
	ErrTimeout = errors.New("timed out waiting for netlify deploy")
)
