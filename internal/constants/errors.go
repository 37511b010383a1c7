package constants

import "errors"

// Configuration errors.
var (
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrPasswordWithToken = errors.New("--password and --token cannot be used together")
)

// Input errors.
var (
	ErrDataRequired   = errors.New("--data is required")
	ErrOpsRequired    = errors.New("--ops is required")
	ErrNotACollection = errors.New("path does not name a collection")
	ErrNotAnEntity    = errors.New("path does not name an entity")
	ErrInvalidOutput  = errors.New("invalid output format")
	ErrInvalidView    = errors.New("invalid state view")
)
