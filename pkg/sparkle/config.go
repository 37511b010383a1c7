package sparkle

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config represents client configuration for building a sparkle.Client.
//
// # Authentication
//
// Provide at most one of:
//  1. Token: sent as "Authorization: Token <token>".
//  2. Username/Password: sent as "Authorization: Basic <base64(user:pass)>".
//
// With neither, requests are sent without an Authorization header.
//
// # Timeouts and retries
//
// Every operation is a single round trip; the client never retries. Callers
// bound individual calls through the context they pass in.
type Config struct {
	// BaseURI is the API root, e.g. "http://127.0.0.1:9860/v1". The schema is
	// read from BaseURI + "/schema". A trailing slash is trimmed.
	BaseURI string

	// Token is a bearer token for token authentication.
	Token string
	// Username for basic authentication.
	Username string
	// Password for basic authentication. It may be empty.
	Password string

	// Headers are extra headers sent on every request. Per-call headers win.
	Headers map[string]string
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// HTTPTimeout overrides the transport's default timeout.
	HTTPTimeout time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// Interceptors run around every request.
	Interceptors *InterceptorChain
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURI, validation.Required, is.URL),
		validation.Field(&c.Username, validation.Required.When(c.Password != "")),
		validation.Field(&c.Token,
			validation.Empty.When(c.Username != "").Error("cannot be combined with username and password")),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
