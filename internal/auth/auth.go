package auth

import (
	"encoding/base64"
	"errors"

	"github.com/fivetwenty-io/sparkle/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrConflictingCredentials = errors.New("token and username/password are mutually exclusive")
)

// Credentials produce the Authorization header value sent on every request.
type Credentials interface {
	AuthorizationHeader() string
}

// TokenCredentials authenticate with an API token.
type TokenCredentials struct {
	Token string
}

// AuthorizationHeader returns "Token <token>".
func (c TokenCredentials) AuthorizationHeader() string {
	return "Token " + c.Token
}

// BasicCredentials authenticate with a user name and password.
type BasicCredentials struct {
	Username string
	Password string
}

// AuthorizationHeader returns "Basic <base64(user:pass)>".
func (c BasicCredentials) AuthorizationHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password))
}

// FromConfig picks credentials from a token or a username/password pair.
// It returns nil when neither is set.
func FromConfig(token, username, password string) (Credentials, error) {
	basic := username != "" || password != ""

	switch {
	case token != "" && basic:
		return nil, ErrConflictingCredentials
	case token != "":
		return TokenCredentials{Token: token}, nil
	case basic:
		return BasicCredentials{Username: username, Password: password}, nil
	default:
		return nil, nil
	}
}

// Headers returns the default headers carrying the credentials.
func Headers(creds Credentials) map[string]string {
	headers := map[string]string{}
	if creds != nil {
		headers[constants.HeaderAuthorization] = creds.AuthorizationHeader()
	}

	return headers
}
