package constants

import "time"

// Endpoint defaults.
const (
	// DefaultBaseURI is the API address used when none is configured.
	DefaultBaseURI = "http://127.0.0.1:9860/v1"

	// SchemaPath is appended to the base URI to fetch the API schema.
	SchemaPath = "/schema"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// HTTP status codes the error taxonomy is keyed on.
const (
	// HTTPStatusOK is the only status treated as success.
	HTTPStatusOK = 200

	// HTTPStatusBadRequest is a user or data error.
	HTTPStatusBadRequest = 400

	// HTTPStatusForbidden is an access error.
	HTTPStatusForbidden = 403

	// HTTPStatusNotFound is a path error.
	HTTPStatusNotFound = 404

	// HTTPStatusMethodNotAllowed is a method error.
	HTTPStatusMethodNotAllowed = 405

	// HTTPStatusConflict is a conflict error.
	HTTPStatusConflict = 409
)

// Error messages.
const (
	// MessageRequestFailed is used when the error body carries no message.
	MessageRequestFailed = "request failed"

	// MessageMethodNotAllowed is the fixed message of method errors.
	MessageMethodNotAllowed = "method not allowed"
)

// Content types and headers.
const (
	// ContentTypeJSON marks JSON request and response bodies.
	ContentTypeJSON = "application/json"

	// HeaderAuthorization carries the token or basic credentials.
	HeaderAuthorization = "Authorization"

	// HeaderContentType is the content type header.
	HeaderContentType = "Content-Type"

	// HeaderUserAgent is the user agent header.
	HeaderUserAgent = "User-Agent"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "sparkle-go"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// OutputIndentSize is the indentation used for json and yaml output.
	OutputIndentSize = 2
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
