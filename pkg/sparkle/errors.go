package sparkle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/fivetwenty-io/sparkle/internal/constants"
)

// ErrorKind identifies the class of a failed request.
type ErrorKind int

const (
	// KindRequest is the base kind for any non-200 response.
	KindRequest ErrorKind = iota

	// KindMethod is returned for 405 responses.
	KindMethod

	// KindUser is returned for 400 responses without a more specific reason.
	KindUser

	// KindAccess is returned for 403 responses.
	KindAccess

	// KindData is returned for 400 responses reporting invalid data.
	KindData

	// KindConflict is returned for 409 responses.
	KindConflict

	// KindPath is returned for 404 responses.
	KindPath

	// KindPatch is returned for 400 responses reporting an invalid patch.
	KindPatch
)

// Error discriminators sent by the API in the "error" body field.
const (
	ErrorInvalidData  = "invalid-data"
	ErrorInvalidPatch = "invalid-patch"
)

// String returns the error class name.
func (k ErrorKind) String() string {
	switch k {
	case KindRequest:
		return "RequestError"
	case KindMethod:
		return "MethodError"
	case KindUser:
		return "UserError"
	case KindAccess:
		return "AccessError"
	case KindData:
		return "DataError"
	case KindConflict:
		return "ConflictError"
	case KindPath:
		return "PathError"
	case KindPatch:
		return "PatchError"
	default:
		return "UnknownError"
	}
}

// Parent returns the kind this kind specializes. KindRequest is its own parent.
func (k ErrorKind) Parent() ErrorKind {
	switch k {
	case KindConflict, KindPath, KindPatch:
		return KindData
	default:
		return KindRequest
	}
}

// Category returns the direct child of KindRequest this kind belongs to, or
// KindRequest for the base kind itself.
func (k ErrorKind) Category() ErrorKind {
	if k == KindRequest {
		return KindRequest
	}

	for k.Parent() != KindRequest {
		k = k.Parent()
	}

	return k
}

// IsA reports whether k is other or one of its descendants.
func (k ErrorKind) IsA(other ErrorKind) bool {
	for {
		if k == other {
			return true
		}

		if k == KindRequest {
			return false
		}

		k = k.Parent()
	}
}

// Sentinels for errors.Is checks against a RequestError. Matching follows the
// kind hierarchy, so errors.Is(err, ErrData) holds for path, conflict and
// patch errors too.
var (
	ErrRequest  = errors.New("request error")
	ErrMethod   = errors.New("method error")
	ErrUser     = errors.New("user error")
	ErrAccess   = errors.New("access error")
	ErrData     = errors.New("data error")
	ErrConflict = errors.New("conflict error")
	ErrPath     = errors.New("path error")
	ErrPatch    = errors.New("patch error")
)

var kindSentinels = map[ErrorKind]error{
	KindRequest:  ErrRequest,
	KindMethod:   ErrMethod,
	KindUser:     ErrUser,
	KindAccess:   ErrAccess,
	KindData:     ErrData,
	KindConflict: ErrConflict,
	KindPath:     ErrPath,
	KindPatch:    ErrPatch,
}

// RequestError is a failed API request. Fields holds every field of the
// error body so API specific diagnostics stay available to callers.
type RequestError struct {
	Kind    ErrorKind
	Code    int
	Message string
	Fields  map[string]interface{}
}

// NewRequestError classifies a response by status code and decoded body.
// A body that is not a JSON object is treated as empty.
func NewRequestError(statusCode int, body interface{}) *RequestError {
	data, ok := body.(map[string]interface{})
	if !ok {
		data = map[string]interface{}{}
	}

	fields := make(map[string]interface{}, len(data))
	for k, v := range data {
		fields[k] = v
	}

	reqErr := &RequestError{
		Kind:    KindRequest,
		Code:    statusCode,
		Message: messageOf(fields),
		Fields:  fields,
	}

	switch statusCode {
	case constants.HTTPStatusBadRequest:
		switch fields["error"] {
		case ErrorInvalidData:
			reqErr.Kind = KindData
		case ErrorInvalidPatch:
			reqErr.Kind = KindPatch
		default:
			reqErr.Kind = KindUser
		}
	case constants.HTTPStatusForbidden:
		reqErr.Kind = KindAccess
	case constants.HTTPStatusNotFound:
		reqErr.Kind = KindPath
	case constants.HTTPStatusMethodNotAllowed:
		reqErr.Kind = KindMethod
		reqErr.Message = constants.MessageMethodNotAllowed
		reqErr.Fields = map[string]interface{}{}
	case constants.HTTPStatusConflict:
		reqErr.Kind = KindConflict
	}

	return reqErr
}

func messageOf(fields map[string]interface{}) string {
	msg, ok := fields["message"]
	if !ok || msg == nil {
		return constants.MessageRequestFailed
	}

	if s, ok := msg.(string); ok {
		return s
	}

	return fmt.Sprint(msg)
}

// Field returns a body field by name.
func (e *RequestError) Field(name string) (interface{}, bool) {
	v, ok := e.Fields[name]

	return v, ok
}

// Category returns the error category, see ErrorKind.Category.
func (e *RequestError) Category() ErrorKind {
	return e.Kind.Category()
}

// Error renders the message followed by a sorted Info block of the code and
// the remaining body fields.
func (e *RequestError) Error() string {
	info := make(map[string]interface{}, len(e.Fields)+1)
	for k, v := range e.Fields {
		if k == "message" {
			continue
		}

		info[k] = v
	}

	info["code"] = e.Code

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var b strings.Builder

	b.WriteString(e.Message)
	b.WriteString("\n  Info:\n")

	for _, k := range keys {
		fmt.Fprintf(&b, "    %s: %s\n", k, renderValue(info[k]))
	}

	return b.String()
}

func renderValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return quote(val)
	case json.Number:
		return val.String()
	case int:
		return fmt.Sprintf("%d", val)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(data)
}

// quote wraps s in single quotes, switching to double quotes when s holds a
// single quote and no double quote.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)

	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// Is matches the sentinel of the error kind or any of its ancestors.
func (e *RequestError) Is(target error) bool {
	for k := e.Kind; ; k = k.Parent() {
		if kindSentinels[k] == target {
			return true
		}

		if k == KindRequest {
			return false
		}
	}
}

// Unwrap exposes standard library equivalents for access and path errors.
func (e *RequestError) Unwrap() error {
	switch e.Kind {
	case KindAccess:
		return os.ErrPermission
	case KindPath:
		return fs.ErrNotExist
	default:
		return nil
	}
}

// AsRequestError returns the RequestError in err's chain, if any.
func AsRequestError(err error) (*RequestError, bool) {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a path error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPath)
}

// IsForbidden checks if the error is an access error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrAccess)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsDataError checks if the error is a data error or one of its subkinds.
func IsDataError(err error) bool {
	return errors.Is(err, ErrData)
}

// IsPatchError checks if the error is a patch error.
func IsPatchError(err error) bool {
	return errors.Is(err, ErrPatch)
}

// IsUserError checks if the error is a generic bad request.
func IsUserError(err error) bool {
	return errors.Is(err, ErrUser)
}

// IsMethodError checks if the error is a method error.
func IsMethodError(err error) bool {
	return errors.Is(err, ErrMethod)
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrInvalidPatch      = errors.New("invalid patch operation")
	ErrIndexOutOfRange   = errors.New("collection index out of range")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrEmptyPath         = errors.New("empty path segment")
	ErrUnexpectedBody    = errors.New("unexpected response body")
)
