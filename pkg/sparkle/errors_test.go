package sparkle_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNewRequestError_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    interface{}
		kind    sparkle.ErrorKind
		message string
	}{
		{
			name:    "400 invalid data",
			status:  400,
			body:    map[string]interface{}{"error": "invalid-data", "message": "bad field"},
			kind:    sparkle.KindData,
			message: "bad field",
		},
		{
			name:    "400 invalid patch",
			status:  400,
			body:    map[string]interface{}{"error": "invalid-patch", "message": "bad op"},
			kind:    sparkle.KindPatch,
			message: "bad op",
		},
		{
			name:    "400 other error",
			status:  400,
			body:    map[string]interface{}{"error": "whatever", "message": "no"},
			kind:    sparkle.KindUser,
			message: "no",
		},
		{
			name:    "400 without error field",
			status:  400,
			body:    map[string]interface{}{},
			kind:    sparkle.KindUser,
			message: "request failed",
		},
		{
			name:    "400 with non-object body",
			status:  400,
			body:    []interface{}{"invalid-data"},
			kind:    sparkle.KindUser,
			message: "request failed",
		},
		{
			name:    "403",
			status:  403,
			body:    map[string]interface{}{"error": "forbidden", "message": "denied"},
			kind:    sparkle.KindAccess,
			message: "denied",
		},
		{
			name:    "404",
			status:  404,
			body:    map[string]interface{}{"error": "not-found", "message": "no such thing"},
			kind:    sparkle.KindPath,
			message: "no such thing",
		},
		{
			name:    "404 without body",
			status:  404,
			body:    nil,
			kind:    sparkle.KindPath,
			message: "request failed",
		},
		{
			name:    "405 ignores body",
			status:  405,
			body:    map[string]interface{}{"error": "invalid-data", "message": "something else"},
			kind:    sparkle.KindMethod,
			message: "method not allowed",
		},
		{
			name:    "409",
			status:  409,
			body:    map[string]interface{}{"error": "conflict", "message": "changed"},
			kind:    sparkle.KindConflict,
			message: "changed",
		},
		{
			name:    "500 with message",
			status:  500,
			body:    map[string]interface{}{"message": "boom", "trace": "abc"},
			kind:    sparkle.KindRequest,
			message: "boom",
		},
		{
			name:    "500 without message",
			status:  500,
			body:    map[string]interface{}{"trace": "abc"},
			kind:    sparkle.KindRequest,
			message: "request failed",
		},
		{
			name:    "201 is not success",
			status:  201,
			body:    "created",
			kind:    sparkle.KindRequest,
			message: "request failed",
		},
		{
			name:    "non-string message",
			status:  500,
			body:    map[string]interface{}{"message": json.Number("42")},
			kind:    sparkle.KindRequest,
			message: "42",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := sparkle.NewRequestError(tt.status, tt.body)
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.status, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.True(t, strings.HasPrefix(err.Error(), tt.message+"\n"))
		})
	}
}

func TestNewRequestError_KeepsFields(t *testing.T) {
	t.Parallel()

	body := map[string]interface{}{"error": "conflict", "message": "changed", "version": json.Number("7")}
	err := sparkle.NewRequestError(409, body)

	version, ok := err.Field("version")
	require.True(t, ok)
	assert.Equal(t, json.Number("7"), version)

	discriminator, ok := err.Field("error")
	require.True(t, ok)
	assert.Equal(t, "conflict", discriminator)

	_, ok = err.Field("missing")
	assert.False(t, ok)

	body["version"] = "changed"
	version, _ = err.Field("version")
	assert.Equal(t, json.Number("7"), version)
}

func TestRequestError_Error(t *testing.T) {
	t.Parallel()

	err := sparkle.NewRequestError(404, map[string]interface{}{"error": "not-found", "message": "no such thing"})

	expected := "no such thing\n" +
		"  Info:\n" +
		"    code: 404\n" +
		"    error: 'not-found'\n"

	assert.Equal(t, expected, err.Error())
	assert.NotContains(t, err.Error(), "message:")

	message, ok := err.Field("message")
	require.True(t, ok)
	assert.Equal(t, "no such thing", message)

	lines := strings.Split(err.Error(), "\n")
	assert.Equal(t, "no such thing", lines[0])
}

func TestRequestError_ErrorRendersValues(t *testing.T) {
	t.Parallel()

	err := sparkle.NewRequestError(400, map[string]interface{}{
		"error":   "invalid-data",
		"message": "it's wrong",
		"fields":  []interface{}{"a", "b"},
		"limit":   json.Number("3"),
		"hint":    "use 'name'",
		"path":    `C:\tmp`,
		"nested":  map[string]interface{}{"k": true},
		"none":    nil,
	})

	expected := "it's wrong\n" +
		"  Info:\n" +
		"    code: 400\n" +
		"    error: 'invalid-data'\n" +
		"    fields: [\"a\",\"b\"]\n" +
		"    hint: \"use 'name'\"\n" +
		"    limit: 3\n" +
		"    nested: {\"k\":true}\n" +
		"    none: null\n" +
		"    path: 'C:\\\\tmp'\n"

	assert.Equal(t, expected, err.Error())
}

func TestRequestError_ErrorQuotesStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected string
	}{
		{value: "plain", expected: "'plain'"},
		{value: "it's", expected: `"it's"`},
		{value: `say "hi"`, expected: `'say "hi"'`},
		{value: `it's "both"`, expected: `'it\'s "both"'`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			err := sparkle.NewRequestError(500, map[string]interface{}{"detail": tt.value})
			assert.Contains(t, err.Error(), "    detail: "+tt.expected+"\n")
		})
	}
}

func TestRequestError_Is(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		body   map[string]interface{}
		is     []error
		isNot  []error
	}{
		{
			status: 400,
			body:   map[string]interface{}{"error": "invalid-data"},
			is:     []error{sparkle.ErrData, sparkle.ErrRequest},
			isNot:  []error{sparkle.ErrPatch, sparkle.ErrPath, sparkle.ErrConflict, sparkle.ErrUser},
		},
		{
			status: 400,
			body:   map[string]interface{}{"error": "invalid-patch"},
			is:     []error{sparkle.ErrPatch, sparkle.ErrData, sparkle.ErrRequest},
			isNot:  []error{sparkle.ErrUser, sparkle.ErrPath},
		},
		{
			status: 400,
			is:     []error{sparkle.ErrUser, sparkle.ErrRequest},
			isNot:  []error{sparkle.ErrData},
		},
		{
			status: 403,
			is:     []error{sparkle.ErrAccess, sparkle.ErrRequest, os.ErrPermission},
			isNot:  []error{sparkle.ErrData, sparkle.ErrUser},
		},
		{
			status: 404,
			is:     []error{sparkle.ErrPath, sparkle.ErrData, sparkle.ErrRequest, fs.ErrNotExist},
			isNot:  []error{sparkle.ErrConflict, sparkle.ErrUser},
		},
		{
			status: 405,
			is:     []error{sparkle.ErrMethod, sparkle.ErrRequest},
			isNot:  []error{sparkle.ErrData, sparkle.ErrUser},
		},
		{
			status: 409,
			is:     []error{sparkle.ErrConflict, sparkle.ErrData, sparkle.ErrRequest},
			isNot:  []error{sparkle.ErrPath, sparkle.ErrAccess},
		},
		{
			status: 500,
			is:     []error{sparkle.ErrRequest},
			isNot:  []error{sparkle.ErrData, sparkle.ErrUser, sparkle.ErrMethod, sparkle.ErrAccess},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%d %v", tt.status, tt.body["error"]), func(t *testing.T) {
			t.Parallel()

			err := fmt.Errorf("wrapped: %w", sparkle.NewRequestError(tt.status, tt.body))

			for _, target := range tt.is {
				require.ErrorIs(t, err, target)
			}

			for _, target := range tt.isNot {
				assert.NotErrorIs(t, err, target)
			}
		})
	}
}

func TestErrorKind_Category(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     sparkle.ErrorKind
		category sparkle.ErrorKind
		name     string
	}{
		{kind: sparkle.KindRequest, category: sparkle.KindRequest, name: "RequestError"},
		{kind: sparkle.KindMethod, category: sparkle.KindMethod, name: "MethodError"},
		{kind: sparkle.KindUser, category: sparkle.KindUser, name: "UserError"},
		{kind: sparkle.KindAccess, category: sparkle.KindAccess, name: "AccessError"},
		{kind: sparkle.KindData, category: sparkle.KindData, name: "DataError"},
		{kind: sparkle.KindConflict, category: sparkle.KindData, name: "ConflictError"},
		{kind: sparkle.KindPath, category: sparkle.KindData, name: "PathError"},
		{kind: sparkle.KindPatch, category: sparkle.KindData, name: "PatchError"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.category, tt.kind.Category())
			assert.Equal(t, tt.name, tt.kind.String())
			assert.True(t, tt.kind.IsA(sparkle.KindRequest))
			assert.True(t, tt.kind.IsA(tt.category))
		})
	}

	assert.False(t, sparkle.KindData.IsA(sparkle.KindPath))
	assert.False(t, sparkle.KindUser.IsA(sparkle.KindData))
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, sparkle.IsNotFound(sparkle.NewRequestError(404, nil)))
	assert.True(t, sparkle.IsForbidden(sparkle.NewRequestError(403, nil)))
	assert.True(t, sparkle.IsConflict(sparkle.NewRequestError(409, nil)))
	assert.True(t, sparkle.IsMethodError(sparkle.NewRequestError(405, nil)))
	assert.True(t, sparkle.IsUserError(sparkle.NewRequestError(400, nil)))
	assert.True(t, sparkle.IsDataError(sparkle.NewRequestError(409, nil)))
	assert.True(t, sparkle.IsPatchError(sparkle.NewRequestError(400, map[string]interface{}{"error": "invalid-patch"})))

	assert.False(t, sparkle.IsNotFound(errors.New("plain")))
	assert.False(t, sparkle.IsDataError(nil))

	reqErr, ok := sparkle.AsRequestError(fmt.Errorf("outer: %w", sparkle.NewRequestError(409, nil)))
	require.True(t, ok)
	assert.Equal(t, 409, reqErr.Code)

	_, ok = sparkle.AsRequestError(errors.New("plain"))
	assert.False(t, ok)
}
