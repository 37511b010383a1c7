package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
)

// orderedKeys returns the keys of a JSON object in document order. A key
// repeated in the document is reported once, at its first position.
func orderedKeys(body []byte) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sparkle.ErrUnexpectedBody, err)
	}

	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected an object", sparkle.ErrUnexpectedBody)
	}

	var keys []string

	seen := map[string]bool{}

	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", sparkle.ErrUnexpectedBody, err)
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", sparkle.ErrUnexpectedBody, token)
		}

		var value json.RawMessage

		err = decoder.Decode(&value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", sparkle.ErrUnexpectedBody, err)
		}

		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	return keys, nil
}
