// Package sparkleclient provides the main entry point for creating API clients
package sparkleclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/sparkle/internal/client"
	"github.com/fivetwenty-io/sparkle/internal/constants"
	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
)

// New creates a client, fetches the API schema and builds the root
// collections. An empty BaseURI selects the local default.
func New(ctx context.Context, config *sparkle.Config) (sparkle.Client, error) {
	if config == nil {
		return nil, sparkle.ErrConfigRequired
	}

	cfg := *config

	cfg.BaseURI = strings.TrimSuffix(cfg.BaseURI, "/")
	if cfg.BaseURI == "" {
		cfg.BaseURI = constants.DefaultBaseURI
	}

	c, err := client.New(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithEndpoint creates a new client with just a base URI (no auth).
func NewWithEndpoint(ctx context.Context, baseURI string) (sparkle.Client, error) {
	return New(ctx, &sparkle.Config{
		BaseURI: baseURI,
	})
}

// NewWithToken creates a new client using token authentication.
func NewWithToken(ctx context.Context, baseURI, token string) (sparkle.Client, error) {
	return New(ctx, &sparkle.Config{
		BaseURI: baseURI,
		Token:   token,
	})
}

// NewWithPassword creates a new client using username/password authentication.
func NewWithPassword(ctx context.Context, baseURI, username, password string) (sparkle.Client, error) {
	return New(ctx, &sparkle.Config{
		BaseURI:  baseURI,
		Username: username,
		Password: password,
	})
}

// Resolve walks a "name/key/name/key..." path from the client's root
// collections. A path ending on a collection name yields a Collection, one
// ending on a key yields an Entity; the other return value is nil. Nothing
// is requested, so the resolved resource may not exist.
func Resolve(c sparkle.Client, path string) (sparkle.Collection, sparkle.Entity, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	var (
		collection sparkle.Collection
		entity     sparkle.Entity
	)

	for i, segment := range segments {
		if segment == "" {
			return nil, nil, fmt.Errorf("%w in %q", sparkle.ErrEmptyPath, path)
		}

		if i%2 == 1 {
			entity = collection.Entity(segment)

			continue
		}

		var ok bool

		if entity == nil {
			collection, ok = c.Collection(segment)
		} else {
			collection, ok = entity.Child(segment)
		}

		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", sparkle.ErrUnknownCollection, strings.Join(segments[:i+1], "/"))
		}
	}

	if len(segments)%2 == 1 {
		return collection, nil, nil
	}

	return nil, entity, nil
}
