package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
)

// collection is a proxy for the entities at one URI.
type collection struct {
	client *Client
	uri    string
	schema *sparkle.Schema
}

func newCollection(client *Client, uri string, schema *sparkle.Schema) *collection {
	return &collection{
		client: client,
		uri:    uri,
		schema: schema,
	}
}

func (c *collection) URI() string {
	return c.uri
}

func (c *collection) Schema() *sparkle.Schema {
	return c.schema
}

// List fetches the collection. Entities follow the key order of the
// response body.
func (c *collection) List(ctx context.Context) ([]sparkle.Entity, error) {
	resp, err := c.client.do(ctx, c.uri, nethttp.MethodGet, nil, nil)
	if err != nil {
		return nil, err
	}

	if _, ok := resp.Data.(map[string]interface{}); !ok || !resp.JSON {
		return nil, fmt.Errorf("%w: listing %s did not return an object", sparkle.ErrUnexpectedBody, c.uri)
	}

	keys, err := orderedKeys(resp.Body)
	if err != nil {
		return nil, err
	}

	entities := make([]sparkle.Entity, 0, len(keys))
	for _, key := range keys {
		entities = append(entities, c.Entity(key))
	}

	return entities, nil
}

func (c *collection) Len(ctx context.Context) (int, error) {
	entities, err := c.List(ctx)
	if err != nil {
		return 0, err
	}

	return len(entities), nil
}

func (c *collection) Index(ctx context.Context, i int) (sparkle.Entity, error) {
	entities, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	pos := i
	if pos < 0 {
		pos += len(entities)
	}

	if pos < 0 || pos >= len(entities) {
		return nil, fmt.Errorf("%w: %d of %d", sparkle.ErrIndexOutOfRange, i, len(entities))
	}

	return entities[pos], nil
}

// Entity builds the proxy for key. Nothing is requested, so the entity may
// not exist.
func (c *collection) Entity(key string) sparkle.Entity {
	return newEntity(c.client, c.uri+escape(key), c.schema)
}

func (c *collection) Post(ctx context.Context, data interface{}) (interface{}, error) {
	return c.client.Request(ctx, c.uri, nethttp.MethodPost, data, nil)
}

func (c *collection) Patch(ctx context.Context, ops []sparkle.PatchOperation) (interface{}, error) {
	return patch(ctx, c.client, c.uri, ops)
}

func (c *collection) Merge(ctx context.Context, value interface{}) (interface{}, error) {
	return c.Patch(ctx, []sparkle.PatchOperation{sparkle.MergeOperation(value)})
}

func (c *collection) KeyOf(rep *sparkle.Representation) (interface{}, bool) {
	if rep == nil {
		return nil, false
	}

	return rep.Key(c.schema.PrimaryKey)
}

func (c *collection) String() string {
	return "<CollectionProxy " + c.uri + ">"
}

func patch(ctx context.Context, client *Client, uri string, ops []sparkle.PatchOperation) (interface{}, error) {
	err := sparkle.ValidatePatch(ops)
	if err != nil {
		return nil, err
	}

	if ops == nil {
		ops = []sparkle.PatchOperation{}
	}

	return client.Request(ctx, uri, nethttp.MethodPatch, ops, nil)
}
