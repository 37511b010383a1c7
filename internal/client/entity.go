package client

import (
	"context"
	nethttp "net/http"

	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
)

// entity is a proxy for one resource. Its child collections are built up
// front from the schema.
type entity struct {
	client   *Client
	uri      string
	schema   *sparkle.Schema
	children map[string]sparkle.Collection
}

func newEntity(client *Client, uri string, schema *sparkle.Schema) *entity {
	children := make(map[string]sparkle.Collection, len(schema.Children))
	for name, child := range schema.Children {
		children[normalizeName(name)] = newCollection(client, childURI(uri, name), child)
	}

	return &entity{
		client:   client,
		uri:      uri,
		schema:   schema,
		children: children,
	}
}

func (e *entity) URI() string {
	return e.uri
}

func (e *entity) Schema() *sparkle.Schema {
	return e.schema
}

func (e *entity) Child(name string) (sparkle.Collection, bool) {
	child, ok := e.children[normalizeName(name)]

	return child, ok
}

func (e *entity) Children() map[string]sparkle.Collection {
	out := make(map[string]sparkle.Collection, len(e.children))
	for name, child := range e.children {
		out[name] = child
	}

	return out
}

func (e *entity) ChildNames() []string {
	return sortedNames(e.children)
}

func (e *entity) State(ctx context.Context) (*sparkle.Representation, error) {
	data, err := e.client.Request(ctx, e.uri, nethttp.MethodGet, nil, nil)
	if err != nil {
		return nil, err
	}

	return sparkle.NewRepresentation(data)
}

func (e *entity) Desired(ctx context.Context) (map[string]interface{}, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}

	return state.Desired, nil
}

func (e *entity) Current(ctx context.Context) (map[string]interface{}, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}

	return state.Current, nil
}

func (e *entity) Delete(ctx context.Context) (interface{}, error) {
	return e.client.Request(ctx, e.uri, nethttp.MethodDelete, nil, nil)
}

func (e *entity) Patch(ctx context.Context, ops []sparkle.PatchOperation) (interface{}, error) {
	return patch(ctx, e.client, e.uri, ops)
}

func (e *entity) Merge(ctx context.Context, value interface{}) (interface{}, error) {
	return e.Patch(ctx, []sparkle.PatchOperation{sparkle.MergeOperation(value)})
}

func (e *entity) String() string {
	return "<EntityProxy " + e.uri + ">"
}
