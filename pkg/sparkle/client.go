package sparkle

import (
	"context"
)

// Requester performs a single round trip against the API. The result is the
// decoded JSON body, or the raw body bytes when the response is not JSON.
type Requester interface {
	Request(ctx context.Context, uri, method string, body interface{}, headers map[string]string) (interface{}, error)
}

// Client is the entry point to an API. It exposes one Collection per
// top-level schema child.
type Client interface {
	Requester

	// BaseURI returns the API root the client was built for.
	BaseURI() string
	// Schema returns the API schema, fetching it on first use only.
	Schema(ctx context.Context) (*Schema, error)

	// Collection returns a root collection. Hyphens and underscores in name
	// are interchangeable.
	Collection(name string) (Collection, bool)
	// Collections returns the root collections keyed by normalized name.
	Collections() map[string]Collection
	// CollectionNames returns the normalized root collection names, sorted.
	CollectionNames() []string
}

// Collection is a set of entities at a URI sharing one schema. Every call
// that reads it issues a fresh request.
type Collection interface {
	URI() string
	Schema() *Schema

	// List fetches the collection and returns one Entity per key, in the
	// order the keys appear in the response. That order is not guaranteed by
	// the API.
	List(ctx context.Context) ([]Entity, error)
	// Len fetches the collection and returns the number of entities.
	Len(ctx context.Context) (int, error)
	// Index fetches the collection and returns the entity at position i.
	// Negative positions count from the end.
	Index(ctx context.Context, i int) (Entity, error)
	// Entity returns the entity with the given key without any request.
	Entity(key string) Entity

	// Post creates an entity from data and returns the decoded response.
	Post(ctx context.Context, data interface{}) (interface{}, error)
	// Patch applies a patch document to the collection.
	Patch(ctx context.Context, ops []PatchOperation) (interface{}, error)
	// Merge merges value into the whole collection.
	Merge(ctx context.Context, value interface{}) (interface{}, error)

	// KeyOf extracts the primary key from an entity representation.
	KeyOf(rep *Representation) (interface{}, bool)

	String() string
}

// Entity is one resource instance.
type Entity interface {
	URI() string
	Schema() *Schema

	// Child returns a nested collection. Hyphens and underscores in name are
	// interchangeable.
	Child(name string) (Collection, bool)
	// Children returns the nested collections keyed by normalized name.
	Children() map[string]Collection
	// ChildNames returns the normalized child collection names, sorted.
	ChildNames() []string

	// State fetches both desired and current state in one request.
	State(ctx context.Context) (*Representation, error)
	// Desired fetches the desired state; nil when the entity has none.
	Desired(ctx context.Context) (map[string]interface{}, error)
	// Current fetches the current state; nil when the entity has none.
	Current(ctx context.Context) (map[string]interface{}, error)

	Delete(ctx context.Context) (interface{}, error)
	Patch(ctx context.Context, ops []PatchOperation) (interface{}, error)
	Merge(ctx context.Context, value interface{}) (interface{}, error)

	String() string
}
