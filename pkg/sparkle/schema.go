package sparkle

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Schema describes one resource type: the field that keys its entities and
// the collections nested under each entity. The root node returned by the
// API has children only.
type Schema struct {
	PrimaryKey string             `json:"pkey,omitempty"     yaml:"pkey,omitempty"`
	Children   map[string]*Schema `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewRootSchema wraps the children returned by the schema endpoint.
func NewRootSchema(children map[string]*Schema) *Schema {
	root := &Schema{Children: children}
	root.normalize()

	return root
}

func (s *Schema) normalize() {
	if s.Children == nil {
		s.Children = map[string]*Schema{}
	}

	for _, child := range s.Children {
		if child != nil {
			child.normalize()
		}
	}
}

// Child returns the schema of a nested collection by its schema name.
func (s *Schema) Child(name string) (*Schema, bool) {
	child, ok := s.Children[name]

	return child, ok
}

// ChildNames returns the nested collection names in sorted order.
func (s *Schema) ChildNames() []string {
	names := make([]string, 0, len(s.Children))
	for name := range s.Children {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Validate checks that every collection below this node has a primary key.
// The receiver is treated as the root and needs none.
func (s *Schema) Validate() error {
	return s.validateChildren("")
}

func (s *Schema) validateChildren(prefix string) error {
	for _, name := range s.ChildNames() {
		child := s.Children[name]
		path := strings.TrimPrefix(prefix+"/"+name, "/")

		if child == nil {
			return fmt.Errorf("%w: %s: node is null", ErrInvalidSchema, path)
		}

		err := validation.ValidateStruct(child,
			validation.Field(&child.PrimaryKey, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSchema, path, err)
		}

		err = child.validateChildren(path)
		if err != nil {
			return err
		}
	}

	return nil
}
