package sparkle

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"
)

// Patch operation names. OpMerge is not part of RFC 6902; it asks the API to
// merge the value into the target at the given path.
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpMove    = "move"
	OpCopy    = "copy"
	OpTest    = "test"
	OpMerge   = "x-merge"
)

// PatchOperation is a single JSON-Patch style operation.
type PatchOperation struct {
	Op    string      `json:"op"             yaml:"op"`
	Path  string      `json:"path"           yaml:"path"`
	From  string      `json:"from,omitempty" yaml:"from,omitempty"`
	Value interface{} `json:"value"          yaml:"value,omitempty"`
}

// MergeOperation returns the operation that merges value into the whole target.
func MergeOperation(value interface{}) PatchOperation {
	return PatchOperation{Op: OpMerge, Path: "/", Value: value}
}

// MarshalJSON omits value for the operations that take none.
func (o PatchOperation) MarshalJSON() ([]byte, error) {
	type plain PatchOperation

	switch o.Op {
	case OpRemove, OpMove, OpCopy:
		return json.Marshal(struct {
			Op   string `json:"op"`
			Path string `json:"path"`
			From string `json:"from,omitempty"`
		}{o.Op, o.Path, o.From})
	default:
		return json.Marshal(plain(o))
	}
}

// Validate checks the fields every operation needs.
func (o PatchOperation) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Op, validation.Required),
		validation.Field(&o.From, validation.Required.When(o.Op == OpMove || o.Op == OpCopy)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	return nil
}

// ValidatePatch validates every operation of a patch document.
func ValidatePatch(ops []PatchOperation) error {
	for i, op := range ops {
		err := op.Validate()
		if err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
	}

	return nil
}

// Representation is the body of an entity: its desired and current state.
// Either may be absent.
type Representation struct {
	Desired map[string]interface{} `json:"desired,omitempty" yaml:"desired,omitempty"`
	Current map[string]interface{} `json:"current,omitempty" yaml:"current,omitempty"`
}

// NewRepresentation builds a Representation from a decoded response body.
func NewRepresentation(data interface{}) (*Representation, error) {
	body, ok := data.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %T", ErrUnexpectedBody, data)
	}

	rep := &Representation{}

	for field, dst := range map[string]*map[string]interface{}{
		"desired": &rep.Desired,
		"current": &rep.Current,
	} {
		value, present := body[field]
		if !present || value == nil {
			continue
		}

		state, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T, not an object", ErrUnexpectedBody, field, value)
		}

		*dst = state
	}

	return rep, nil
}

// Key returns the primary key value: from desired state when present,
// otherwise from current state.
func (r *Representation) Key(pkey string) (interface{}, bool) {
	state := r.Current
	if r.Desired != nil {
		state = r.Desired
	}

	value, ok := state[pkey]

	return value, ok
}

// DecodeDesired decodes the desired state into target using json field tags.
func (r *Representation) DecodeDesired(target interface{}) error {
	return decodeState(r.Desired, target)
}

// DecodeCurrent decodes the current state into target using json field tags.
func (r *Representation) DecodeCurrent(target interface{}) error {
	return decodeState(r.Current, target)
}

func decodeState(state map[string]interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to create state decoder: %w", err)
	}

	err = decoder.Decode(state)
	if err != nil {
		return fmt.Errorf("failed to decode state: %w", err)
	}

	return nil
}
