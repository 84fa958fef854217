package parameter

import (
	"strings"
)

// Labels of the elements in a raw parameter declaration
const (
	LabelID          = "id"
	LabelName        = "name"
	LabelDataType    = "datatype"
	LabelDescription = "description"
	LabelIndex       = "index"
	LabelDefault     = "defaultValue"
	LabelRequired    = "required"
	LabelValues      = "values"
	LabelChildren    = "parameters"
)

var labels = []string{
	LabelID,
	LabelName,
	LabelDataType,
	LabelDescription,
	LabelIndex,
	LabelDefault,
	LabelRequired,
	LabelValues,
	LabelChildren,
}

// canonicalLabel maps a key onto its label. Keys are matched without regard
// to case because some decoders (viper) lower-case document keys.
func canonicalLabel(key string) string {
	for _, label := range labels {
		if strings.EqualFold(key, label) {
			return label
		}
	}
	return key
}

// lookup returns the element stored under label, matching keys without regard to case
func lookup(raw map[string]any, label string) (any, bool) {
	if v, ok := raw[label]; ok {
		return v, true
	}
	for key, v := range raw {
		if strings.EqualFold(key, label) {
			return v, true
		}
	}
	return nil, false
}

// rawChildren returns the child declarations listed under LabelChildren
func rawChildren(raw map[string]any) []map[string]any {
	v, ok := lookup(raw, LabelChildren)
	if !ok || v == nil {
		return nil
	}

	var children []map[string]any
	switch items := v.(type) {
	case []map[string]any:
		children = items
	case []any:
		for _, item := range items {
			if child, ok := asMap(item); ok {
				children = append(children, child)
			}
		}
	}
	return children
}

// asMap converts decoded document objects into map[string]any
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		converted := make(map[string]any, len(m))
		for key, val := range m {
			s, ok := key.(string)
			if !ok {
				return nil, false
			}
			converted[s] = val
		}
		return converted, true
	}
	return nil, false
}

// ApplyDefaults returns a copy of raw with the optional elements filled in:
// the name defaults to the identifier, the index to 0 and required to false.
// Keys are rewritten to their canonical labels and child declarations are
// defaulted as well. The input is not modified.
func ApplyDefaults(raw map[string]any) map[string]any {
	result := make(map[string]any, len(raw)+3)
	for key, v := range raw {
		label := canonicalLabel(key)
		if label == LabelChildren {
			continue
		}
		result[label] = v
	}

	if _, ok := result[LabelName]; !ok {
		result[LabelName] = result[LabelID]
	}
	if _, ok := result[LabelIndex]; !ok {
		result[LabelIndex] = 0
	}
	if _, ok := result[LabelRequired]; !ok {
		result[LabelRequired] = false
	}

	if _, ok := lookup(raw, LabelChildren); ok {
		children := rawChildren(raw)
		defaulted := make([]any, len(children))
		for i, child := range children {
			defaulted[i] = ApplyDefaults(child)
		}
		result[LabelChildren] = defaulted
	}

	return result
}

// Option sets an element of a raw declaration built with Declare
type Option func(map[string]any)

// Declare builds a raw parameter declaration. Without options the parameter
// is an optional string at index 0 named after its identifier.
func Declare(identifier string, opts ...Option) map[string]any {
	raw := map[string]any{
		LabelID:       identifier,
		LabelName:     identifier,
		LabelDataType: string(TypeString),
		LabelIndex:    0,
		LabelRequired: false,
	}
	for _, opt := range opts {
		opt(raw)
	}
	return raw
}

// WithName sets the display name
func WithName(name string) Option {
	return func(raw map[string]any) { raw[LabelName] = name }
}

// WithType sets the data type
func WithType(dt DataType) Option {
	return func(raw map[string]any) { raw[LabelDataType] = string(dt) }
}

// WithDescription sets the description
func WithDescription(description string) Option {
	return func(raw map[string]any) { raw[LabelDescription] = description }
}

// WithIndex sets the ordering index
func WithIndex(index int) Option {
	return func(raw map[string]any) { raw[LabelIndex] = index }
}

// WithDefault sets the default value
func WithDefault(v any) Option {
	return func(raw map[string]any) { raw[LabelDefault] = v }
}

// WithRequired marks the parameter as required
func WithRequired(required bool) Option {
	return func(raw map[string]any) { raw[LabelRequired] = required }
}

// WithValues restricts the parameter to the given values
func WithValues(values ...any) Option {
	return func(raw map[string]any) { raw[LabelValues] = values }
}

// WithChildren sets the child declarations of a list or record
func WithChildren(children ...map[string]any) Option {
	return func(raw map[string]any) {
		items := make([]any, len(children))
		for i, child := range children {
			items[i] = child
		}
		raw[LabelChildren] = items
	}
}
