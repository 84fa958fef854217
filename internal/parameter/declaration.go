// Package parameter models the typed parameter declarations of a workflow
// template.
//
// Declarations come in three closed variants: Scalar for the primitive data
// types, Record and List for the composite ones. Raw declarations, as decoded
// from a template document, are normalized with ApplyDefaults, checked with
// Validate and turned into variants with FromRaw. A Set holds the top-level
// declarations of one template and lists them in (index, identifier) order.
package parameter

import (
	"github.com/deploymenttheory/go-workflow-templates/internal/value"
)

// Common holds the fields every declaration carries
type Common struct {
	// Identifier is unique within the owning parameter set
	Identifier string

	// Name is the display name, the identifier unless set otherwise
	Name string

	// Description is optional help text
	Description string

	// Index orders declarations; ties break on Identifier
	Index int

	// Required rejects empty answers when scanning
	Required bool
}

// Declaration is one of *Scalar, *Record or *List
type Declaration interface {
	// Meta returns the fields shared by all declaration variants
	Meta() Common

	// DataType returns the declared type
	DataType() DataType

	// Children returns the child declarations of composite types, nil otherwise
	Children() []Declaration

	declaration()
}

// Scalar declares a parameter of a primitive data type
type Scalar struct {
	Common

	// Type is one of TypeString, TypeInteger, TypeFloat, TypeBoolean or TypeFile
	Type DataType

	// Default is used when the answer for a non-required parameter is empty.
	// Nil when the declaration has no default.
	Default value.Value

	// Values, when not empty, is the closed set of acceptable values
	Values []value.Value
}

// Record declares a group of child parameters bound under one identifier
type Record struct {
	Common
	Fields []Declaration
}

// List declares a repeated group of child parameters
type List struct {
	Common
	Items []Declaration
}

func (s *Scalar) Meta() Common { return s.Common }
func (r *Record) Meta() Common { return r.Common }
func (l *List) Meta() Common { return l.Common }

func (s *Scalar) DataType() DataType { return s.Type }
func (r *Record) DataType() DataType { return TypeRecord }
func (l *List) DataType() DataType { return TypeList }

func (s *Scalar) Children() []Declaration { return nil }
func (r *Record) Children() []Declaration { return r.Fields }
func (l *List) Children() []Declaration { return l.Items }

func (*Scalar) declaration() {}
func (*Record) declaration() {}
func (*List) declaration() {}

// HasDefault reports whether the declaration carries a default value
func (s *Scalar) HasDefault() bool {
	return s.Default != nil
}

// Allows reports whether v satisfies the enumeration constraint. A scalar
// without Values allows everything.
func (s *Scalar) Allows(v value.Value) bool {
	if len(s.Values) == 0 {
		return true
	}
	for _, allowed := range s.Values {
		if value.Equal(allowed, v) {
			return true
		}
	}
	return false
}

// HasChildren reports whether d is composite with at least one child
func HasChildren(d Declaration) bool {
	return len(d.Children()) > 0
}

// Walk calls fn for d and, depth-first, for every declaration below it
func Walk(d Declaration, fn func(Declaration)) {
	fn(d)
	for _, child := range d.Children() {
		Walk(child, fn)
	}
}
