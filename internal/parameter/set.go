package parameter

import (
	"fmt"
	"sort"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
)

// Set is the keyed collection of top-level parameter declarations of a
// template. Identifiers are unique across the whole declaration tree. A Set
// is built once and only read afterwards, so it can be shared between
// concurrent resolution sessions.
type Set struct {
	params map[string]Declaration
	ids    map[string]bool
}

// NewSet creates a set from the given declarations
func NewSet(decls ...Declaration) (*Set, error) {
	s := &Set{
		params: make(map[string]Declaration, len(decls)),
		ids:    make(map[string]bool),
	}
	for _, d := range decls {
		if err := s.add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewSetFromRaw builds a set from raw declarations. When validate is set each
// declaration is checked against the schema before defaults are applied.
func NewSetFromRaw(raw []map[string]any, validate bool) (*Set, error) {
	decls := make([]Declaration, 0, len(raw))
	for _, r := range raw {
		if validate {
			if err := Validate(r); err != nil {
				return nil, err
			}
		}
		d, err := FromRaw(ApplyDefaults(r))
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return NewSet(decls...)
}

func (s *Set) add(d Declaration) error {
	var dup string
	tree := make(map[string]bool)
	Walk(d, func(node Declaration) {
		id := node.Meta().Identifier
		if dup == "" && (s.ids[id] || tree[id]) {
			dup = id
		}
		tree[id] = true
	})
	if dup != "" {
		return fmt.Errorf("%w: duplicate parameter identifier '%s'", errors.ErrSchemaViolation, dup)
	}

	for id := range tree {
		s.ids[id] = true
	}
	s.params[d.Meta().Identifier] = d
	return nil
}

// Get returns the top-level declaration with the given identifier
func (s *Set) Get(identifier string) (Declaration, error) {
	d, ok := s.params[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", errors.ErrNotFound, identifier)
	}
	return d, nil
}

// List returns the top-level declarations sorted by index, with ties broken
// by identifier
func (s *Set) List() []Declaration {
	decls := make([]Declaration, 0, len(s.params))
	for _, d := range s.params {
		decls = append(decls, d)
	}
	Sort(decls)
	return decls
}

// Len returns the number of top-level declarations
func (s *Set) Len() int {
	return len(s.params)
}

// Sort orders decls in place by (index, identifier)
func Sort(decls []Declaration) {
	sort.Slice(decls, func(i, j int) bool {
		a, b := decls[i].Meta(), decls[j].Meta()
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Identifier < b.Identifier
	})
}
