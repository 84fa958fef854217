package parameter

import (
	"fmt"

	"github.com/deploymenttheory/go-workflow-templates/internal/value"
)

// FromRaw creates the declaration variant for a defaulted raw declaration
// (see ApplyDefaults). The identifier, name, data type, index and required
// elements must all be present; a missing element is a schema violation.
func FromRaw(raw map[string]any) (Declaration, error) {
	decl, err := decodeRaw(raw)
	if err != nil {
		return nil, err
	}

	identifier, ok := decl.ID.(string)
	if !decl.has(LabelID) || !ok || identifier == "" {
		return nil, violation("", "missing or invalid element '%s'", LabelID)
	}
	for _, label := range []string{LabelName, LabelDataType, LabelIndex, LabelRequired} {
		if !decl.has(label) {
			return nil, violation(identifier, "missing element '%s'", label)
		}
	}

	common := Common{Identifier: identifier}
	if common.Name, ok = decl.Name.(string); !ok {
		return nil, violation(identifier, "element '%s' must be a string", LabelName)
	}
	if decl.has(LabelDescription) {
		if common.Description, ok = decl.Description.(string); !ok {
			return nil, violation(identifier, "element '%s' must be a string", LabelDescription)
		}
	}
	index, err := Coerce(TypeInteger, decl.Index)
	if err != nil {
		return nil, violation(identifier, "element '%s' must be an integer", LabelIndex)
	}
	common.Index = int(index.(value.Int))
	if common.Required, ok = decl.Required.(bool); !ok {
		return nil, violation(identifier, "element '%s' must be a boolean", LabelRequired)
	}

	tag, _ := decl.DataType.(string)
	dt, ok := ParseDataType(tag)
	if !ok {
		return nil, violation(identifier, "unknown data type '%v'", decl.DataType)
	}

	if dt.IsComposite() {
		if decl.has(LabelDefault) {
			return nil, violation(identifier, "%s parameter cannot have a default value", dt)
		}
		children := rawChildren(raw)
		if len(children) == 0 {
			return nil, violation(identifier, "%s parameter requires child parameters", dt)
		}
		items := make([]Declaration, 0, len(children))
		for _, child := range children {
			d, err := FromRaw(child)
			if err != nil {
				return nil, err
			}
			items = append(items, d)
		}
		if dt == TypeRecord {
			return &Record{Common: common, Fields: items}, nil
		}
		return &List{Common: common, Items: items}, nil
	}

	if len(decl.Children) > 0 {
		return nil, violation(identifier, "%s parameter cannot have child parameters", dt)
	}

	scalar := &Scalar{Common: common, Type: dt}
	for _, item := range decl.Values {
		v, err := Coerce(dt, item)
		if err != nil {
			return nil, violation(identifier, "invalid element in '%s': %s", LabelValues, err.Error())
		}
		scalar.Values = append(scalar.Values, v)
	}
	if decl.has(LabelDefault) {
		if scalar.Default, err = Coerce(dt, decl.Default); err != nil {
			return nil, violation(identifier, "invalid default value: %s", err.Error())
		}
		if !scalar.Allows(scalar.Default) {
			return nil, violation(identifier, "default value %s is not one of '%s'", scalar.Default, LabelValues)
		}
	}

	return scalar, nil
}

// New validates, defaults and builds a declaration from its raw form
func New(raw map[string]any) (Declaration, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	d, err := FromRaw(ApplyDefaults(raw))
	if err != nil {
		return nil, fmt.Errorf("building parameter: %w", err)
	}
	return d, nil
}
