package parameter

import (
	"fmt"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/value"
	"github.com/go-viper/mapstructure/v2"
)

// rawDeclaration is the closed field contract of a raw declaration. Elements
// are decoded untyped and checked by validate, which reports the offending
// parameter rather than a decoder path.
type rawDeclaration struct {
	ID          any   `mapstructure:"id"`
	Name        any   `mapstructure:"name"`
	DataType    any   `mapstructure:"datatype"`
	Description any   `mapstructure:"description"`
	Index       any   `mapstructure:"index"`
	Default     any   `mapstructure:"defaultValue"`
	Required    any   `mapstructure:"required"`
	Values      []any `mapstructure:"values"`
	Children    []any `mapstructure:"parameters"`

	present map[string]bool
}

// decodeRaw decodes raw into the field contract. Unknown elements are a
// schema violation.
func decodeRaw(raw map[string]any) (*rawDeclaration, error) {
	decl := &rawDeclaration{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      decl,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrSchemaViolation, err.Error())
	}
	decl.present = make(map[string]bool, len(raw))
	for key, v := range raw {
		if v != nil {
			decl.present[canonicalLabel(key)] = true
		}
	}
	return decl, nil
}

func (d *rawDeclaration) has(label string) bool {
	return d.present[label]
}

// Validate checks a raw declaration, and recursively its children, against
// the declaration schema. It does not apply defaults; the name, index and
// required elements may be absent.
func Validate(raw map[string]any) error {
	return validate(raw, make(map[string]bool))
}

func validate(raw map[string]any, seen map[string]bool) error {
	decl, err := decodeRaw(raw)
	if err != nil {
		return err
	}

	identifier, ok := decl.ID.(string)
	if !decl.has(LabelID) || !ok || identifier == "" {
		return violation("", "missing or invalid element '%s'", LabelID)
	}
	if seen[identifier] {
		return violation(identifier, "duplicate identifier")
	}
	seen[identifier] = true

	tag, ok := decl.DataType.(string)
	if !decl.has(LabelDataType) || !ok {
		return violation(identifier, "missing or invalid element '%s'", LabelDataType)
	}
	dt, ok := ParseDataType(tag)
	if !ok {
		return violation(identifier, "unknown data type '%s'", tag)
	}

	if decl.has(LabelName) {
		if _, ok := decl.Name.(string); !ok {
			return violation(identifier, "element '%s' must be a string", LabelName)
		}
	}
	if decl.has(LabelDescription) {
		if _, ok := decl.Description.(string); !ok {
			return violation(identifier, "element '%s' must be a string", LabelDescription)
		}
	}
	if decl.has(LabelIndex) {
		if _, err := Coerce(TypeInteger, decl.Index); err != nil {
			return violation(identifier, "element '%s' must be an integer", LabelIndex)
		}
	}
	if decl.has(LabelRequired) {
		if _, ok := decl.Required.(bool); !ok {
			return violation(identifier, "element '%s' must be a boolean", LabelRequired)
		}
	}

	if dt.IsComposite() {
		if decl.has(LabelDefault) {
			return violation(identifier, "%s parameter cannot have a default value", dt)
		}
		if decl.has(LabelValues) {
			return violation(identifier, "%s parameter cannot have a list of values", dt)
		}
		children := rawChildren(raw)
		if len(children) == 0 || len(children) != len(decl.Children) {
			return violation(identifier, "%s parameter requires child parameters", dt)
		}
		for _, child := range children {
			if err := validate(child, seen); err != nil {
				return err
			}
		}
		return nil
	}

	if decl.has(LabelChildren) && len(decl.Children) > 0 {
		return violation(identifier, "%s parameter cannot have child parameters", dt)
	}

	var allowed []value.Value
	for _, item := range decl.Values {
		v, err := Coerce(dt, item)
		if err != nil {
			return violation(identifier, "invalid element in '%s': %s", LabelValues, err.Error())
		}
		allowed = append(allowed, v)
	}
	if decl.has(LabelDefault) {
		def, err := Coerce(dt, decl.Default)
		if err != nil {
			return violation(identifier, "invalid default value: %s", err.Error())
		}
		scalar := &Scalar{Type: dt, Values: allowed}
		if !scalar.Allows(def) {
			return violation(identifier, "default value %s is not in the list of values", def)
		}
	}

	return nil
}

func violation(identifier, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if identifier != "" {
		return fmt.Errorf("%w: parameter '%s': %s", errors.ErrSchemaViolation, identifier, msg)
	}
	return fmt.Errorf("%w: %s", errors.ErrSchemaViolation, msg)
}
