package parameter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-workflow-templates/internal/value"
	"github.com/spf13/cast"
)

// Coerce converts a decoded document value (a default or an element of the
// values list) into a typed value of the primitive data type dt. Document
// decoders disagree on number representations, so integers may arrive as
// any Go integer type or as an integral float.
func Coerce(dt DataType, v any) (value.Value, error) {
	if v == nil {
		return nil, fmt.Errorf("missing value for type %s", dt)
	}

	switch dt {
	case TypeInteger:
		if f, ok := v.(float64); ok && (f != math.Trunc(f) || math.IsInf(f, 0)) {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
		if _, ok := v.(bool); ok {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
		// Strings follow the scanner: base 10 only, no prefixes.
		if s, ok := v.(string); ok {
			i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("'%s' is not a base-10 integer", s)
			}
			return value.Int(i), nil
		}
		i, err := cast.ToInt64E(v)
		if err != nil {
			return nil, err
		}
		return value.Int(i), nil

	case TypeFloat:
		if _, ok := v.(bool); ok {
			return nil, fmt.Errorf("%v is not a float", v)
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%v is not a finite number", v)
		}
		return value.Float(f), nil

	case TypeBoolean:
		switch v.(type) {
		case bool, string:
		default:
			return nil, fmt.Errorf("%v is not a boolean", v)
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, err
		}
		return value.Bool(b), nil

	case TypeString, TypeFile:
		switch v.(type) {
		case map[string]any, map[any]any, []any:
			return nil, fmt.Errorf("%v is not a scalar", v)
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	}

	return nil, fmt.Errorf("type %s has no scalar values", dt)
}
