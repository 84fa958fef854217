// Package hclutil converts between HCL documents and plain Go values.
//
// Only top-level attributes are supported, which is enough for documents such
// as:
//
//	workflow = {
//	  version = "0.3.0"
//	}
//
//	parameters = [
//	  { id = "sleeptime", datatype = "integer", defaultValue = 10 },
//	]
//
// Attribute expressions are evaluated without variables or functions, so
// every value must be a literal.
package hclutil

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Decode parses an HCL document and returns its top-level attributes
func Decode(data []byte, filename string) (map[string]interface{}, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, diags.Error())
	}

	// Evaluate in source order so the first error reported is the first in the file
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return attrs[names[i]].Range.Start.Byte < attrs[names[j]].Range.Start.Byte
	})

	result := make(map[string]interface{}, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, diags.Error())
		}
		native, err := ToNative(val)
		if err != nil {
			return nil, fmt.Errorf("%w: attribute '%s': %v", errors.ErrUnsupportedFile, name, err)
		}
		result[name] = native
	}

	return result, nil
}

// ToNative recursively converts a cty.Value to its most natural Go
// counterpart. Whole numbers become int64, other numbers float64.
func ToNative(v cty.Value) (interface{}, error) {
	// A nil or unknown value becomes a nil interface{}.
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, fmt.Errorf("could not convert bool: %w", err)
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]interface{}, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]interface{})
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", keyStr, err)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}

// Encode renders data as an HCL document of top-level attributes, in key
// order
func Encode(data map[string]interface{}) ([]byte, error) {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	file := hclwrite.NewEmptyFile()
	body := file.Body()
	for i, name := range names {
		if !hclsyntax.ValidIdentifier(name) {
			return nil, fmt.Errorf("%w: '%s' is not a valid attribute name", errors.ErrUnsupportedFile, name)
		}
		val, err := FromNative(data[name])
		if err != nil {
			return nil, fmt.Errorf("%w: attribute '%s': %v", errors.ErrUnsupportedFile, name, err)
		}
		if i > 0 {
			body.AppendNewline()
		}
		body.SetAttributeValue(name, val)
	}

	return hclwrite.Format(file.Bytes()), nil
}

// FromNative converts plain Go values, as produced by the document decoders,
// to a cty.Value. Slices become tuples and maps become objects so that mixed
// element types survive.
func FromNative(v interface{}) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case uint64:
		return cty.NumberUIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case []interface{}:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(val))
		for _, item := range val {
			elem, err := FromNative(item)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, elem)
		}
		return cty.TupleVal(elems), nil
	case []map[string]interface{}:
		items := make([]interface{}, len(val))
		for i, item := range val {
			items[i] = item
		}
		return FromNative(items)
	case map[string]interface{}:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for key, item := range val {
			attr, err := FromNative(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in attribute '%s': %w", key, err)
			}
			attrs[key] = attr
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, fmt.Errorf("unsupported type %T", v)
}
