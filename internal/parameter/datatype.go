package parameter

import "strings"

// DataType is the closed set of parameter types a template may declare
type DataType string

const (
	// TypeString is free-form text
	TypeString DataType = "string"

	// TypeInteger is a base-10 integer
	TypeInteger DataType = "integer"

	// TypeFloat is a floating point number
	TypeFloat DataType = "float"

	// TypeBoolean is true or false
	TypeBoolean DataType = "boolean"

	// TypeFile is a path to a file. The path is not checked.
	TypeFile DataType = "file"

	// TypeList repeats the child declarations once per item
	TypeList DataType = "list"

	// TypeRecord groups the child declarations under one identifier
	TypeRecord DataType = "record"
)

// dataTypeAliases maps accepted spellings onto the canonical data type
var dataTypeAliases = map[string]DataType{
	"string":  TypeString,
	"integer": TypeInteger,
	"int":     TypeInteger,
	"float":   TypeFloat,
	"boolean": TypeBoolean,
	"bool":    TypeBoolean,
	"file":    TypeFile,
	"list":    TypeList,
	"record":  TypeRecord,
}

// ParseDataType resolves a data type tag. Unknown tags are rejected.
func ParseDataType(tag string) (DataType, bool) {
	dt, ok := dataTypeAliases[strings.ToLower(strings.TrimSpace(tag))]
	return dt, ok
}

// IsComposite reports whether the type carries child declarations
func (dt DataType) IsComposite() bool {
	return dt == TypeList || dt == TypeRecord
}

// IsPrimitive reports whether the type is scanned from a single token
func (dt DataType) IsPrimitive() bool {
	switch dt {
	case TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeFile:
		return true
	}
	return false
}
