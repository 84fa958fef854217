// Package resolver reads the arguments for a list of parameter declarations
// from a scanner.
//
// Declarations are read in the order given, one token per primitive value,
// recursing into records and lists. The order is part of the contract:
// reordering declarations changes which token is bound to which parameter.
// Reading stops at the first error and no partial result is returned.
//
// A list parameter is read as an item count followed by the child
// declarations once per item. An empty count answer for an optional list
// means no items.
package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/logger"
	"github.com/deploymenttheory/go-workflow-templates/internal/parameter"
	"github.com/deploymenttheory/go-workflow-templates/internal/scanner"
	"github.com/deploymenttheory/go-workflow-templates/internal/value"
)

// Error reports the parameter whose argument could not be read
type Error struct {
	// Path locates the parameter, e.g. "outputs[1].target"
	Path string

	// Err is the underlying scanner or constraint failure
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parameter '%s': %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Read resolves the arguments for decls from sc
func Read(decls []parameter.Declaration, sc *scanner.Scanner) (*value.Map, error) {
	r := &reader{sc: sc}
	args, err := r.readAll(decls, "")
	if err != nil {
		return nil, err
	}
	logger.LogDebug("Resolved template arguments", map[string]interface{}{
		"parameters": args.Len(),
		"tokens":     r.tokens,
	})
	return args, nil
}

type reader struct {
	sc     *scanner.Scanner
	tokens int
}

func (r *reader) readAll(decls []parameter.Declaration, prefix string) (*value.Map, error) {
	args := value.NewMap()
	for _, d := range decls {
		path := d.Meta().Identifier
		if prefix != "" {
			path = prefix + "." + path
		}

		v, err := r.read(d, path)
		if err != nil {
			return nil, err
		}
		args.Set(d.Meta().Identifier, v)
	}
	return args, nil
}

func (r *reader) read(d parameter.Declaration, path string) (value.Value, error) {
	switch decl := d.(type) {
	case *parameter.Record:
		fields, err := r.readAll(decl.Fields, path)
		if err != nil {
			return nil, err
		}
		return value.Record{Map: fields}, nil

	case *parameter.List:
		return r.readList(decl, path)

	case *parameter.Scalar:
		return r.readScalar(decl, path)
	}
	return nil, &Error{Path: path, Err: fmt.Errorf("%w: unsupported declaration %T", errors.ErrInvalidArgument, d)}
}

func (r *reader) readList(decl *parameter.List, path string) (value.Value, error) {
	r.sc.Prompt(decl.Name + " (number of items)")
	token, err := r.token(path)
	if err != nil {
		return nil, err
	}

	var count int64
	switch {
	case token == "" && decl.Required:
		return nil, &Error{Path: path, Err: fmt.Errorf("%w: at least one item is required", errors.ErrInvalidValue)}
	case token == "":
		count = 0
	default:
		if count, err = scanner.ParseInt(token); err != nil {
			return nil, &Error{Path: path, Err: err}
		}
	}
	if count < 0 {
		return nil, &Error{Path: path, Err: fmt.Errorf("%w: negative item count %d", errors.ErrInvalidValue, count)}
	}
	if count == 0 && decl.Required {
		return nil, &Error{Path: path, Err: fmt.Errorf("%w: at least one item is required", errors.ErrInvalidValue)}
	}

	// The count comes from input; items are appended as they are read so an
	// overlong count ends with ErrEndOfInput instead of a huge allocation.
	items := value.List{}
	for i := int64(0); i < count; i++ {
		item, err := r.readAll(decl.Items, path+"["+strconv.FormatInt(i, 10)+"]")
		if err != nil {
			return nil, err
		}
		items = append(items, value.Record{Map: item})
	}
	return items, nil
}

func (r *reader) readScalar(decl *parameter.Scalar, path string) (value.Value, error) {
	r.sc.Prompt(promptLabel(decl))
	token, err := r.token(path)
	if err != nil {
		return nil, err
	}

	if token == "" {
		if decl.Required {
			return nil, &Error{Path: path, Err: fmt.Errorf("%w: a value is required", errors.ErrInvalidValue)}
		}
		if decl.HasDefault() {
			logger.LogDebug("Using default value", map[string]interface{}{
				"parameter": path,
				"value":     decl.Default.String(),
			})
			return decl.Default, nil
		}
	}

	v, err := r.sc.Parse(decl.Type, token)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if !decl.Allows(v) {
		return nil, &Error{Path: path, Err: fmt.Errorf("%w: %s is not one of %s", errors.ErrInvalidValue, v, value.List(decl.Values))}
	}
	return v, nil
}

func (r *reader) token(path string) (string, error) {
	token, err := r.sc.Token()
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	r.tokens++
	return token, nil
}

// promptLabel renders the name of a scalar parameter with its default and
// allowed values
func promptLabel(decl *parameter.Scalar) string {
	label := decl.Name
	if len(decl.Values) > 0 {
		label += " " + value.List(decl.Values).String()
	}
	if decl.HasDefault() {
		label += " (default " + decl.Default.String() + ")"
	}
	return strings.TrimSpace(label)
}
