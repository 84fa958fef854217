// Package scanner reads raw tokens from a Reader and converts them into
// values of the primitive parameter types.
//
// Every call consumes exactly one token, whether or not it converts. A
// failed conversion therefore still advances the stream; the next call sees
// the following token.
package scanner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/parameter"
	"github.com/deploymenttheory/go-workflow-templates/internal/value"
)

// Scanner converts tokens from one Reader into typed values
type Scanner struct {
	reader      Reader
	boolAliases bool
}

// Option configures a Scanner
type Option func(*Scanner)

// WithBoolAliases makes NextBool accept yes and no besides true and false
func WithBoolAliases(enabled bool) Option {
	return func(s *Scanner) { s.boolAliases = enabled }
}

// New creates a scanner reading from r
func New(r Reader, opts ...Option) *Scanner {
	s := &Scanner{reader: r}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt passes label on to the reader if it shows prompts
func (s *Scanner) Prompt(label string) {
	if p, ok := s.reader.(Prompter); ok {
		p.Prompt(label)
	}
}

// Token returns the next raw token
func (s *Scanner) Token() (string, error) {
	return s.reader.Next()
}

// NextInt reads a base-10 integer
func (s *Scanner) NextInt() (int64, error) {
	token, err := s.Token()
	if err != nil {
		return 0, err
	}
	return ParseInt(token)
}

// NextFloat reads a floating point number
func (s *Scanner) NextFloat() (float64, error) {
	token, err := s.Token()
	if err != nil {
		return 0, err
	}
	return ParseFloat(token)
}

// NextBool reads true or false, ignoring case
func (s *Scanner) NextBool() (bool, error) {
	token, err := s.Token()
	if err != nil {
		return false, err
	}
	return s.parseBool(token)
}

// NextFile reads a file path. The path is returned as is; whether the file
// exists is not checked.
func (s *Scanner) NextFile() (string, error) {
	return s.Token()
}

// NextString reads a string
func (s *Scanner) NextString() (string, error) {
	return s.Token()
}

// Next reads one token and converts it to the primitive data type dt
func (s *Scanner) Next(dt parameter.DataType) (value.Value, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}
	return s.Parse(dt, token)
}

// Parse converts token to the primitive data type dt
func (s *Scanner) Parse(dt parameter.DataType, token string) (value.Value, error) {
	switch dt {
	case parameter.TypeInteger:
		i, err := ParseInt(token)
		if err != nil {
			return nil, err
		}
		return value.Int(i), nil
	case parameter.TypeFloat:
		f, err := ParseFloat(token)
		if err != nil {
			return nil, err
		}
		return value.Float(f), nil
	case parameter.TypeBoolean:
		b, err := s.parseBool(token)
		if err != nil {
			return nil, err
		}
		return value.Bool(b), nil
	case parameter.TypeFile, parameter.TypeString:
		return value.String(token), nil
	}
	return nil, fmt.Errorf("%w: cannot scan values of type %s", errors.ErrInvalidArgument, dt)
}

// ParseInt converts a base-10 integer literal
func ParseInt(token string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' is not an integer", errors.ErrInvalidValue, token)
	}
	return i, nil
}

// ParseFloat converts a finite floating point literal. NaN and the
// infinities are rejected since bound arguments must encode as JSON.
func ParseFloat(token string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: '%s' is not a number", errors.ErrInvalidValue, token)
	}
	return f, nil
}

// ParseBool converts true or false, ignoring case
func ParseBool(token string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: '%s' is not a boolean", errors.ErrInvalidValue, token)
}

func (s *Scanner) parseBool(token string) (bool, error) {
	if s.boolAliases {
		switch strings.ToLower(strings.TrimSpace(token)) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
	}
	return ParseBool(token)
}
