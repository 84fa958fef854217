package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/spf13/cast"
)

// Reader is a source of raw tokens. Next returns errors.ErrEndOfInput once
// the source is exhausted.
type Reader interface {
	Next() (string, error)
}

// Prompter is implemented by readers that show the user a label before
// waiting for the next token
type Prompter interface {
	Prompt(label string)
}

// ListReader returns a pre-supplied sequence of tokens strictly in order
type ListReader struct {
	tokens []string
	pos    int
}

// NewListReader creates a reader over tokens
func NewListReader(tokens ...string) *ListReader {
	return &ListReader{tokens: tokens}
}

// NewListReaderFromValues creates a reader over the string form of values.
// It lets scripted callers pass numbers and booleans directly.
func NewListReaderFromValues(values ...any) *ListReader {
	tokens := make([]string, len(values))
	for i, v := range values {
		tokens[i] = cast.ToString(v)
	}
	return NewListReader(tokens...)
}

// Next returns the next token
func (r *ListReader) Next() (string, error) {
	if r.pos >= len(r.tokens) {
		return "", errors.ErrEndOfInput
	}
	token := r.tokens[r.pos]
	r.pos++
	return token, nil
}

// Remaining returns the number of tokens not read yet
func (r *ListReader) Remaining() int {
	return len(r.tokens) - r.pos
}

// PromptReader reads one line per token from an input stream, writing the
// current label to an output stream first. It blocks until a line is
// available.
type PromptReader struct {
	in     *bufio.Scanner
	out    io.Writer
	suffix string
	label  string
}

// NewPromptReader creates a reader of lines from in that prompts on out.
// The suffix is appended to every label.
func NewPromptReader(in io.Reader, out io.Writer, suffix string) *PromptReader {
	return &PromptReader{
		in:     bufio.NewScanner(in),
		out:    out,
		suffix: suffix,
	}
}

// Prompt sets the label shown before the next read
func (r *PromptReader) Prompt(label string) {
	r.label = label
}

// Next writes the prompt and returns the next line without its line ending
func (r *PromptReader) Next() (string, error) {
	if r.out != nil && r.label != "" {
		fmt.Fprint(r.out, r.label+r.suffix)
	}
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", errors.ErrEndOfInput
	}
	return strings.TrimRight(r.in.Text(), "\r"), nil
}
