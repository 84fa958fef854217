package scanner

import (
	"errors"
	"strings"
	"testing"

	commonerrors "github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/parameter"
	"github.com/deploymenttheory/go-workflow-templates/internal/value"
)

func TestScannerReadsEachType(t *testing.T) {
	sc := New(NewListReaderFromValues(42, 1.5, true, "data/in.txt", "free text"))

	i, err := sc.NextInt()
	if err != nil || i != 42 {
		t.Errorf("NextInt() = %d, %v; want 42", i, err)
	}
	f, err := sc.NextFloat()
	if err != nil || f != 1.5 {
		t.Errorf("NextFloat() = %v, %v; want 1.5", f, err)
	}
	b, err := sc.NextBool()
	if err != nil || !b {
		t.Errorf("NextBool() = %v, %v; want true", b, err)
	}
	file, err := sc.NextFile()
	if err != nil || file != "data/in.txt" {
		t.Errorf("NextFile() = %q, %v; want data/in.txt", file, err)
	}
	s, err := sc.NextString()
	if err != nil || s != "free text" {
		t.Errorf("NextString() = %q, %v; want free text", s, err)
	}

	if _, err := sc.NextString(); !errors.Is(err, commonerrors.ErrEndOfInput) {
		t.Errorf("read past the end: error = %v, want ErrEndOfInput", err)
	}
}

func TestScannerFailureConsumesToken(t *testing.T) {
	sc := New(NewListReader("abc", "7"))

	if _, err := sc.NextInt(); !errors.Is(err, commonerrors.ErrInvalidValue) {
		t.Fatalf("NextInt(abc) error = %v, want ErrInvalidValue", err)
	}

	i, err := sc.NextInt()
	if err != nil || i != 7 {
		t.Errorf("NextInt() after failure = %d, %v; want 7", i, err)
	}
}

func TestScannerTokenSequences(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		read    func(*Scanner) (any, error)
		want    any
		wantErr error
	}{
		{
			name:   "integer",
			tokens: []string{"3"},
			read:   func(sc *Scanner) (any, error) { return sc.NextInt() },
			want:   int64(3),
		},
		{
			name:   "float",
			tokens: []string{"34.56"},
			read:   func(sc *Scanner) (any, error) { return sc.NextFloat() },
			want:   34.56,
		},
		{
			name:   "boolean in upper case",
			tokens: []string{"FALSE"},
			read:   func(sc *Scanner) (any, error) { return sc.NextBool() },
			want:   false,
		},
		{
			name:   "file",
			tokens: []string{"data/names.txt"},
			read:   func(sc *Scanner) (any, error) { return sc.NextFile() },
			want:   "data/names.txt",
		},
		{
			name:   "string with spaces",
			tokens: []string{"Some text"},
			read:   func(sc *Scanner) (any, error) { return sc.NextString() },
			want:   "Some text",
		},
		{
			name:    "boolean as integer",
			tokens:  []string{"FALSE"},
			read:    func(sc *Scanner) (any, error) { return sc.NextInt() },
			wantErr: commonerrors.ErrInvalidValue,
		},
		{
			name:    "boolean as float",
			tokens:  []string{"FALSE"},
			read:    func(sc *Scanner) (any, error) { return sc.NextFloat() },
			wantErr: commonerrors.ErrInvalidValue,
		},
		{
			name:    "integer as boolean",
			tokens:  []string{"3"},
			read:    func(sc *Scanner) (any, error) { return sc.NextBool() },
			wantErr: commonerrors.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.read(New(NewListReader(tt.tokens...)))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestScannerReadsTokensInOrder(t *testing.T) {
	sc := New(NewListReader("3", "34.56", "FALSE", "data/names.txt", "Some text"))

	i, err := sc.NextInt()
	if err != nil || i != 3 {
		t.Errorf("NextInt() = %d, %v; want 3", i, err)
	}
	f, err := sc.NextFloat()
	if err != nil || f != 34.56 {
		t.Errorf("NextFloat() = %v, %v; want 34.56", f, err)
	}
	b, err := sc.NextBool()
	if err != nil || b {
		t.Errorf("NextBool() = %v, %v; want false", b, err)
	}
	file, err := sc.NextFile()
	if err != nil || file != "data/names.txt" {
		t.Errorf("NextFile() = %q, %v; want data/names.txt", file, err)
	}
	s, err := sc.NextString()
	if err != nil || s != "Some text" {
		t.Errorf("NextString() = %q, %v; want Some text", s, err)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		token   string
		want    int64
		wantErr bool
	}{
		{"3", 3, false},
		{"-15", -15, false},
		{" 8 ", 8, false},
		{"0x10", 0, true},
		{"1.0", 0, true},
		{"", 0, true},
		{"9223372036854775808", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseInt(tt.token)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseInt(%q) = %d, %v; want %d, error %v", tt.token, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestParseFloat(t *testing.T) {
	for _, token := range []string{"1", "2.5", "-0.1", "1e3"} {
		if _, err := ParseFloat(token); err != nil {
			t.Errorf("ParseFloat(%q) failed: %v", token, err)
		}
	}
	for _, token := range []string{"one", "NaN", "Inf", "-infinity", "1e400"} {
		if _, err := ParseFloat(token); !errors.Is(err, commonerrors.ErrInvalidValue) {
			t.Errorf("ParseFloat(%q) error = %v, want ErrInvalidValue", token, err)
		}
	}
}

func TestParseBool(t *testing.T) {
	for token, want := range map[string]bool{"true": true, "TRUE": true, "False": false} {
		got, err := ParseBool(token)
		if err != nil || got != want {
			t.Errorf("ParseBool(%q) = %v, %v; want %v", token, got, err, want)
		}
	}
	for _, token := range []string{"yes", "1", ""} {
		if _, err := ParseBool(token); !errors.Is(err, commonerrors.ErrInvalidValue) {
			t.Errorf("ParseBool(%q) error = %v, want ErrInvalidValue", token, err)
		}
	}
}

func TestBoolAliases(t *testing.T) {
	plain := New(NewListReader("yes"))
	if _, err := plain.NextBool(); err == nil {
		t.Errorf("yes accepted without aliases")
	}

	aliased := New(NewListReader("Yes", "n"), WithBoolAliases(true))
	if b, err := aliased.NextBool(); err != nil || !b {
		t.Errorf("NextBool(Yes) = %v, %v; want true", b, err)
	}
	if b, err := aliased.NextBool(); err != nil || b {
		t.Errorf("NextBool(n) = %v, %v; want false", b, err)
	}
}

func TestNextByDataType(t *testing.T) {
	sc := New(NewListReader("5", "0.5", "false", "a.txt", "s"))

	types := []parameter.DataType{
		parameter.TypeInteger,
		parameter.TypeFloat,
		parameter.TypeBoolean,
		parameter.TypeFile,
		parameter.TypeString,
	}
	want := []value.Value{value.Int(5), value.Float(0.5), value.Bool(false), value.String("a.txt"), value.String("s")}

	for i, dt := range types {
		got, err := sc.Next(dt)
		if err != nil {
			t.Fatalf("Next(%s) failed: %v", dt, err)
		}
		if !value.Equal(got, want[i]) {
			t.Errorf("Next(%s) = %#v, want %#v", dt, got, want[i])
		}
	}

	if _, err := New(NewListReader("x")).Next(parameter.TypeRecord); !errors.Is(err, commonerrors.ErrInvalidArgument) {
		t.Errorf("Next(record) error = %v, want ErrInvalidArgument", err)
	}
}

func TestPromptReader(t *testing.T) {
	var out strings.Builder
	r := NewPromptReader(strings.NewReader("ABC.txt\r\n\n3\n"), &out, ": ")
	sc := New(r)

	sc.Prompt("Code file")
	first, err := sc.Token()
	if err != nil || first != "ABC.txt" {
		t.Errorf("first token = %q, %v; want ABC.txt", first, err)
	}

	sc.Prompt("Output (default x)")
	empty, err := sc.Token()
	if err != nil || empty != "" {
		t.Errorf("second token = %q, %v; want empty", empty, err)
	}

	sc.Prompt("Sleep time")
	n, err := sc.NextInt()
	if err != nil || n != 3 {
		t.Errorf("NextInt() = %d, %v; want 3", n, err)
	}

	if _, err := sc.Token(); !errors.Is(err, commonerrors.ErrEndOfInput) {
		t.Errorf("token at EOF: error = %v, want ErrEndOfInput", err)
	}

	want := "Code file: Output (default x): Sleep time: Sleep time: "
	if out.String() != want {
		t.Errorf("prompts = %q, want %q", out.String(), want)
	}
}

func TestListReaderRemaining(t *testing.T) {
	r := NewListReader("a", "b")
	r.Next()
	if r.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", r.Remaining())
	}
}
