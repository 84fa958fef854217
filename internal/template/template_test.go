package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	commonerrors "github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/cryptoutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/parameter"
	"github.com/deploymenttheory/go-workflow-templates/internal/scanner"
	"github.com/google/go-cmp/cmp"
)

func loadTestdata(t *testing.T, name string) *Template {
	t.Helper()
	tmpl, err := Load(filepath.Join("testdata", name), true)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", name, err)
	}
	return tmpl
}

func TestLoadTemplateWithParameters(t *testing.T) {
	tmpl := loadTestdata(t, "template.yaml")

	if got := tmpl.Workflow()["version"]; got != "0.3.0" {
		t.Errorf("workflow version = %v, want 0.3.0", got)
	}
	if tmpl.Parameters().Len() != 2 {
		t.Fatalf("template has %d parameters, want 2", tmpl.Parameters().Len())
	}

	code, err := tmpl.Get("codeFile")
	if err != nil {
		t.Fatalf("Get(codeFile) failed: %v", err)
	}
	if code.Meta().Name != "Code File" || code.DataType() != parameter.TypeFile {
		t.Errorf("codeFile = %q (%s), want Code File (file)", code.Meta().Name, code.DataType())
	}

	sleep, err := tmpl.Get("sleeptime")
	if err != nil {
		t.Fatalf("Get(sleeptime) failed: %v", err)
	}
	if sleep.Meta().Name != "sleeptime" || sleep.DataType() != parameter.TypeInteger {
		t.Errorf("sleeptime = %q (%s), want sleeptime (integer)", sleep.Meta().Name, sleep.DataType())
	}
}

func TestLoadSimpleTemplate(t *testing.T) {
	tmpl := loadTestdata(t, "simple-template.yaml")
	if tmpl.Parameters().Len() != 0 {
		t.Errorf("template has %d parameters, want 0", tmpl.Parameters().Len())
	}
	if _, ok := tmpl.Document()[LabelParameters]; ok {
		t.Errorf("document of a template without parameters lists parameters")
	}
}

func TestLoadFormatsAgree(t *testing.T) {
	want, err := loadTestdata(t, "template.yaml").Digest(cryptoutil.BLAKE2b256)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}

	for _, name := range []string{"template.json", "template.hcl"} {
		t.Run(name, func(t *testing.T) {
			got, err := loadTestdata(t, name).Digest(cryptoutil.BLAKE2b256)
			if err != nil {
				t.Fatalf("Digest failed: %v", err)
			}
			if got != want {
				t.Errorf("digest of %s = %s, want %s", name, got, want)
			}
		})
	}
}

func TestLoadPlist(t *testing.T) {
	tmpl := loadTestdata(t, "template.plist")

	want := []string{"codeFile", "sleeptime"}
	var got []string
	for _, d := range tmpl.List() {
		got = append(got, d.Meta().Identifier)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	original := loadTestdata(t, "template.yaml")
	want, err := original.Digest(cryptoutil.SHA256)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{
		"out.json",
		"out.yml",
		"out.hcl",
		"out.plist",
		"out.yaml.gz",
		"out.json.bz2",
		"out.hcl.xz",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := original.Save(path); err != nil {
				t.Fatalf("Save(%s) failed: %v", name, err)
			}

			loaded, err := Load(path, true)
			if err != nil {
				t.Fatalf("Load(%s) failed: %v", name, err)
			}
			got, err := loaded.Digest(cryptoutil.SHA256)
			if err != nil {
				t.Fatalf("Digest failed: %v", err)
			}
			if got != want {
				t.Errorf("digest after %s round trip = %s, want %s", name, got, want)
			}
		})
	}
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown element", "extra.yaml", "workflow: {}\nparameters: []\nextra: 1\n", commonerrors.ErrInvalidTemplate},
		{"missing workflow", "noworkflow.yaml", "parameters: []\n", commonerrors.ErrInvalidTemplate},
		{"parameters not a list", "params.json", `{"workflow": {}, "parameters": {"id": "x"}}`, commonerrors.ErrInvalidTemplate},
		{"invalid declaration", "decl.yaml", "workflow: {}\nparameters:\n  - id: x\n", commonerrors.ErrSchemaViolation},
		{"unsupported extension", "template.txt", "workflow: {}\n", commonerrors.ErrUnsupportedFile},
		{"malformed json", "broken.json", `{"workflow": `, commonerrors.ErrUnsupportedFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path, true)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"), true)
	if !errors.Is(err, commonerrors.ErrFileNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrFileNotFound", err)
	}
}

func TestTemplateRead(t *testing.T) {
	tmpl := loadTestdata(t, "template.yaml")

	args, err := tmpl.Read(scanner.New(scanner.NewListReader("code/helloworld.py", "")))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	want := map[string]any{"codeFile": "code/helloworld.py", "sleeptime": int64(10)}
	if diff := cmp.Diff(want, args.Native()); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestAddParameter(t *testing.T) {
	tmpl, err := New(nil, nil, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := tmpl.AddParameter(parameter.Declare("a", parameter.WithIndex(1))); err != nil {
		t.Fatalf("AddParameter(a) failed: %v", err)
	}
	if _, err := tmpl.AddParameter(parameter.Declare("b")); err != nil {
		t.Fatalf("AddParameter(b) failed: %v", err)
	}
	if _, err := tmpl.AddParameter(parameter.Declare("a")); !errors.Is(err, commonerrors.ErrSchemaViolation) {
		t.Errorf("AddParameter(duplicate) error = %v, want ErrSchemaViolation", err)
	}

	var ids []string
	for _, d := range tmpl.List() {
		ids = append(ids, d.Meta().Identifier)
	}
	if diff := cmp.Diff([]string{"b", "a"}, ids); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if got := len(tmpl.Document()[LabelParameters].([]interface{})); got != 2 {
		t.Errorf("document lists %d parameters, want 2", got)
	}
}

func TestVerifyDigest(t *testing.T) {
	tmpl := loadTestdata(t, "template.yaml")

	digest, err := tmpl.Digest(cryptoutil.SHA512)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if !strings.HasPrefix(digest, "sha512:") {
		t.Errorf("digest %s lacks its algorithm prefix", digest)
	}

	ok, err := tmpl.VerifyDigest(digest)
	if err != nil || !ok {
		t.Errorf("VerifyDigest(own digest) = %v, %v; want true", ok, err)
	}

	blake, _ := tmpl.Digest(cryptoutil.BLAKE2b256)
	ok, err = tmpl.VerifyDigest(strings.TrimPrefix(blake, "blake2b:"))
	if err != nil || !ok {
		t.Errorf("VerifyDigest(unprefixed) = %v, %v; want true", ok, err)
	}

	ok, _ = tmpl.VerifyDigest("sha256:0000")
	if ok {
		t.Errorf("VerifyDigest accepted a wrong digest")
	}
}
