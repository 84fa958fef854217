package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	commonerrors "github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template-composer.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestInitializeDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	chdir(t, t.TempDir())

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if Instance.LogFormat != "human" {
		t.Errorf("LogFormat = %q, want human", Instance.LogFormat)
	}
	if !Instance.Template.Validate {
		t.Errorf("Template.Validate = false, want true")
	}
	if Instance.Scanner.PromptSuffix != ": " {
		t.Errorf("Scanner.PromptSuffix = %q, want \": \"", Instance.Scanner.PromptSuffix)
	}
	if !Instance.Scanner.BoolAliases {
		t.Errorf("Scanner.BoolAliases = false, want true")
	}
}

func TestInitializeFromFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := writeConfig(t, `
debug: true
log_format: json
template:
  validate: false
  dir: /srv/templates
scanner:
  prompt_suffix: " > "
  bool_aliases: false
`)
	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if !ConfigLoaded || ConfigFile != path {
		t.Errorf("ConfigLoaded = %v, ConfigFile = %q; want true, %q", ConfigLoaded, ConfigFile, path)
	}
	if !Instance.Debug || Instance.LogFormat != "json" {
		t.Errorf("core settings not loaded: %+v", Instance)
	}
	if Instance.Template.Validate || Instance.Template.Dir != "/srv/templates" {
		t.Errorf("template settings not loaded: %+v", Instance.Template)
	}
	if Instance.Scanner.PromptSuffix != " > " || Instance.Scanner.BoolAliases {
		t.Errorf("scanner settings not loaded: %+v", Instance.Scanner)
	}
}

func TestInitializeEnvironmentOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	chdir(t, t.TempDir())
	t.Setenv("TEMPLATE_COMPOSER_SCANNER_BOOL_ALIASES", "false")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if Instance.Scanner.BoolAliases {
		t.Errorf("environment did not override scanner.bool_aliases")
	}
}

func TestInitializeRejectsLogFormat(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := writeConfig(t, "log_format: xml\n")
	if err := Initialize(path); !errors.Is(err, commonerrors.ErrConfigInvalid) {
		t.Errorf("Initialize() error = %v, want ErrConfigInvalid", err)
	}
}
