// Package tooling exposes template loading and argument reading to programs
// that embed the composer instead of running the CLI.
package tooling

import (
	"fmt"
	"io"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/cryptoutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/config"
	"github.com/deploymenttheory/go-workflow-templates/internal/logger"
	"github.com/deploymenttheory/go-workflow-templates/internal/scanner"
	"github.com/deploymenttheory/go-workflow-templates/internal/template"
)

// InitOptions contains options for initializing the tooling API
type InitOptions struct {
	ConfigFile  string // Path to configuration file
	Debug       bool   // Enable debug logging
	LogFormat   string // Log format: "human" or "json"
	LogFile     string // Path to log file
	SuppressLog bool   // Suppress all logging
}

// ReadResult contains the arguments read for a template
type ReadResult struct {
	Digest    string                 // Digest of the template the arguments belong to
	Arguments map[string]interface{} // Arguments by parameter identifier, nested for records
	Flat      map[string]interface{} // Arguments with record fields inlined
}

var initialized bool

// Initialize initializes the tooling API with the given options
func Initialize(options InitOptions) error {
	if initialized {
		return nil // Already initialized
	}

	configErr := config.Initialize(options.ConfigFile)

	// Update config with provided options
	if options.Debug {
		config.Instance.Debug = true
	}
	if options.LogFormat != "" {
		config.Instance.LogFormat = options.LogFormat
	}
	if options.LogFile != "" {
		config.Instance.LogFile = options.LogFile
	}

	if !options.SuppressLog {
		logConfig := logger.LoggerConfig{
			Debug:     config.Instance.Debug,
			LogFormat: config.Instance.LogFormat,
			LogFile:   config.Instance.LogFile,
		}
		if err := logger.InitLogger(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.LogInfo("Tooling API initialized", map[string]interface{}{
			"config_file": options.ConfigFile,
			"debug":       options.Debug,
			"log_format":  options.LogFormat,
		})
		if configErr != nil {
			logger.LogWarn("Configuration initialization warning", map[string]interface{}{
				"error": configErr.Error(),
			})
		}
	}

	initialized = true
	return nil
}

// DefaultOptions returns the default initialization options
func DefaultOptions() InitOptions {
	return InitOptions{
		LogFormat:   "human",
		SuppressLog: true,
	}
}

func ensureInitialized() error {
	if initialized {
		return nil
	}
	if err := Initialize(DefaultOptions()); err != nil {
		return fmt.Errorf("failed to initialize tooling API: %w", err)
	}
	return nil
}

// LoadTemplate loads a template file
func LoadTemplate(path string) (*template.Template, error) {
	if err := ensureInitialized(); err != nil {
		return nil, err
	}
	return template.Load(path, config.Instance.Template.Validate)
}

// ReadArguments loads a template and reads its arguments from tokens
func ReadArguments(path string, tokens ...string) (*ReadResult, error) {
	t, err := LoadTemplate(path)
	if err != nil {
		return nil, err
	}
	return read(t, scanner.NewListReader(tokens...))
}

// PromptArguments loads a template and prompts for its arguments, reading
// answers line by line from in
func PromptArguments(path string, in io.Reader, out io.Writer) (*ReadResult, error) {
	t, err := LoadTemplate(path)
	if err != nil {
		return nil, err
	}
	return read(t, scanner.NewPromptReader(in, out, config.Instance.Scanner.PromptSuffix))
}

func read(t *template.Template, r scanner.Reader) (*ReadResult, error) {
	sc := scanner.New(r, scanner.WithBoolAliases(config.Instance.Scanner.BoolAliases))
	args, err := t.Read(sc)
	if err != nil {
		return nil, err
	}

	digest, err := t.Digest(cryptoutil.BLAKE2b256)
	if err != nil {
		return nil, err
	}

	return &ReadResult{
		Digest:    digest,
		Arguments: args.Native(),
		Flat:      args.Flatten().Native(),
	}, nil
}

// GetVersion returns the current version of the tooling API
func GetVersion() string {
	return "0.1.0"
}

// Shutdown performs any necessary cleanup before the application exits
func Shutdown() error {
	if initialized {
		logger.LogInfo("Tooling API shutting down", nil)
		logger.Sync()
	}
	return nil
}
