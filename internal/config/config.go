package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/fsutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/osutil"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name used for config files and directories
	AppName = "template-composer"

	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "TEMPLATE_COMPOSER"
)

// AppConfig holds the application configuration
type AppConfig struct {
	// Core settings
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`

	// Template loading settings
	Template struct {
		Validate bool   `mapstructure:"validate"` // Validate parameter declarations on load
		Dir      string `mapstructure:"dir"`      // Directory searched for templates given by name
	} `mapstructure:"template"`

	// Argument scanning settings
	Scanner struct {
		PromptSuffix string `mapstructure:"prompt_suffix"` // Appended to the parameter name when prompting
		BoolAliases  bool   `mapstructure:"bool_aliases"`  // Accept yes/no for boolean parameters
	} `mapstructure:"scanner"`
}

// Global variables
var (
	// Global configuration instance
	Instance AppConfig

	// Status indicators
	ConfigLoaded bool
	ConfigFile   string

	// Viper instance
	v *viper.Viper

	// Ensure thread safety
	initOnce sync.Once
)

// Initialize sets up the configuration system
func Initialize(cfgFile string) error {
	var err error

	initOnce.Do(func() {
		v = viper.New()

		setDefaults(v)

		// Load configuration from file if specified
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		} else {
			v.SetConfigName(AppName)
			v.SetConfigType("yaml")
			addSearchPaths(v)
		}

		// Set up environment variables
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr != nil {
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				// Only capture error if the config file was found but couldn't be read
				err = fmt.Errorf("%w: %v", errors.ErrConfigParseError, readErr)
			}
			// Using defaults and environment variables
			ConfigLoaded = false
			ConfigFile = ""
		} else {
			ConfigLoaded = true
			ConfigFile = v.ConfigFileUsed()
		}

		if unmarshalErr := v.Unmarshal(&Instance); unmarshalErr != nil {
			err = fmt.Errorf("%w: %v", errors.ErrConfigParseError, unmarshalErr)
			return
		}

		if validateErr := validate(&Instance); validateErr != nil {
			err = validateErr
		}
	})

	return err
}

// Reset discards the loaded configuration so that Initialize reads it again
func Reset() {
	initOnce = sync.Once{}
	Instance = AppConfig{}
	ConfigLoaded = false
	ConfigFile = ""
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Core settings
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("log_file", "")

	// Template defaults
	v.SetDefault("template.validate", true)
	templateDir, err := fsutil.GetTemplateDir(AppName)
	if err == nil {
		v.SetDefault("template.dir", templateDir)
	} else {
		v.SetDefault("template.dir", "templates")
	}

	// Scanner defaults
	v.SetDefault("scanner.prompt_suffix", ": ")
	v.SetDefault("scanner.bool_aliases", true)
}

// addSearchPaths adds config search paths
func addSearchPaths(v *viper.Viper) {
	// Always check current directory first
	v.AddConfigPath(".")

	// In dev mode, only use current directory and user config directory
	if osutil.IsDevEnvironment() {
		configDir, err := fsutil.GetConfigDir(AppName)
		if err == nil {
			v.AddConfigPath(configDir)
		}
		return
	}

	// In CI/Pipeline, only use current directory and explicit CI directories
	if osutil.IsRunningInPipeline() {
		v.AddConfigPath("/etc/" + AppName)
		return
	}

	configDir, err := fsutil.GetConfigDir(AppName)
	if err == nil {
		v.AddConfigPath(configDir)
	}

	systemConfigDir, err := fsutil.GetSystemConfigDir(AppName)
	if err == nil {
		v.AddConfigPath(systemConfigDir)
	}
}

// validate checks the settings that have a closed set of values
func validate(cfg *AppConfig) error {
	switch cfg.LogFormat {
	case "human", "json":
	default:
		return fmt.Errorf("%w: unsupported log format '%s'", errors.ErrConfigInvalid, cfg.LogFormat)
	}
	return nil
}
