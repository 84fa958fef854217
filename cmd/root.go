package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/fsutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/config"
	"github.com/deploymenttheory/go-workflow-templates/internal/logger"
	"github.com/deploymenttheory/go-workflow-templates/internal/template"
	"github.com/spf13/cobra"
)

// Version of the command line tool
const Version = "0.1.0"

var cfgFile string
var noValidate bool

// rootCmd represents the base CLI command
var rootCmd = &cobra.Command{
	Use:   "template-composer",
	Short: "A CLI tool for reading workflow template arguments",
	Long: `template-composer loads workflow templates, which pair a workflow
specification with declarations of the parameters it expects, and reads the
arguments for those parameters either from the command line or by prompting.

Templates may be written in YAML, JSON, property list or HCL form, optionally
compressed with gzip, bzip2 or xz.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// If config file was explicitly specified via flag, reinitialize
		if cmd.Flags().Changed("config") && cfgFile != "" {
			config.Reset()
			if err := config.Initialize(cfgFile); err != nil {
				return err
			}
		}

		// CLI flags override config settings
		if cmd.Flags().Changed("debug") {
			config.Instance.Debug, _ = cmd.Flags().GetBool("debug")
		}
		if cmd.Flags().Changed("log-format") {
			config.Instance.LogFormat, _ = cmd.Flags().GetString("log-format")
		}
		if cmd.Flags().Changed("log-file") {
			config.Instance.LogFile, _ = cmd.Flags().GetString("log-file")
		}

		return logger.InitLogger(logger.LoggerConfig{
			Debug:     config.Instance.Debug,
			LogFormat: config.Instance.LogFormat,
			LogFile:   config.Instance.LogFile,
		})
	},
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.LogError("Command execution failed", err, nil)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is search in standard locations)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "human", "Log format: json or human")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&noValidate, "no-validate", false, "Skip validation of parameter declarations")

	rootCmd.AddCommand(versionCmd)
}

// loadTemplate loads a template, validating its parameter declarations
// unless disabled by configuration or flag
func loadTemplate(name string) (*template.Template, error) {
	path, err := resolveTemplatePath(name)
	if err != nil {
		return nil, err
	}
	return template.Load(path, config.Instance.Template.Validate && !noValidate)
}

// resolveTemplatePath expands a leading tilde and falls back to the
// configured template directory for relative names that do not exist
func resolveTemplatePath(name string) (string, error) {
	path, err := fsutil.ExpandTilde(name)
	if err != nil {
		return "", err
	}

	if !fsutil.FileExists(path) && !filepath.IsAbs(path) && config.Instance.Template.Dir != "" {
		candidate := filepath.Join(config.Instance.Template.Dir, path)
		if fsutil.FileExists(candidate) {
			return candidate, nil
		}
	}
	return path, nil
}

// versionCmd shows the application version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "template-composer v%s\n", Version)
	},
}
