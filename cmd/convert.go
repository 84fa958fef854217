package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// convertCmd rewrites a template in another format
var convertCmd = &cobra.Command{
	Use:   "convert <source> <target>",
	Short: "Convert a template between formats",
	Long: `Convert a template between YAML, JSON, property list and HCL. The formats
are taken from the file extensions; a trailing .gz, .bz2 or .xz compresses
the target. Defaults are filled in on the way.`,
	Example: `  template-composer convert hello.yaml hello.plist
  template-composer convert hello.hcl hello.json.xz`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTemplate(args[0])
		if err != nil {
			return err
		}
		if err := t.Save(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
