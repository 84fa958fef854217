package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-workflow-templates/internal/config"
	"github.com/deploymenttheory/go-workflow-templates/internal/logger"
	"github.com/deploymenttheory/go-workflow-templates/internal/scanner"
	"github.com/spf13/cobra"
)

var readArgs []string
var readFlat bool

// readCmd reads the arguments for a template's parameters
var readCmd = &cobra.Command{
	Use:   "read <template>",
	Short: "Read arguments for the parameters of a template",
	Long: `Read the arguments for every parameter of a template and print them as JSON.

Arguments are consumed in parameter order, one per primitive parameter. A list
parameter takes its number of items first. Without --arg the arguments are
prompted for on the terminal; an empty answer selects the default.`,
	Example: `  template-composer read hello.yaml --arg ABC.txt --arg 3 --arg XYZ.txt --arg 6
  template-composer read hello.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTemplate(args[0])
		if err != nil {
			return err
		}

		var reader scanner.Reader
		if cmd.Flags().Changed("arg") {
			reader = scanner.NewListReader(readArgs...)
		} else {
			reader = scanner.NewPromptReader(cmd.InOrStdin(), cmd.ErrOrStderr(), config.Instance.Scanner.PromptSuffix)
		}
		sc := scanner.New(reader, scanner.WithBoolAliases(config.Instance.Scanner.BoolAliases))

		arguments, err := t.Read(sc)
		if err != nil {
			return err
		}
		if list, ok := reader.(*scanner.ListReader); ok && list.Remaining() > 0 {
			logger.LogWarn("Unused arguments", map[string]interface{}{
				"count": list.Remaining(),
			})
		}

		if readFlat {
			arguments = arguments.Flatten()
		}
		return writeJSON(cmd.OutOrStdout(), arguments)
	},
}

func init() {
	readCmd.Flags().StringArrayVarP(&readArgs, "arg", "a", nil, "Argument token, repeat in parameter order")
	readCmd.Flags().BoolVar(&readFlat, "flat", false, "Inline record fields into a single level")
	rootCmd.AddCommand(readCmd)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

