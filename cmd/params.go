package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/deploymenttheory/go-workflow-templates/internal/parameter"
	"github.com/spf13/cobra"
)

// paramsCmd lists the parameters of a template
var paramsCmd = &cobra.Command{
	Use:   "params <template>",
	Short: "List the parameters of a template in reading order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTemplate(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, d := range t.List() {
			printDeclaration(out, d, 0)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}

func printDeclaration(w io.Writer, d parameter.Declaration, depth int) {
	meta := d.Meta()

	line := fmt.Sprintf("%s%s (%s)", strings.Repeat("  ", depth), meta.Identifier, d.DataType())
	if meta.Required {
		line += " required"
	}
	if s, ok := d.(*parameter.Scalar); ok {
		if s.HasDefault() {
			line += " default=" + s.Default.String()
		}
		if len(s.Values) > 0 {
			values := make([]string, len(s.Values))
			for i, v := range s.Values {
				values[i] = v.String()
			}
			line += " values=" + strings.Join(values, "|")
		}
	}
	if meta.Name != meta.Identifier {
		line += fmt.Sprintf(" %q", meta.Name)
	}
	fmt.Fprintln(w, line)

	for _, child := range d.Children() {
		printDeclaration(w, child, depth+1)
	}
}
