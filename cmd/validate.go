package cmd

import (
	"fmt"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/cryptoutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/template"
	"github.com/spf13/cobra"
)

var expectedDigest string
var digestAlgorithm string

// validateCmd checks a template and optionally its digest
var validateCmd = &cobra.Command{
	Use:   "validate <template>",
	Short: "Validate a template and print its digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveTemplatePath(args[0])
		if err != nil {
			return err
		}
		t, err := template.Load(path, true)
		if err != nil {
			return err
		}

		if expectedDigest != "" {
			ok, err := t.VerifyDigest(expectedDigest)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: digest mismatch for %s", errors.ErrInvalidTemplate, args[0])
			}
		}

		digest, err := t.Digest(cryptoutil.HashAlgorithm(digestAlgorithm))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d parameters, %s\n", args[0], t.Parameters().Len(), digest)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&expectedDigest, "digest", "", "Expected digest, e.g. blake2b:<hex>")
	validateCmd.Flags().StringVar(&digestAlgorithm, "algorithm", string(cryptoutil.BLAKE2b256), "Digest algorithm: sha256, sha512 or blake2b")
	rootCmd.AddCommand(validateCmd)
}
