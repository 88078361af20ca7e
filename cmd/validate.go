package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakeshore-digital/contentsync/mapping"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate <mapping-file>",
	Short: "Run mapping-edit validation on a mapping file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "contentsync.yaml", "Site config file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	e, err := buildEnv(validateConfigPath)
	if err != nil {
		return err
	}

	m, err := mapping.LoadMapping(args[0])
	if err != nil {
		return err
	}

	errs := mapping.Validate(m, e.registry)
	if len(errs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "mapping is valid")
		return nil
	}
	for _, msg := range errs {
		fmt.Fprintln(cmd.OutOrStdout(), "error:", msg)
	}
	return fmt.Errorf("%d validation errors", len(errs))
}
