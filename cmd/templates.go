package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakeshore-digital/contentsync/rules"
)

var templatesConfigPath string

var templatesCmd = &cobra.Command{
	Use:   "templates <template-id>",
	Short: "Inspect a remote template's structure",
	Long: `Fetch a remote template and print its tabs, elements, and the local
field types each element may map to. Useful while authoring a mapping.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplates,
}

func init() {
	templatesCmd.Flags().StringVar(&templatesConfigPath, "config", "contentsync.yaml", "Site config file")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	e, err := buildEnv(templatesConfigPath)
	if err != nil {
		return err
	}
	if e.client == nil {
		return fmt.Errorf("no API configured")
	}

	tmpl, err := e.client.GetTemplate(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (project %s)\n", tmpl.Name, tmpl.ProjectID)
	for _, group := range tmpl.Groups {
		fmt.Fprintf(out, "  tab %s: %s\n", group.ID, group.Label)
		for _, elem := range group.Elements {
			fmt.Fprintf(out, "    %-24s %-16s -> %v\n",
				elem.ID, elem.Type, rules.CompatibleLocalTypes(elem.Type))
		}
	}
	return nil
}
