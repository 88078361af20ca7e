package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakeshore-digital/contentsync/transform"
	"github.com/lakeshore-digital/contentsync/vocab"
)

var (
	exportConfigPath string
	exportItemFile   string
	pushContent      bool
	statusID         string
)

var exportCmd = &cobra.Command{
	Use:   "export <mapping> [item-id]",
	Short: "Export a local entity back to remote item content",
	Long: `Round-trip an item through a mapping: import it into the working store,
export the resulting entity, and print the content payload.

With --push the payload is sent back to the remote API, optionally moving the
item to a workflow status.

Examples:
  contentsync export article-mapping 123456 --config site.yaml
  contentsync export article-mapping --item-file item.json --config site.yaml
  contentsync export article-mapping 123456 --push --status 7 --config site.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportConfigPath, "config", "contentsync.yaml", "Site config file")
	exportCmd.Flags().StringVar(&exportItemFile, "item-file", "", "Item JSON file instead of an item id")
	exportCmd.Flags().BoolVar(&pushContent, "push", false, "Send the payload to the remote API")
	exportCmd.Flags().StringVar(&statusID, "status", "", "Workflow status to choose after pushing")
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := buildEnv(exportConfigPath)
	if err != nil {
		return err
	}

	m, err := e.mapping(args[0])
	if err != nil {
		return err
	}

	var files []string
	if exportItemFile != "" {
		files = []string{exportItemFile}
	}
	items, err := collectItems(cmd, e, files, args[1:])
	if err != nil {
		return err
	}
	if len(items) != 1 {
		return fmt.Errorf("export needs exactly one item")
	}
	item := items[0]

	reconciler := vocab.NewReconciler(e.store, e.registry, vocab.ModeAutomatic)
	importer := transform.NewImporter(e.store, e.registry, reconciler, e.client, nil, transform.Options{
		FileDir:              e.cfg.FileDir,
		SyncFilesPerLanguage: e.cfg.SyncFilesPerLanguage,
	})

	ent, err := importer.ImportItem(cmd.Context(), m, item)
	if err != nil {
		return err
	}

	payload, err := transform.NewExporter(e.store, e.registry).ExportEntity(cmd.Context(), m, ent)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if pushContent {
		if e.client == nil {
			return fmt.Errorf("--push requires a configured API")
		}
		if err := e.client.UpdateItemContent(cmd.Context(), item.ID, payload); err != nil {
			return err
		}
		if statusID != "" {
			if err := e.client.ChooseStatus(cmd.Context(), item.ID, statusID); err != nil {
				return err
			}
		}
	}
	return nil
}
