package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakeshore-digital/contentsync/batch"
	"github.com/lakeshore-digital/contentsync/remote"
	"github.com/lakeshore-digital/contentsync/transform"
	"github.com/lakeshore-digital/contentsync/vocab"
)

var (
	configPath string
	itemFiles  []string
	vocabMode  string
)

var importCmd = &cobra.Command{
	Use:   "import <mapping> [item-id...]",
	Short: "Import remote items into local entities",
	Long: `Import one or more remote items through a stored mapping.

Item ids are fetched from the remote API; --item-file reads item JSON from
disk instead, which needs no API access.

Examples:
  contentsync import article-mapping 123456 123457 --config site.yaml
  contentsync import article-mapping --item-file item.json --config site.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&configPath, "config", "contentsync.yaml", "Site config file")
	importCmd.Flags().StringSliceVar(&itemFiles, "item-file", nil, "Item JSON file (repeatable)")
	importCmd.Flags().StringVar(&vocabMode, "vocab-mode", string(vocab.ModeAutomatic), "Vocabulary reconciliation mode (manual, automatic, semiautomatic)")
}

func runImport(cmd *cobra.Command, args []string) error {
	e, err := buildEnv(configPath)
	if err != nil {
		return err
	}

	m, err := e.mapping(args[0])
	if err != nil {
		return err
	}

	items, err := collectItems(cmd, e, itemFiles, args[1:])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no items to import")
	}

	reconciler := vocab.NewReconciler(e.store, e.registry, vocab.Mode(vocabMode))
	importer := transform.NewImporter(e.store, e.registry, reconciler, e.client, transform.NewMemoryTracker(), transform.Options{
		FileDir:              e.cfg.FileDir,
		SyncFilesPerLanguage: e.cfg.SyncFilesPerLanguage,
	})

	results := batch.NewRunner(e.cfg.Workers).ImportItems(cmd.Context(), importer, m, items)

	failed := batch.Failed(results)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", res.ItemID, res.Err)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", res.ItemID)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d items failed", len(failed), len(results))
	}
	return nil
}

// collectItems assembles the items to process from JSON files on disk plus
// ids fetched through the remote API.
func collectItems(cmd *cobra.Command, e *env, files, ids []string) ([]*remote.Item, error) {
	var items []*remote.Item

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var item remote.Item
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		items = append(items, &item)
	}

	if len(ids) > 0 && e.client == nil {
		return nil, fmt.Errorf("item ids given but no API configured")
	}
	for _, id := range ids {
		item, err := e.client.GetItem(cmd.Context(), id)
		if err != nil {
			return nil, fmt.Errorf("fetching item %s: %w", id, err)
		}
		items = append(items, item)
	}
	return items, nil
}
