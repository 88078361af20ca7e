package remote

import "context"

// Client is the boundary to the remote content API. The transformation core
// only ever talks to the remote system through this interface.
type Client interface {
	// GetTemplate fetches a template structure by id.
	GetTemplate(ctx context.Context, templateID string) (*Template, error)

	// GetItem fetches a content item by id, including its config tabs.
	GetItem(ctx context.Context, itemID string) (*Item, error)

	// GetItemFiles lists the files uploaded against an item.
	GetItemFiles(ctx context.Context, itemID string) ([]File, error)

	// DownloadFiles downloads the given files into destDir and returns the
	// local paths in the same order. language is advisory only; remote APIs
	// that store files per language may vary the variant served.
	DownloadFiles(ctx context.Context, files []File, destDir, language string) ([]string, error)

	// UpdateItemContent pushes a flat element-id→value content payload.
	UpdateItemContent(ctx context.Context, itemID string, content map[string]any) error

	// ChooseStatus moves an item to the given workflow status.
	ChooseStatus(ctx context.Context, itemID, statusID string) error
}
