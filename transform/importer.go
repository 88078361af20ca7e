package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/mapping"
	"github.com/lakeshore-digital/contentsync/remote"
	"github.com/lakeshore-digital/contentsync/value"
	"github.com/lakeshore-digital/contentsync/vocab"
)

// FileEntityType is the local entity type holding downloaded attachments.
const FileEntityType = "file"

// Options configures import behavior.
type Options struct {
	// FileDir is where downloaded attachments land.
	FileDir string

	// SyncFilesPerLanguage downloads files on every language pass. When
	// false, non-default-language passes skip attachment fields entirely.
	SyncFilesPerLanguage bool
}

// Importer converts a remote item's field values into local entity field
// values, driven by a mapping's routing table.
type Importer struct {
	store      entity.Store
	registry   *entity.Registry
	resolver   *Resolver
	walker     *Walker
	reconciler *vocab.Reconciler
	client     remote.Client
	tracker    Tracker
	opts       Options
}

// NewImporter wires an importer from its collaborators. client and tracker
// may be nil: without a client attachment fields are skipped, without a
// tracker every import creates a fresh entity.
func NewImporter(store entity.Store, registry *entity.Registry, reconciler *vocab.Reconciler, client remote.Client, tracker Tracker, opts Options) *Importer {
	return &Importer{
		store:      store,
		registry:   registry,
		resolver:   NewResolver(registry),
		walker:     NewWalker(store, registry),
		reconciler: reconciler,
		client:     client,
		tracker:    tracker,
		opts:       opts,
	}
}

// ImportItem imports one remote item through the mapping, mutating (or
// creating) the local target entity and saving it. Only configuration-class
// failures return an error; per-field misses are absorbed and logged. The
// entity is not saved when a configuration error aborts field processing.
func (im *Importer) ImportItem(ctx context.Context, m *mapping.Mapping, item *remote.Item) (entity.Entity, error) {
	tmpl, err := im.template(ctx, m)
	if err != nil {
		return nil, withItem(err, item.ID)
	}

	table, err := im.resolver.BuildRoutingTable(m, tmpl)
	if err != nil {
		return nil, withItem(err, item.ID)
	}

	target := im.targetEntity(ctx, m, item)
	files := im.itemFiles(ctx, table, tmpl, item)
	pass := NewPass()

	for _, route := range table.Tabs {
		itemTab, ok := item.Tab(route.TabID)
		if !ok {
			continue
		}

		if route.DestinationType == mapping.DestinationMetadata {
			im.importMetadataTab(target, route, itemTab)
			continue
		}

		for i := range itemTab.Elements {
			elem := &itemTab.Elements[i]
			path, ok := route.Routes[elem.ID]
			if !ok {
				continue
			}

			if path.String() == mapping.TitleField {
				ent, _ := translationFor(im.registry, target, route.Language, true)
				ent.SetLabel(elem.Value)
				continue
			}

			format := route.TextFormats[elem.ID]
			leaf := func(tgt entity.Entity, fieldName string, field *entity.FieldDefinition) error {
				return im.importField(ctx, tgt, fieldName, field, elem, format, route.Language, files)
			}
			if err := im.walker.ApplyAtPath(ctx, target, path, pass, leaf); err != nil {
				return nil, withItem(err, item.ID)
			}
		}
	}

	if err := im.store.Save(ctx, target); err != nil {
		return nil, fmt.Errorf("saving entity for item %s: %w", item.ID, err)
	}
	if im.tracker != nil {
		im.tracker.SetLocalID(item.ID, target.ID())
	}
	return target, nil
}

// template returns the mapping's template snapshot, fetching it from the
// remote API when the snapshot is absent.
func (im *Importer) template(ctx context.Context, m *mapping.Mapping) (*remote.Template, error) {
	if m.Template != nil {
		return m.Template, nil
	}
	if im.client == nil {
		return nil, configErr("", "", "mapping "+m.ID+" has no template snapshot", nil)
	}
	tmpl, err := im.client.GetTemplate(ctx, m.TemplateID)
	if err != nil {
		return nil, configErr("", "", "fetching template "+m.TemplateID, err)
	}
	return tmpl, nil
}

// targetEntity loads the entity a previous import created for this item, or
// creates a fresh one.
func (im *Importer) targetEntity(ctx context.Context, m *mapping.Mapping, item *remote.Item) entity.Entity {
	if im.tracker != nil {
		if localID, ok := im.tracker.LocalID(item.ID); ok {
			if e, err := im.store.Load(ctx, m.EntityType, localID); err == nil {
				return e
			}
		}
	}
	return im.store.Create(m.EntityType, m.Bundle)
}

// itemFiles fetches the item's file list once, when any routed element is an
// attachment field. A fetch failure skips attachments, not the item.
func (im *Importer) itemFiles(ctx context.Context, table *RoutingTable, tmpl *remote.Template, item *remote.Item) []remote.File {
	if im.client == nil {
		return nil
	}
	needed := false
	for _, route := range table.Tabs {
		group, ok := tmpl.Group(route.TabID)
		if !ok {
			continue
		}
		for elementID := range route.Routes {
			if elem, ok := group.Element(elementID); ok && elem.Type == remote.ElementFiles {
				needed = true
			}
		}
	}
	if !needed {
		return nil
	}

	files, err := im.client.GetItemFiles(ctx, item.ID)
	if err != nil {
		slog.Warn("listing item files failed, skipping attachments", "item", item.ID, "error", err)
		return nil
	}
	return files
}

func (im *Importer) importMetadataTab(target entity.Entity, route TabRoute, itemTab *remote.ItemTab) {
	ent, _ := translationFor(im.registry, target, route.Language, true)
	tags := readMetatags(ent)
	for i := range itemTab.Elements {
		elem := &itemTab.Elements[i]
		path, ok := route.Routes[elem.ID]
		if !ok {
			continue
		}
		tags[path.String()] = elem.Value
	}
	writeMetatags(ent, tags)
}

// importField applies one remote element value to the resolved terminal
// field, dispatching on the element type.
func (im *Importer) importField(ctx context.Context, target entity.Entity, fieldName string, field *entity.FieldDefinition, elem *remote.Element, formatOverride, language string, files []remote.File) error {
	ent, _ := translationFor(im.registry, target, language, true)

	switch elem.Type {
	case remote.ElementSection, remote.ElementGuidelines:
		ent.Set(fieldName, entity.Text{
			Value:  "<h3>" + elem.Title + "</h3>" + elem.Subtitle,
			Format: entity.FormatRichHTML,
		})
	case remote.ElementChoiceRadio:
		im.importRadio(ctx, ent, fieldName, field, elem, language)
	case remote.ElementChoiceCheckbox:
		im.importCheckbox(ctx, ent, fieldName, field, elem, language)
	case remote.ElementFiles:
		im.importFiles(ctx, ent, fieldName, elem, language, files)
	default:
		im.importText(ent, fieldName, field, elem, formatOverride)
	}
	return nil
}

func (im *Importer) importText(ent entity.Entity, fieldName string, field *entity.FieldDefinition, elem *remote.Element, formatOverride string) {
	switch field.Type {
	case entity.TypeDate, entity.TypeDateTime:
		t, err := value.ParseTimestamp(elem.Value)
		if err != nil {
			slog.Warn("skipping unparseable date value",
				"field", fieldName, "value", elem.Value)
			return
		}
		if field.Type == entity.TypeDate {
			ent.Set(fieldName, t.Format(value.DateStorageFormat))
		} else {
			ent.Set(fieldName, t.Format(value.DateTimeStorageFormat))
		}
	case entity.TypeString, entity.TypeStringLong, entity.TypeEmail, entity.TypeTelephone:
		ent.Set(fieldName, elem.Value)
	default:
		format := formatOverride
		if format == "" {
			format = entity.FormatRichHTML
			if elem.PlainText {
				format = entity.FormatPlain
			}
		}
		ent.Set(fieldName, entity.Text{Value: elem.Value, Format: format})
	}
}

func (im *Importer) importRadio(ctx context.Context, ent entity.Entity, fieldName string, field *entity.FieldDefinition, elem *remote.Element, language string) {
	for _, opt := range elem.SelectedOptions() {
		if opt.Value != nil {
			// Free-form "other" value, no stable option identity.
			if field.Type == entity.TypeEntityReference {
				id, err := im.reconciler.FindOrCreateByLabel(ctx, field.Vocabulary, *opt.Value, language)
				if err != nil {
					slog.Warn("skipping unresolvable option value",
						"field", fieldName, "value", *opt.Value, "error", err)
					continue
				}
				ent.Set(fieldName, []string{id})
			} else {
				ent.Set(fieldName, *opt.Value)
			}
			continue
		}

		if field.Type == entity.TypeEntityReference {
			id, err := im.reconciler.ResolveOrCreate(ctx, field.Vocabulary, opt.Name, opt.Label, language)
			if err != nil {
				if !errors.Is(err, vocab.ErrNotResolved) {
					slog.Warn("skipping unresolvable option",
						"field", fieldName, "option", opt.Name, "error", err)
				}
				continue
			}
			ent.Set(fieldName, []string{id})
		} else {
			ent.Set(fieldName, opt.Name)
		}
	}
}

func (im *Importer) importCheckbox(ctx context.Context, ent entity.Entity, fieldName string, field *entity.FieldDefinition, elem *remote.Element, language string) {
	if field.Type == entity.TypeEntityReference {
		refs := []string{}
		for _, opt := range elem.SelectedOptions() {
			if opt.Value != nil {
				continue
			}
			id, err := im.reconciler.ResolveOrCreate(ctx, field.Vocabulary, opt.Name, opt.Label, language)
			if err != nil {
				continue
			}
			refs = append(refs, id)
		}
		// The full list replaces any prior value, including down to empty.
		ent.Set(fieldName, refs)
		return
	}

	names := []string{}
	for _, opt := range elem.SelectedOptions() {
		if opt.Value != nil {
			continue
		}
		names = append(names, opt.Name)
	}
	ent.Set(fieldName, names)
}

func (im *Importer) importFiles(ctx context.Context, ent entity.Entity, fieldName string, elem *remote.Element, language string, files []remote.File) {
	defaultLang := im.registry.DefaultLanguage()
	if language != "" && language != mapping.LanguageUnspecified &&
		language != defaultLang && !im.opts.SyncFilesPerLanguage {
		return
	}

	var matched []remote.File
	for _, f := range files {
		if f.Field == elem.ID {
			matched = append(matched, f)
		}
	}
	if len(matched) == 0 {
		return
	}

	var lastID string
	var toDownload []remote.File
	for _, f := range matched {
		existing, err := im.store.LoadByProperties(ctx, FileEntityType, map[string]any{
			"remote_file_id": f.ID,
			"filename":       f.Filename,
		})
		if err == nil && len(existing) > 0 {
			lastID = existing[0].ID()
			continue
		}
		toDownload = append(toDownload, f)
	}

	if len(toDownload) > 0 && im.client != nil {
		paths, err := im.client.DownloadFiles(ctx, toDownload, im.opts.FileDir, language)
		if err != nil {
			slog.Warn("file download failed", "field", fieldName, "error", err)
		}
		for i, f := range toDownload {
			if i >= len(paths) {
				break
			}
			fe := im.store.Create(FileEntityType, FileEntityType)
			fe.SetLabel(f.Filename)
			fe.Set("filename", f.Filename)
			fe.Set("remote_file_id", f.ID)
			fe.Set("uri", paths[i])
			if err := im.store.Save(ctx, fe); err != nil {
				slog.Warn("saving file entity failed", "filename", f.Filename, "error", err)
				continue
			}
			lastID = fe.ID()
		}
	}

	if lastID != "" {
		ent.Set(fieldName, lastID)
	}
}

// translationFor resolves the entity variant a read or write should target.
// When the bundle is not translatable, or the tab language is unspecified,
// the base entity is used. Import passes create the translation on demand;
// export passes report ok=false when it does not exist.
func translationFor(registry *entity.Registry, e entity.Entity, language string, create bool) (entity.Entity, bool) {
	if language == "" || language == mapping.LanguageUnspecified {
		return e, true
	}
	if !registry.IsTranslationEnabled(e.EntityType(), e.Bundle()) {
		return e, true
	}
	if create {
		return e.NewTranslation(language), true
	}
	return e.Translation(language)
}

// withItem attaches the item id to a propagating configuration error.
func withItem(err error, itemID string) error {
	var ce *ConfigError
	if errors.As(err, &ce) && ce.ItemID == "" {
		ce.ItemID = itemID
	}
	return err
}
