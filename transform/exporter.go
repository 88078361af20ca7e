package transform

import (
	"context"
	"log/slog"

	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/mapping"
	"github.com/lakeshore-digital/contentsync/remote"
	"github.com/lakeshore-digital/contentsync/value"
	"github.com/lakeshore-digital/contentsync/vocab"
)

// Exporter converts a local entity back into a flat remote-field-id→value
// content payload through the same mapping used to import it.
type Exporter struct {
	store    entity.Store
	registry *entity.Registry
	resolver *Resolver
	walker   *Walker
}

// NewExporter wires an exporter over the local store and schema registry.
func NewExporter(store entity.Store, registry *entity.Registry) *Exporter {
	return &Exporter{
		store:    store,
		registry: registry,
		resolver: NewResolver(registry),
		walker:   NewWalker(store, registry),
	}
}

// ExportEntity produces the content payload for the remote API. Fields whose
// branch is absent, whose translation does not exist, or whose tracked
// option ids have gone stale are omitted rather than erroring. Section,
// guidelines, and attachment elements produce no payload entry.
func (ex *Exporter) ExportEntity(ctx context.Context, m *mapping.Mapping, e entity.Entity) (map[string]any, error) {
	if m.Template == nil {
		return nil, configErr("", "", "mapping "+m.ID+" has no template snapshot", nil)
	}

	table, err := ex.resolver.BuildRoutingTable(m, m.Template)
	if err != nil {
		return nil, err
	}

	payload := make(map[string]any)
	pass := NewPass()

	for _, route := range table.Tabs {
		group, ok := m.Template.Group(route.TabID)
		if !ok {
			continue
		}

		if route.DestinationType == mapping.DestinationMetadata {
			ex.exportMetadataTab(payload, route, group, e)
			continue
		}

		for i := range group.Elements {
			elem := &group.Elements[i]
			path, ok := route.Routes[elem.ID]
			if !ok {
				continue
			}

			if path.String() == mapping.TitleField {
				if ent, ok := translationFor(ex.registry, e, route.Language, false); ok {
					if label := ent.Label(); label != "" {
						payload[elem.ID] = label
					}
				}
				continue
			}

			switch elem.Type {
			case remote.ElementSection, remote.ElementGuidelines:
				// Authoring guidance, not user content.
				continue
			case remote.ElementFiles:
				// Attachment export is deliberately unimplemented.
				continue
			}

			target, fieldName, field, ok := ex.walker.ResolveTarget(ctx, e, path, pass)
			if !ok {
				continue
			}
			ent, ok := translationFor(ex.registry, target, route.Language, false)
			if !ok {
				continue
			}

			switch elem.Type {
			case remote.ElementChoiceRadio:
				ex.exportRadio(ctx, payload, ent, fieldName, field, elem)
			case remote.ElementChoiceCheckbox:
				ex.exportCheckbox(ctx, payload, ent, fieldName, field, elem)
			default:
				ex.exportText(payload, ent, fieldName, elem)
			}
		}
	}

	return payload, nil
}

func (ex *Exporter) exportMetadataTab(payload map[string]any, route TabRoute, group *remote.Group, e entity.Entity) {
	ent, ok := translationFor(ex.registry, e, route.Language, false)
	if !ok {
		return
	}
	tags := readMetatags(ent)
	for i := range group.Elements {
		elem := &group.Elements[i]
		path, ok := route.Routes[elem.ID]
		if !ok {
			continue
		}
		if v, ok := tags[path.String()]; ok && v != "" {
			payload[elem.ID] = v
		}
	}
}

func (ex *Exporter) exportText(payload map[string]any, ent entity.Entity, fieldName string, elem *remote.Element) {
	var s string
	switch v := ent.Get(fieldName).(type) {
	case string:
		s = v
	case entity.Text:
		s = v.Value
	}
	if s != "" {
		payload[elem.ID] = s
	}
}

// exportRadio resolves the single referenced term back to its tracked
// external option id, validated against the live option set; stale or
// renamed options are dropped.
func (ex *Exporter) exportRadio(ctx context.Context, payload map[string]any, ent entity.Entity, fieldName string, field *entity.FieldDefinition, elem *remote.Element) {
	if field != nil && field.Type == entity.TypeEntityReference {
		refs := value.TextSlice(ent.Get(fieldName))
		if len(refs) == 0 {
			return
		}
		term, err := ex.store.Load(ctx, vocab.EntityType, refs[0])
		if err != nil {
			slog.Debug("referenced term failed to load", "field", fieldName, "term", refs[0])
			return
		}
		for _, optionID := range vocab.TrackedOptionIDs(term) {
			if elem.HasOption(optionID) {
				payload[elem.ID] = []remote.OptionSelection{{ID: optionID}}
				return
			}
		}
		return
	}

	if name, _ := ent.Get(fieldName).(string); name != "" && elem.HasOption(name) {
		payload[elem.ID] = []remote.OptionSelection{{ID: name}}
	}
}

// exportCheckbox emits every referenced term's tracked option ids that are
// still valid for the element's current option set.
func (ex *Exporter) exportCheckbox(ctx context.Context, payload map[string]any, ent entity.Entity, fieldName string, field *entity.FieldDefinition, elem *remote.Element) {
	var selections []remote.OptionSelection

	if field != nil && field.Type == entity.TypeEntityReference {
		for _, ref := range value.TextSlice(ent.Get(fieldName)) {
			term, err := ex.store.Load(ctx, vocab.EntityType, ref)
			if err != nil {
				continue
			}
			for _, optionID := range vocab.TrackedOptionIDs(term) {
				if elem.HasOption(optionID) {
					selections = append(selections, remote.OptionSelection{ID: optionID})
				}
			}
		}
	} else {
		names, _ := ent.Get(fieldName).([]string)
		for _, name := range names {
			if elem.HasOption(name) {
				selections = append(selections, remote.OptionSelection{ID: name})
			}
		}
	}

	if len(selections) > 0 {
		payload[elem.ID] = selections
	}
}
