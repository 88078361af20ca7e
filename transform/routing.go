package transform

import (
	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/mapping"
	"github.com/lakeshore-digital/contentsync/remote"
)

// TabRoute is the resolved routing for one remote tab: where its elements
// land and in which language.
type TabRoute struct {
	TabID           string
	DestinationType string
	Language        string

	// Routes maps remote element id → local field path.
	Routes map[string]mapping.FieldPath

	// TextFormats carries per-element text format overrides.
	TextFormats map[string]string
}

// RoutingTable is the per-tab routing produced from one mapping + template
// pair, in template tab order.
type RoutingTable struct {
	Tabs []TabRoute
}

// Resolver turns stored mappings into routing tables and answers
// translation-capability queries for the core.
type Resolver struct {
	registry *entity.Registry
}

// NewResolver creates a resolver backed by the given schema registry.
func NewResolver(registry *entity.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// IsTranslatableTarget reports whether the local target supports
// per-language content variants.
func (r *Resolver) IsTranslatableTarget(entityType, bundle string) bool {
	return r.registry.IsTranslationEnabled(entityType, bundle)
}

// BuildRoutingTable determines, for each remote field of the template, which
// local field path and language it targets and whether the destination is
// content or metadata. Pure function of the mapping data and template;
// performs no I/O. Calling it twice with identical inputs yields an
// identical table.
func (r *Resolver) BuildRoutingTable(m *mapping.Mapping, tmpl *remote.Template) (*RoutingTable, error) {
	if !m.Configured() {
		return nil, configErr("", "", "mapping "+m.ID+" is not configured", ErrNoMappingData)
	}

	table := &RoutingTable{}
	for _, group := range tmpl.Groups {
		tab, ok := m.Data.Tab(group.ID)
		if !ok {
			continue
		}

		route := TabRoute{
			TabID:           group.ID,
			DestinationType: tab.Type,
			Language:        tab.Language,
			Routes:          make(map[string]mapping.FieldPath),
			TextFormats:     make(map[string]string),
		}
		if route.DestinationType == "" {
			route.DestinationType = mapping.DestinationContent
		}
		if route.Language == "" {
			route.Language = mapping.LanguageUnspecified
		}

		for elementID, path := range tab.Elements {
			// Only elements that still exist on the template are routed;
			// mappings can outlive remote template edits.
			if _, exists := group.Element(elementID); !exists {
				continue
			}
			route.Routes[elementID] = mapping.ParsePath(path)
			if format, ok := tab.ElementTextFormats[elementID]; ok {
				route.TextFormats[elementID] = format
			}
		}

		table.Tabs = append(table.Tabs, route)
	}
	return table, nil
}
