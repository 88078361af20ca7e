package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/remote"
	"github.com/lakeshore-digital/contentsync/vocab"
)

func TestExportEntityRoundTrip(t *testing.T) {
	ctx := context.Background()
	im, store, reg := newTestImporter(t, false)

	m := fixtureMapping()
	e, err := im.ImportItem(ctx, m, fixtureItem())
	require.NoError(t, err)

	ex := NewExporter(store, reg)
	payload, err := ex.ExportEntity(ctx, m, e)
	require.NoError(t, err)

	require.Equal(t, "First article", payload["el_title"])
	require.Equal(t, "<p>Hello</p>", payload["el_body"])
	require.Equal(t, "2024-03-15", payload["el_date"])
	require.Equal(t, []remote.OptionSelection{{ID: "op1"}}, payload["el_radio"])
	require.ElementsMatch(t, []remote.OptionSelection{{ID: "op1"}, {ID: "op2"}},
		payload["el_check"].([]remote.OptionSelection))
	require.Equal(t, "A", payload["el_para_text"])
	require.Equal(t, "caption A", payload["el_para_caption"])
	require.Equal(t, "An article about colors", payload["el_desc"])
}

func TestExportEntityOmitsEmptyFields(t *testing.T) {
	ctx := context.Background()
	reg := fixtureRegistry(t, false)
	store := entity.NewMemoryStore("en")

	e := store.Create("node", "article")
	e.SetLabel("Only a title")
	require.NoError(t, store.Save(ctx, e))

	ex := NewExporter(store, reg)
	payload, err := ex.ExportEntity(ctx, fixtureMapping(), e)
	require.NoError(t, err)

	require.Equal(t, "Only a title", payload["el_title"])
	require.NotContains(t, payload, "el_body")
	require.NotContains(t, payload, "el_radio")
	require.NotContains(t, payload, "el_para_text")
}

func TestExportEntityDropsStaleOptions(t *testing.T) {
	ctx := context.Background()
	im, store, reg := newTestImporter(t, false)

	m := fixtureMapping()
	e, err := im.ImportItem(ctx, m, fixtureItem())
	require.NoError(t, err)

	// The remote editor later removed op1 from both choice elements.
	for _, group := range []string{"tab1"} {
		g, _ := m.Template.Group(group)
		for i := range g.Elements {
			elem := &g.Elements[i]
			if !elem.IsChoice() {
				continue
			}
			var kept []remote.Option
			for _, opt := range elem.Options {
				if opt.Name != "op1" {
					kept = append(kept, opt)
				}
			}
			elem.Options = kept
		}
	}

	ex := NewExporter(store, reg)
	payload, err := ex.ExportEntity(ctx, m, e)
	require.NoError(t, err)

	require.NotContains(t, payload, "el_radio", "term tracking only a stale option is omitted")
	require.Equal(t, []remote.OptionSelection{{ID: "op2"}}, payload["el_check"],
		"surviving options still export")
}

func TestExportEntityNoTemplateSnapshot(t *testing.T) {
	ctx := context.Background()
	reg := fixtureRegistry(t, false)
	store := entity.NewMemoryStore("en")

	m := fixtureMapping()
	m.Template = nil

	ex := NewExporter(store, reg)
	_, err := ex.ExportEntity(ctx, m, store.Create("node", "article"))

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
}

func TestExportEntityMissingTranslationOmitted(t *testing.T) {
	ctx := context.Background()
	im, store, reg := newTestImporter(t, true)

	m := fixtureMapping()
	m.Data[0].Language = "en"
	e, err := im.ImportItem(ctx, m, fixtureItem())
	require.NoError(t, err)

	// Point the content tab at a language the entity never got.
	m.Data[0].Language = "fr"

	ex := NewExporter(store, reg)
	payload, err := ex.ExportEntity(ctx, m, e)
	require.NoError(t, err)
	require.NotContains(t, payload, "el_body")
	require.NotContains(t, payload, "el_title")
}

func TestExportEntityPlainChoiceValues(t *testing.T) {
	ctx := context.Background()
	reg := fixtureRegistry(t, false)

	// Remap the choices onto plain fields instead of term references.
	reg.Register(&entity.Definition{
		EntityType: "node",
		Bundle:     "article",
		Fields: []entity.FieldDefinition{
			{Name: "field_color", Type: entity.TypeString},
			{Name: "field_tags", Type: entity.TypeListString, Cardinality: entity.Unlimited},
		},
	})

	store := entity.NewMemoryStore("en")
	e := store.Create("node", "article")
	e.Set("field_color", "op1")
	e.Set("field_tags", []string{"op2", "op_gone"})
	require.NoError(t, store.Save(ctx, e))

	m := fixtureMapping()
	ex := NewExporter(store, reg)
	payload, err := ex.ExportEntity(ctx, m, e)
	require.NoError(t, err)

	require.Equal(t, []remote.OptionSelection{{ID: "op1"}}, payload["el_radio"])
	require.Equal(t, []remote.OptionSelection{{ID: "op2"}}, payload["el_check"],
		"names not in the live option set are dropped")
}

func TestExportEntityManualTermWithRecordedAssociation(t *testing.T) {
	ctx := context.Background()
	reg := fixtureRegistry(t, false)
	store := entity.NewMemoryStore("en")
	rec := vocab.NewReconciler(store, reg, vocab.ModeManual)

	term := store.Create(vocab.EntityType, "colors")
	term.SetLabel("Blue")
	require.NoError(t, store.Save(ctx, term))
	require.NoError(t, rec.RecordAssociation(ctx, "colors", "op2", term.ID(), "en"))

	e := store.Create("node", "article")
	e.Set("field_color", []string{term.ID()})
	require.NoError(t, store.Save(ctx, e))

	ex := NewExporter(store, reg)
	payload, err := ex.ExportEntity(ctx, fixtureMapping(), e)
	require.NoError(t, err)
	require.Equal(t, []remote.OptionSelection{{ID: "op2"}}, payload["el_radio"])
}
