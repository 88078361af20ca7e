package transform

import (
	"testing"

	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/mapping"
	"github.com/lakeshore-digital/contentsync/remote"
)

// fixtureRegistry builds the article/paragraph/colors schema the transform
// tests run against.
func fixtureRegistry(t *testing.T, translatable bool) *entity.Registry {
	t.Helper()
	reg := entity.NewRegistry()
	reg.SetLanguages("en", []string{"en", "fr"})

	reg.Register(&entity.Definition{
		EntityType:   "node",
		Bundle:       "article",
		Translatable: translatable,
		Fields: []entity.FieldDefinition{
			{Name: "field_body", Type: entity.TypeText},
			{Name: "field_summary", Type: entity.TypeString},
			{Name: "field_date", Type: entity.TypeDate},
			{Name: "field_color", Type: entity.TypeEntityReference,
				RefEntityType: "taxonomy_term", RefBundle: "colors", Vocabulary: "colors"},
			{Name: "field_tags", Type: entity.TypeEntityReference, Cardinality: entity.Unlimited,
				RefEntityType: "taxonomy_term", RefBundle: "colors", Vocabulary: "colors"},
			{Name: "field_para", Type: entity.TypeCompositeRef, Cardinality: entity.Unlimited,
				RefEntityType: "paragraph", RefBundle: "copy"},
			{Name: MetatagField, Type: entity.TypeStringLong},
		},
	})
	reg.Register(&entity.Definition{
		EntityType: "paragraph",
		Bundle:     "copy",
		Fields: []entity.FieldDefinition{
			{Name: "field_text", Type: entity.TypeTextLong},
			{Name: "field_caption", Type: entity.TypeString},
		},
	})
	reg.Register(&entity.Definition{
		EntityType: "taxonomy_term",
		Bundle:     "colors",
		Fields: []entity.FieldDefinition{
			{Name: "field_option_ids", Type: entity.TypeStringLong, Cardinality: entity.Unlimited},
		},
	})
	return reg
}

func fixtureTemplate() *remote.Template {
	return &remote.Template{
		ID:        "t1",
		ProjectID: "p1",
		Name:      "Article",
		Groups: []remote.Group{
			{
				ID:    "tab1",
				Label: "Content",
				Elements: []remote.Element{
					{ID: "el_title", Type: remote.ElementText, Label: "Title", PlainText: true},
					{ID: "el_body", Type: remote.ElementText, Label: "Body"},
					{ID: "el_date", Type: remote.ElementText, Label: "Publish date", PlainText: true},
					{ID: "el_radio", Type: remote.ElementChoiceRadio, Label: "Color", OtherOption: true,
						Options: []remote.Option{
							{Name: "op1", Label: "Red"},
							{Name: "op2", Label: "Blue"},
						}},
					{ID: "el_check", Type: remote.ElementChoiceCheckbox, Label: "Tags",
						Options: []remote.Option{
							{Name: "op1", Label: "Red"},
							{Name: "op2", Label: "Blue"},
						}},
				},
			},
			{
				ID:    "tab2",
				Label: "Blocks",
				Elements: []remote.Element{
					{ID: "el_para_text", Type: remote.ElementText, Label: "Block text"},
					{ID: "el_para_caption", Type: remote.ElementText, Label: "Block caption", PlainText: true},
				},
			},
			{
				ID:    "tab3",
				Label: "SEO",
				Elements: []remote.Element{
					{ID: "el_desc", Type: remote.ElementText, Label: "Description", PlainText: true},
				},
			},
		},
	}
}

func fixtureMapping() *mapping.Mapping {
	return &mapping.Mapping{
		ID:         "m1",
		ProjectID:  "p1",
		TemplateID: "t1",
		EntityType: "node",
		Bundle:     "article",
		Template:   fixtureTemplate(),
		Data: mapping.MappingData{
			{
				TabID: "tab1",
				Type:  mapping.DestinationContent,
				Elements: map[string]string{
					"el_title": mapping.TitleField,
					"el_body":  "field_body",
					"el_date":  "field_date",
					"el_radio": "field_color",
					"el_check": "field_tags",
				},
			},
			{
				TabID: "tab2",
				Type:  mapping.DestinationContent,
				Elements: map[string]string{
					"el_para_text":    "field_para||field_text",
					"el_para_caption": "field_para||field_caption",
				},
			},
			{
				TabID: "tab3",
				Type:  mapping.DestinationMetadata,
				Elements: map[string]string{
					"el_desc": "description",
				},
			},
		},
	}
}

// fixtureItem fills the template with one round of content: a title, a rich
// body, a date, Red selected on the radio, Red and Blue on the checkbox, one
// block, and a meta description.
func fixtureItem() *remote.Item {
	return &remote.Item{
		ID:         "item1",
		ProjectID:  "p1",
		TemplateID: "t1",
		Name:       "First article",
		Config: []remote.ItemTab{
			{
				ID: "tab1",
				Elements: []remote.Element{
					{ID: "el_title", Type: remote.ElementText, PlainText: true, Value: "First article"},
					{ID: "el_body", Type: remote.ElementText, Value: "<p>Hello</p>"},
					{ID: "el_date", Type: remote.ElementText, PlainText: true, Value: "2024-03-15 09:30:00"},
					{ID: "el_radio", Type: remote.ElementChoiceRadio, OtherOption: true,
						Options: []remote.Option{
							{Name: "op1", Label: "Red", Selected: true},
							{Name: "op2", Label: "Blue"},
						}},
					{ID: "el_check", Type: remote.ElementChoiceCheckbox,
						Options: []remote.Option{
							{Name: "op1", Label: "Red", Selected: true},
							{Name: "op2", Label: "Blue", Selected: true},
						}},
				},
			},
			{
				ID: "tab2",
				Elements: []remote.Element{
					{ID: "el_para_text", Type: remote.ElementText, Value: "A"},
					{ID: "el_para_caption", Type: remote.ElementText, PlainText: true, Value: "caption A"},
				},
			},
			{
				ID: "tab3",
				Elements: []remote.Element{
					{ID: "el_desc", Type: remote.ElementText, PlainText: true, Value: "An article about colors"},
				},
			},
		},
	}
}
