package mapping

import (
	"strings"
	"testing"

	"github.com/lakeshore-digital/contentsync/entity"
)

func testRegistry(translatable bool) *entity.Registry {
	reg := entity.NewRegistry()
	reg.SetLanguages("en", []string{"en", "fr"})
	reg.Register(&entity.Definition{
		EntityType:   "node",
		Bundle:       "article",
		Translatable: translatable,
		Fields: []entity.FieldDefinition{
			{Name: "field_body", Type: entity.TypeTextLong},
			{Name: "field_para", Type: entity.TypeCompositeRef,
				RefEntityType: "paragraph", RefBundle: "copy", Cardinality: entity.Unlimited},
		},
	})
	return reg
}

func configured(tabs ...TabMapping) *Mapping {
	return &Mapping{
		ID:         "m1",
		TemplateID: "t1",
		EntityType: "node",
		Bundle:     "article",
		Data:       MappingData(tabs),
	}
}

func TestValidateUnconfigured(t *testing.T) {
	m := &Mapping{ID: "m1", EntityType: "node", Bundle: "article"}
	errs := Validate(m, testRegistry(false))
	if len(errs) != 1 || errs[0] != "no fields mapped" {
		t.Fatalf("errs = %v, want [no fields mapped]", errs)
	}
}

func TestValidateCleanMapping(t *testing.T) {
	m := configured(TabMapping{
		TabID: "tab1",
		Type:  DestinationContent,
		Elements: map[string]string{
			"el1": "title",
			"el2": "field_body",
			"el3": "field_para||field_text",
		},
	})
	if errs := Validate(m, testRegistry(false)); len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
}

func TestValidateDuplicatePathSameLanguage(t *testing.T) {
	m := configured(
		TabMapping{TabID: "tab1", Elements: map[string]string{"el1": "field_body"}},
		TabMapping{TabID: "tab2", Elements: map[string]string{"el2": "field_body"}},
	)
	errs := Validate(m, testRegistry(false))
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want one duplicate error", errs)
	}
	if !strings.Contains(errs[0], `field "field_body" mapped by both`) {
		t.Fatalf("unexpected error text: %q", errs[0])
	}
}

func TestValidateDuplicatePathDifferentLanguagesOK(t *testing.T) {
	m := configured(
		TabMapping{TabID: "tab1", Language: "en",
			Elements: map[string]string{"el1": "title", "el2": "field_body"}},
		TabMapping{TabID: "tab2", Language: "fr",
			Elements: map[string]string{"el3": "title", "el4": "field_body"}},
	)
	if errs := Validate(m, testRegistry(true)); len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
}

func TestValidateUnknownLocalField(t *testing.T) {
	m := configured(TabMapping{TabID: "tab1",
		Elements: map[string]string{"el1": "field_missing"}})
	errs := Validate(m, testRegistry(false))
	if len(errs) != 1 || !strings.Contains(errs[0], `unknown local field "field_missing"`) {
		t.Fatalf("errs = %v, want unknown field error", errs)
	}
}

func TestValidateMetadataTabSkipsFieldChecks(t *testing.T) {
	m := configured(TabMapping{TabID: "tab1", Type: DestinationMetadata,
		Elements: map[string]string{"el1": "og:description"}})
	if errs := Validate(m, testRegistry(false)); len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
}

func TestValidateTranslatableRequiresTitle(t *testing.T) {
	m := configured(
		TabMapping{TabID: "tab1", Language: "en",
			Elements: map[string]string{"el1": "title"}},
		TabMapping{TabID: "tab2", Language: "fr",
			Elements: map[string]string{"el2": "field_body"}},
	)
	errs := Validate(m, testRegistry(true))
	if len(errs) != 1 || !strings.Contains(errs[0], `must map Title for translatable content (language "fr")`) {
		t.Fatalf("errs = %v, want missing-title error for fr", errs)
	}
}

func TestValidateNonTranslatableNeedsNoTitle(t *testing.T) {
	m := configured(TabMapping{TabID: "tab1",
		Elements: map[string]string{"el1": "field_body"}})
	if errs := Validate(m, testRegistry(false)); len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
}
