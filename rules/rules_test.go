package rules

import (
	"testing"

	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/remote"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		remoteType string
		localType  string
		want       bool
	}{
		{remote.ElementText, entity.TypeTextLong, true},
		{remote.ElementText, entity.TypeDate, true},
		{remote.ElementText, entity.TypeFile, false},
		{remote.ElementText, entity.TypeListString, false},
		{remote.ElementFiles, entity.TypeImage, true},
		{remote.ElementFiles, entity.TypeText, false},
		{remote.ElementChoiceRadio, entity.TypeString, true},
		{remote.ElementChoiceRadio, entity.TypeListString, false},
		{remote.ElementChoiceCheckbox, entity.TypeListString, true},
		{remote.ElementChoiceCheckbox, entity.TypeString, false},
		{remote.ElementSection, entity.TypeTextLong, true},
		{remote.ElementSection, entity.TypeText, false},
		{remote.ElementGuidelines, entity.TypeCompositeRef, true},
		{"unknown", entity.TypeText, false},
	}

	for _, tt := range tests {
		if got := Compatible(tt.remoteType, tt.localType); got != tt.want {
			t.Fatalf("Compatible(%q, %q) = %v, want %v", tt.remoteType, tt.localType, got, tt.want)
		}
	}
}

func TestExcludedRichTextIntoPlainString(t *testing.T) {
	rich := &remote.Element{ID: "el1", Type: remote.ElementText, PlainText: false}
	plain := &remote.Element{ID: "el2", Type: remote.ElementText, PlainText: true}

	if !Excluded(rich, entity.TypeString, nil) {
		t.Fatal("rich text into string should be excluded")
	}
	if Excluded(plain, entity.TypeString, nil) {
		t.Fatal("plain text into string should be allowed")
	}
	if Excluded(rich, entity.TypeTextLong, nil) {
		t.Fatal("rich text into text_long should be allowed")
	}
}

func TestExcludedChoiceIntoFreeFormReference(t *testing.T) {
	radio := &remote.Element{ID: "el1", Type: remote.ElementChoiceRadio}

	freeForm := &entity.FieldDefinition{
		Name:          "field_related",
		Type:          entity.TypeEntityReference,
		RefEntityType: "node",
	}
	controlled := &entity.FieldDefinition{
		Name:          "field_color",
		Type:          entity.TypeEntityReference,
		RefEntityType: "taxonomy_term",
		Vocabulary:    "colors",
	}

	if !Excluded(radio, entity.TypeEntityReference, freeForm) {
		t.Fatal("choice into free-form reference should be excluded")
	}
	if !Excluded(radio, entity.TypeEntityReference, nil) {
		t.Fatal("choice into unknown reference field should be excluded")
	}
	if Excluded(radio, entity.TypeEntityReference, controlled) {
		t.Fatal("choice into vocabulary-backed reference should be allowed")
	}
}

func TestCanMapToTitle(t *testing.T) {
	tests := []struct {
		name string
		elem remote.Element
		want bool
	}{
		{"plain text", remote.Element{Type: remote.ElementText, PlainText: true}, true},
		{"rich text", remote.Element{Type: remote.ElementText, PlainText: false}, false},
		{"radio", remote.Element{Type: remote.ElementChoiceRadio}, false},
		{"section", remote.Element{Type: remote.ElementSection}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMapToTitle(&tt.elem); got != tt.want {
				t.Fatalf("CanMapToTitle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompatibleLocalTypesReturnsCopy(t *testing.T) {
	types := CompatibleLocalTypes(remote.ElementFiles)
	if len(types) == 0 {
		t.Fatal("files element should have compatible types")
	}
	types[0] = "mutated"
	if fresh := CompatibleLocalTypes(remote.ElementFiles); fresh[0] == "mutated" {
		t.Fatal("CompatibleLocalTypes leaked internal table")
	}
}
