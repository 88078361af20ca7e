// Package rules holds the static compatibility table between remote element
// types and local field types, plus the exclusion predicates that block
// semantically lossy mappings.
package rules

import (
	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/remote"
)

// compatible maps a remote element type to the local field types it may
// target.
var compatible = map[string][]string{
	remote.ElementFiles: {
		entity.TypeFile,
		entity.TypeImage,
		entity.TypeCompositeRef,
	},
	remote.ElementGuidelines: {
		entity.TypeTextLong,
		entity.TypeCompositeRef,
	},
	remote.ElementSection: {
		entity.TypeTextLong,
		entity.TypeCompositeRef,
	},
	remote.ElementText: {
		entity.TypeText,
		entity.TypeTextLong,
		entity.TypeTextWithSummary,
		entity.TypeString,
		entity.TypeStringLong,
		entity.TypeEmail,
		entity.TypeTelephone,
		entity.TypeDate,
		entity.TypeDateTime,
		entity.TypeCompositeRef,
	},
	remote.ElementChoiceRadio: {
		entity.TypeString,
		entity.TypeEntityReference,
		entity.TypeCompositeRef,
	},
	remote.ElementChoiceCheckbox: {
		entity.TypeListString,
		entity.TypeEntityReference,
		entity.TypeCompositeRef,
	},
}

// plainStringTypes are short plain-text sinks that would truncate or corrupt
// rich content.
var plainStringTypes = map[string]bool{
	entity.TypeString:     true,
	entity.TypeStringLong: true,
	entity.TypeEmail:      true,
	entity.TypeTelephone:  true,
}

// CompatibleLocalTypes returns the local field types a remote element type
// may map to, before exclusions.
func CompatibleLocalTypes(remoteType string) []string {
	types := compatible[remoteType]
	out := make([]string, len(types))
	copy(out, types)
	return out
}

// Compatible reports whether localType appears in the compatibility table
// for remoteType.
func Compatible(remoteType, localType string) bool {
	for _, t := range compatible[remoteType] {
		if t == localType {
			return true
		}
	}
	return false
}

// Excluded reports whether the pairing is blocked by an exclusion predicate
// even though the table allows it. field may be nil when the local field
// definition is unknown.
func Excluded(elem *remote.Element, localType string, field *entity.FieldDefinition) bool {
	switch elem.Type {
	case remote.ElementText:
		// Rich content would be truncated/corrupted by a plain-text sink.
		if !elem.PlainText && plainStringTypes[localType] {
			return true
		}
	case remote.ElementSection, remote.ElementGuidelines:
		if plainStringTypes[localType] {
			return true
		}
	case remote.ElementChoiceRadio, remote.ElementChoiceCheckbox:
		// Free-form references have no stable option identity to
		// reconcile against.
		if localType == entity.TypeEntityReference {
			if field == nil || !field.HasControlledVocabulary() {
				return true
			}
		}
	}
	return false
}

// Allowed combines the table and the exclusions.
func Allowed(elem *remote.Element, localType string, field *entity.FieldDefinition) bool {
	return Compatible(elem.Type, localType) && !Excluded(elem, localType, field)
}

// CanMapToTitle reports whether the element may target the entity's title
// slot. Only plain text elements qualify, regardless of the table.
func CanMapToTitle(elem *remote.Element) bool {
	return elem.Type == remote.ElementText && elem.PlainText
}
