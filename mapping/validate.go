package mapping

import (
	"fmt"

	"github.com/lakeshore-digital/contentsync/entity"
)

// Validate runs the mapping-edit-time checks. The returned strings are
// user-correctable input errors for the mapping-edit surface; a saved
// mapping is assumed pre-validated and these checks never run during
// import or export.
func Validate(m *Mapping, reg *entity.Registry) []string {
	var errs []string

	if !m.Configured() {
		return []string{"no fields mapped"}
	}

	def, haveDef := reg.Get(m.EntityType, m.Bundle)
	translatable := reg.IsTranslationEnabled(m.EntityType, m.Bundle)
	defaultLang := reg.DefaultLanguage()

	// pathOwner[language][path] = element id that claimed the path
	pathOwner := make(map[string]map[string]string)
	titleMapped := make(map[string]bool)

	for _, tab := range m.Data {
		lang := tab.Language
		if lang == "" {
			lang = LanguageUnspecified
		}

		for elementID, path := range tab.Elements {
			if tab.Type == DestinationMetadata {
				// Metadata keys live in their own namespace.
				continue
			}

			if pathOwner[lang] == nil {
				pathOwner[lang] = make(map[string]string)
			}
			if other, dup := pathOwner[lang][path]; dup {
				errs = append(errs, fmt.Sprintf(
					"field %q mapped by both %q and %q in language %q", path, other, elementID, lang))
			} else {
				pathOwner[lang][path] = elementID
			}

			if path == TitleField {
				titleMapped[lang] = true
				continue
			}

			if haveDef && !def.HasField(ParsePath(path).First()) {
				errs = append(errs, fmt.Sprintf("unknown local field %q", ParsePath(path).First()))
			}
		}
	}

	if translatable {
		for lang := range pathOwner {
			if lang == defaultLang || lang == LanguageUnspecified {
				continue
			}
			if !titleMapped[lang] {
				errs = append(errs, fmt.Sprintf(
					"must map Title for translatable content (language %q)", lang))
			}
		}
	}

	return errs
}
