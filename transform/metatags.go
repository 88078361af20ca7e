package transform

import (
	"encoding/json"

	"github.com/lakeshore-digital/contentsync/entity"
)

// MetatagField is the entity field holding the serialized key-value blob
// that metadata-destination tabs read from and write to.
const MetatagField = "meta_tags"

// readMetatags decodes the metatag blob on an entity. A missing or
// malformed blob yields an empty map.
func readMetatags(e entity.Entity) map[string]string {
	raw, _ := e.Get(MetatagField).(string)
	if raw == "" {
		return map[string]string{}
	}
	var tags map[string]string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return map[string]string{}
	}
	return tags
}

// writeMetatags re-encodes the metatag blob onto the entity.
func writeMetatags(e entity.Entity, tags map[string]string) {
	raw, err := json.Marshal(tags)
	if err != nil {
		return
	}
	e.Set(MetatagField, string(raw))
}
