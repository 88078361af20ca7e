package remote

import (
	"encoding/json"

	"github.com/lakeshore-digital/contentsync/value"
)

// The API is loose with scalar types: ids arrive as numbers on some
// endpoints and strings on others, booleans as true/false or 1/0, and
// timestamps as formatted strings or epoch seconds. Decoding coerces them
// once at the boundary so the rest of the system sees stable types.

// UnmarshalJSON decodes a template, coercing loose scalar ids.
func (t *Template) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          any     `json:"id"`
		ProjectID   any     `json:"project_id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Groups      []Group `json:"config"`
		UpdatedAt   any     `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.ID = value.Text(raw.ID)
	t.ProjectID = value.Text(raw.ProjectID)
	t.Name = raw.Name
	t.Description = raw.Description
	t.Groups = raw.Groups
	t.UpdatedAt = value.Text(raw.UpdatedAt)
	return nil
}

// UnmarshalJSON decodes a template group.
func (g *Group) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       any       `json:"id"`
		Label    string    `json:"label"`
		Elements []Element `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.ID = value.Text(raw.ID)
	g.Label = raw.Label
	g.Elements = raw.Elements
	return nil
}

// UnmarshalJSON decodes an element, coercing loose scalars.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          any      `json:"name"`
		Type        string   `json:"type"`
		Label       string   `json:"label"`
		Required    any      `json:"required"`
		PlainText   any      `json:"plain_text"`
		Limit       any      `json:"limit"`
		OtherOption any      `json:"other_option"`
		Options     []Option `json:"options"`
		Value       any      `json:"value"`
		Title       string   `json:"title"`
		Subtitle    string   `json:"subtitle"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ID = value.Text(raw.ID)
	e.Type = raw.Type
	e.Label = raw.Label
	e.Required = value.Bool(raw.Required)
	e.PlainText = value.Bool(raw.PlainText)
	e.Limit = value.Int(raw.Limit)
	e.OtherOption = value.Bool(raw.OtherOption)
	e.Options = raw.Options
	e.Value = value.Text(raw.Value)
	e.Title = raw.Title
	e.Subtitle = raw.Subtitle
	return nil
}

// UnmarshalJSON decodes a choice option, coercing loose scalars.
func (o *Option) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     any     `json:"name"`
		Label    string  `json:"label"`
		Selected any     `json:"selected"`
		Value    *string `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Name = value.Text(raw.Name)
	o.Label = raw.Label
	o.Selected = value.Bool(raw.Selected)
	o.Value = raw.Value
	return nil
}

// UnmarshalJSON decodes an item, coercing loose scalar ids.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         any       `json:"id"`
		ProjectID  any       `json:"project_id"`
		TemplateID any       `json:"template_id"`
		Name       string    `json:"name"`
		StatusID   any       `json:"status_id"`
		Config     []ItemTab `json:"config"`
		UpdatedAt  any       `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	it.ID = value.Text(raw.ID)
	it.ProjectID = value.Text(raw.ProjectID)
	it.TemplateID = value.Text(raw.TemplateID)
	it.Name = raw.Name
	it.StatusID = value.Text(raw.StatusID)
	it.Config = raw.Config
	it.UpdatedAt = value.Text(raw.UpdatedAt)
	return nil
}

// UnmarshalJSON decodes an item tab.
func (tb *ItemTab) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       any       `json:"id"`
		Label    string    `json:"label"`
		Elements []Element `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	tb.ID = value.Text(raw.ID)
	tb.Label = raw.Label
	tb.Elements = raw.Elements
	return nil
}

// UnmarshalJSON decodes a file record, coercing loose scalar ids and sizes.
func (f *File) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        any    `json:"id"`
		ItemID    any    `json:"item_id"`
		Field     any    `json:"field"`
		URL       string `json:"url"`
		Filename  string `json:"filename"`
		Size      any    `json:"size"`
		UpdatedAt any    `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.ID = value.Text(raw.ID)
	f.ItemID = value.Text(raw.ItemID)
	f.Field = value.Text(raw.Field)
	f.URL = raw.URL
	f.Filename = raw.Filename
	f.Size = int64(value.Int(raw.Size))
	f.UpdatedAt = value.Text(raw.UpdatedAt)
	return nil
}
