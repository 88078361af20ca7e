// Package remote models the remote content API: projects contain templates,
// templates define tabs of typed elements, and items are content instances
// filled in against a template.
package remote

// Element type tags used by the remote API.
const (
	ElementText           = "text"
	ElementSection        = "section"
	ElementGuidelines     = "guidelines"
	ElementChoiceRadio    = "choice_radio"
	ElementChoiceCheckbox = "choice_checkbox"
	ElementFiles          = "files"
)

// Template is the remote-side structure snapshot: ordered groups (tabs),
// each with an ordered list of elements (fields). Immutable once fetched;
// re-fetched and re-snapshotted on mapping edit.
type Template struct {
	ID          string  `json:"id" yaml:"id"`
	ProjectID   string  `json:"project_id" yaml:"project_id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Groups      []Group `json:"config" yaml:"groups"`
	UpdatedAt   string  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Group is a named tab grouping related elements.
type Group struct {
	ID       string    `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
	Elements []Element `json:"elements" yaml:"elements"`
}

// Element is a single field definition (in a template) or field value
// (in an item's config).
type Element struct {
	ID    string `json:"name" yaml:"id"`
	Type  string `json:"type" yaml:"type"`
	Label string `json:"label" yaml:"label"`

	// Required marks the element as mandatory in the remote editor.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// PlainText is set for text elements that forbid rich markup.
	PlainText bool `json:"plain_text,omitempty" yaml:"plain_text,omitempty"`

	// Limit is the character/word limit for text elements, 0 for none.
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`

	// OtherOption indicates a choice_radio carries a free-form "other" slot.
	OtherOption bool `json:"other_option,omitempty" yaml:"other_option,omitempty"`

	// Options holds the choice set for choice elements. On items the
	// per-option Selected flags carry the actual value.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Value is the current content for text elements on items.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Title and Subtitle carry section element content.
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
}

// Option is one entry of a choice element's option set. A non-nil Value
// marks the free-form "other" option, which has no stable identity.
type Option struct {
	Name     string  `json:"name" yaml:"name"`
	Label    string  `json:"label" yaml:"label"`
	Selected bool    `json:"selected,omitempty" yaml:"selected,omitempty"`
	Value    *string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Item is a remote content instance.
type Item struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	StatusID   string    `json:"status_id,omitempty"`
	Config     []ItemTab `json:"config"`
	UpdatedAt  string    `json:"updated_at,omitempty"`
}

// ItemTab parallels a template Group but carries actual element values.
type ItemTab struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Elements []Element `json:"elements"`
}

// File describes an attachment uploaded against one element of an item.
type File struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	Field     string `json:"field"`
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// OptionSelection is one selected option in an export payload.
type OptionSelection struct {
	ID string `json:"id"`
}

// Group returns the template group with the given id.
func (t *Template) Group(id string) (*Group, bool) {
	for i := range t.Groups {
		if t.Groups[i].ID == id {
			return &t.Groups[i], true
		}
	}
	return nil, false
}

// Element returns the element with the given id within the group.
func (g *Group) Element(id string) (*Element, bool) {
	for i := range g.Elements {
		if g.Elements[i].ID == id {
			return &g.Elements[i], true
		}
	}
	return nil, false
}

// Tab returns the item tab with the given id.
func (it *Item) Tab(id string) (*ItemTab, bool) {
	for i := range it.Config {
		if it.Config[i].ID == id {
			return &it.Config[i], true
		}
	}
	return nil, false
}

// Element returns the element with the given id within the tab.
func (tb *ItemTab) Element(id string) (*Element, bool) {
	for i := range tb.Elements {
		if tb.Elements[i].ID == id {
			return &tb.Elements[i], true
		}
	}
	return nil, false
}

// SelectedOptions returns the options currently selected on a choice element,
// preserving option order.
func (e *Element) SelectedOptions() []Option {
	var selected []Option
	for _, opt := range e.Options {
		if opt.Selected {
			selected = append(selected, opt)
		}
	}
	return selected
}

// IsChoice reports whether the element is a radio or checkbox choice field.
func (e *Element) IsChoice() bool {
	return e.Type == ElementChoiceRadio || e.Type == ElementChoiceCheckbox
}

// HasOption reports whether name is a currently valid option id for this
// element. Free-form "other" options never have a stable id.
func (e *Element) HasOption(name string) bool {
	for _, opt := range e.Options {
		if opt.Value == nil && opt.Name == name {
			return true
		}
	}
	return false
}
