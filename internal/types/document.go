// Package types provides type definitions for structured data shared across the resume-finalizer engine.
package types

// Side identifies which source resume a line item came from.
type Side string

// Sides of the comparison view.
const (
	SideOriginal Side = "original"
	SideEnhanced Side = "enhanced"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideOriginal || s == SideEnhanced
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideOriginal {
		return SideEnhanced
	}
	return SideOriginal
}

// Source tags a final-resume item with its provenance.
type Source string

// Provenance values for final-resume items.
const (
	SourceOriginal  Source = "original"
	SourceEnhanced  Source = "enhanced"
	SourceUserAdded Source = "user-added"
)

// LineItem is one normalized unit of source resume content.
// Key is the item's stable identity ("<side>.<section>.<index>") and is the
// only mechanism for mapping a selection back to its originating item.
type LineItem struct {
	Content string `json:"content"`
	Key     string `json:"key"`
}

// FinalItem is one unit of content in the user-curated final resume.
type FinalItem struct {
	Content string `json:"content"`
	Source  Source `json:"source"`
}

// NormalizedDocument holds one side's resume as ordered sections of
// deduplicated line items. Order records section insertion order because
// section order is significant (the enhanced document's order is the
// canonical order for the whole feature).
type NormalizedDocument struct {
	Order    []string              `json:"order"`
	Sections map[string][]LineItem `json:"sections"`
}

// NewNormalizedDocument returns an empty document.
func NewNormalizedDocument() *NormalizedDocument {
	return &NormalizedDocument{Sections: make(map[string][]LineItem)}
}

// Add appends a section with its items, preserving insertion order.
func (d *NormalizedDocument) Add(name string, items []LineItem) {
	if _, exists := d.Sections[name]; !exists {
		d.Order = append(d.Order, name)
	}
	d.Sections[name] = items
}

// Items returns the items for a section, or nil if the section is absent.
func (d *NormalizedDocument) Items(name string) []LineItem {
	if d == nil {
		return nil
	}
	return d.Sections[name]
}

// IsEmpty reports whether the document has no sections.
func (d *NormalizedDocument) IsEmpty() bool {
	return d == nil || len(d.Order) == 0
}

// Keys returns every line-item key in the document, section order first,
// item order within each section.
func (d *NormalizedDocument) Keys() []string {
	if d == nil {
		return nil
	}
	var keys []string
	for _, name := range d.Order {
		for _, item := range d.Sections[name] {
			keys = append(keys, item.Key)
		}
	}
	return keys
}

// FinalDocument is the user-curated final resume: ordered sections of
// provenance-tagged items. Content is never deduplicated here.
type FinalDocument struct {
	Order    []string               `json:"order"`
	Sections map[string][]FinalItem `json:"sections"`
}

// NewFinalDocument returns an empty final document.
func NewFinalDocument() *FinalDocument {
	return &FinalDocument{Sections: make(map[string][]FinalItem)}
}

// HasSection reports whether the named section exists.
func (d *FinalDocument) HasSection(name string) bool {
	if d == nil {
		return false
	}
	_, exists := d.Sections[name]
	return exists
}

// Items returns the items of a section, or nil if absent.
func (d *FinalDocument) Items(name string) []FinalItem {
	if d == nil {
		return nil
	}
	return d.Sections[name]
}

// Append adds an item to a section, creating the section at the end of the
// order if it does not exist yet.
func (d *FinalDocument) Append(name string, item FinalItem) {
	if _, exists := d.Sections[name]; !exists {
		d.Order = append(d.Order, name)
	}
	d.Sections[name] = append(d.Sections[name], item)
}

// AddSection creates an empty section at the end of the order.
// It is a no-op if the section already exists.
func (d *FinalDocument) AddSection(name string) {
	if _, exists := d.Sections[name]; exists {
		return
	}
	d.Order = append(d.Order, name)
	d.Sections[name] = []FinalItem{}
}

// SetContent replaces the content of the item at the given position,
// preserving its source tag. Out-of-range positions are ignored.
func (d *FinalDocument) SetContent(name string, index int, content string) {
	items := d.Sections[name]
	if index < 0 || index >= len(items) {
		return
	}
	items[index].Content = content
}

// RemoveItem deletes the item at the given position. The section is
// removed entirely (including its order entry) when it becomes empty.
// It returns the removed item and whether a removal happened.
func (d *FinalDocument) RemoveItem(name string, index int) (FinalItem, bool) {
	items, exists := d.Sections[name]
	if !exists || index < 0 || index >= len(items) {
		return FinalItem{}, false
	}
	removed := items[index]
	items = append(items[:index:index], items[index+1:]...)
	if len(items) == 0 {
		d.RemoveSection(name)
		return removed, true
	}
	d.Sections[name] = items
	return removed, true
}

// RemoveSection deletes a section and its order entry.
func (d *FinalDocument) RemoveSection(name string) {
	if _, exists := d.Sections[name]; !exists {
		return
	}
	delete(d.Sections, name)
	for i, n := range d.Order {
		if n == name {
			d.Order = append(d.Order[:i:i], d.Order[i+1:]...)
			break
		}
	}
}

// IsEmpty reports whether the document has no items at all.
func (d *FinalDocument) IsEmpty() bool {
	if d == nil {
		return true
	}
	for _, items := range d.Sections {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document.
func (d *FinalDocument) Clone() *FinalDocument {
	if d == nil {
		return nil
	}
	clone := &FinalDocument{
		Order:    make([]string, len(d.Order)),
		Sections: make(map[string][]FinalItem, len(d.Sections)),
	}
	copy(clone.Order, d.Order)
	for name, items := range d.Sections {
		copied := make([]FinalItem, len(items))
		copy(copied, items)
		clone.Sections[name] = copied
	}
	return clone
}
