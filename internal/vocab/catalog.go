package vocab

import "slices"

// Catalog is an immutable view of vocabulary records grouped by category.
// Records missing any field are dropped when the catalog is built.
type Catalog struct {
	records    []Record
	byCategory map[string][]Record
	categories []string // In first-seen order
}

// NewCatalog builds a catalog from records, skipping incomplete ones.
func NewCatalog(records []Record) *Catalog {
	c := &Catalog{
		records:    make([]Record, 0, len(records)),
		byCategory: make(map[string][]Record),
	}
	for _, rec := range records {
		rec = rec.normalize()
		if !rec.Complete() {
			continue
		}
		if _, seen := c.byCategory[rec.Category]; !seen {
			c.categories = append(c.categories, rec.Category)
		}
		c.records = append(c.records, rec)
		c.byCategory[rec.Category] = append(c.byCategory[rec.Category], rec)
	}
	return c
}

// Len returns the number of usable records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Records returns a copy of all usable records.
func (c *Catalog) Records() []Record {
	if c == nil {
		return nil
	}
	return slices.Clone(c.records)
}

// InCategory returns a copy of the records whose category equals category.
func (c *Catalog) InCategory(category string) []Record {
	if c == nil {
		return nil
	}
	return slices.Clone(c.byCategory[category])
}

// Categories lists the categories present, in the order they were first seen.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.categories)
}
