package domain

import "time"

// CatalogEntry is the shared pricing template for a specification.
// There is at most one entry per specification and the entry is global:
// every tenant's units linked to it resolve against the same template rate.
type CatalogEntry struct {
	ID              int64
	SpecificationID int64
	TemplateRate    *float64 // NULL = шаблонная ставка не задана

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTemplateRate returns true if the entry carries a configured template rate
func (e *CatalogEntry) HasTemplateRate() bool {
	return e.TemplateRate != nil
}
