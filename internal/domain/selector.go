package domain

// SpecSelector filters specifications by any combination of category, make,
// model and model year. Only the provided fields constrain the match, so a
// selector with fewer fields always matches a superset of a narrower one.
// An empty selector matches every specification.
type SpecSelector struct {
	Category  *VehicleCategory
	Make      *string // сравнивается в нормализованном виде
	Model     *string // сравнивается в нормализованном виде
	ModelYear *int
}

// IsEmpty returns true if no criteria are set
func (s SpecSelector) IsEmpty() bool {
	return s.Category == nil && s.Make == nil && s.Model == nil && s.ModelYear == nil
}

// MakeNorm returns the canonical form of the make criterion, or "" if unset
func (s SpecSelector) MakeNorm() string {
	if s.Make == nil {
		return ""
	}
	return NormalizeSpecTerm(*s.Make)
}

// ModelNorm returns the canonical form of the model criterion, or "" if unset
func (s SpecSelector) ModelNorm() string {
	if s.Model == nil {
		return ""
	}
	return NormalizeSpecTerm(*s.Model)
}

// Matches reports whether the specification satisfies every provided criterion
func (s SpecSelector) Matches(spec *Specification) bool {
	if s.Category != nil {
		if spec.Category == nil || *spec.Category != *s.Category {
			return false
		}
	}
	if s.Make != nil && spec.MakeNorm != s.MakeNorm() {
		return false
	}
	if s.Model != nil && spec.ModelNorm != s.ModelNorm() {
		return false
	}
	if s.ModelYear != nil && spec.ModelYear != *s.ModelYear {
		return false
	}
	return true
}
