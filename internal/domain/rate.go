package domain

import (
	"errors"
	"math"
)

// RateSource identifies which layer produced a resolved rate
type RateSource string

const (
	RateSourceOverride RateSource = "override"
	RateSourceCatalog  RateSource = "catalog"
	RateSourceUnset    RateSource = "unset"
)

var (
	// ErrDanglingCatalogEntry возвращается, когда юнит ссылается на несуществующую запись каталога
	ErrDanglingCatalogEntry = errors.New("vehicle references a missing catalog entry")

	// ErrEmptyRateGroup возвращается при агрегации ставки по пустой группе юнитов
	ErrEmptyRateGroup = errors.New("rate group is empty")
)

// ResolvedRate is the effective daily rate of a unit together with its source.
// Amount == nil means "no rate configured", which is distinct from a rate of
// zero: callers must never coerce the unset state to 0.00.
type ResolvedRate struct {
	Amount *float64
	Source RateSource
}

// IsSet returns true if the rate carries a configured amount
func (r ResolvedRate) IsSet() bool {
	return r.Amount != nil
}

// ResolveRate computes the effective daily rate of a unit.
// Precedence: per-unit override, then the linked entry's template rate, then
// the explicit unset value.
//
// entry is the catalog entry the unit references, or nil when the unit is not
// linked. A linked unit with a nil entry means the reference is dangling and
// is reported as an error, never treated as unset.
func ResolveRate(unit *Vehicle, entry *CatalogEntry) (ResolvedRate, error) {
	if unit.RateOverride != nil {
		return ResolvedRate{Amount: unit.RateOverride, Source: RateSourceOverride}, nil
	}

	if unit.CatalogEntryID != nil {
		if entry == nil {
			return ResolvedRate{}, ErrDanglingCatalogEntry
		}
		if entry.TemplateRate != nil {
			return ResolvedRate{Amount: entry.TemplateRate, Source: RateSourceCatalog}, nil
		}
	}

	return ResolvedRate{Source: RateSourceUnset}, nil
}

// DisplayRate is the aggregate rate shown for a group of units.
// Exactly one of the states holds:
// - Varies=true: the group's resolved rates differ (Amount is nil);
// - Varies=false, Amount!=nil: one uniform configured rate;
// - Varies=false, Amount==nil: uniformly unset across the group.
type DisplayRate struct {
	Varies bool
	Amount *float64
}

// AggregateDisplayRate folds resolved rates of a group into a single display
// value. An empty group is reported as ErrEmptyRateGroup: the caller decides
// how to present "nothing to aggregate".
//
// Ставки сравниваются с точностью до цента, чтобы не ловить расхождения
// плавающей точки.
func AggregateDisplayRate(rates []ResolvedRate) (DisplayRate, error) {
	if len(rates) == 0 {
		return DisplayRate{}, ErrEmptyRateGroup
	}

	first := rates[0].Amount
	for _, r := range rates[1:] {
		if !RatesEqual(first, r.Amount) {
			return DisplayRate{Varies: true}, nil
		}
	}

	return DisplayRate{Amount: first}, nil
}

// RateCents converts a daily rate to minor units (cents)
func RateCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RatesEqual сравнивает две ставки с точностью до цента.
// Две незаданные ставки равны; незаданная и заданная - нет.
func RatesEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return RateCents(*a) == RateCents(*b)
}
