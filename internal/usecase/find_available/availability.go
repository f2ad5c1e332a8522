package find_available

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// excludeReservedUnits убирает из списка юниты с активными бронями,
// пересекающими окно [from, to).
//
// Пересечение проверяется строгими неравенствами: бронь, граничащая с окном,
// юнит не блокирует.
// - Бронь до 10:00 не мешает аренде с 10:00
// - Бронь с 18:00 не мешает аренде до 18:00
func excludeReservedUnits(units []*domain.Vehicle, reservations []*domain.Reservation, from, to time.Time) []*domain.Vehicle {
	reserved := make(map[int64]struct{})

	for _, res := range reservations {
		// Пропускаем неактивные брони
		if !res.IsActive() {
			continue
		}
		// Граничные случаи не считаются пересечением
		if !res.Overlaps(from, to) {
			continue
		}
		reserved[res.VehicleID] = struct{}{}
	}

	available := make([]*domain.Vehicle, 0, len(units))
	for _, unit := range units {
		if _, ok := reserved[unit.ID]; ok {
			continue
		}
		available = append(available, unit)
	}

	return available
}

// groupAccumulator накапливает юниты и их ставки по одной спецификации
type groupAccumulator struct {
	spec  *domain.Specification
	count int
	rates []domain.ResolvedRate
}

// buildGroups группирует доступные юниты по спецификациям и считает
// диапазон ставок каждой группы. Юнит с битой ссылкой на каталог роняет
// всю выборку: повреждение данных не маскируется.
func buildGroups(
	units []*domain.Vehicle,
	entryByID map[int64]*domain.CatalogEntry,
	specByID map[int64]*domain.Specification,
) ([]Group, error) {
	bySpec := make(map[int64]*groupAccumulator)

	for _, unit := range units {
		var entry *domain.CatalogEntry
		if unit.CatalogEntryID != nil {
			entry = entryByID[*unit.CatalogEntryID]
		}

		rate, err := domain.ResolveRate(unit, entry)
		if err != nil {
			return nil, ErrDanglingCatalogRef
		}

		// Непривязанные юниты в группировке не участвуют
		if entry == nil {
			continue
		}

		spec := specByID[entry.SpecificationID]
		if spec == nil {
			return nil, fmt.Errorf("%w: specification id=%d missing for catalog entry id=%d", ErrInternal, entry.SpecificationID, entry.ID)
		}

		acc, ok := bySpec[spec.ID]
		if !ok {
			acc = &groupAccumulator{spec: spec}
			bySpec[spec.ID] = acc
		}
		acc.count++
		acc.rates = append(acc.rates, rate)
	}

	accs := make([]*groupAccumulator, 0, len(bySpec))
	for _, acc := range bySpec {
		accs = append(accs, acc)
	}

	sort.Slice(accs, func(i, j int) bool {
		return specLess(accs[i].spec, accs[j].spec)
	})

	groups := make([]Group, len(accs))
	for i, acc := range accs {
		group := Group{
			SpecificationID: acc.spec.ID,
			Make:            acc.spec.Make,
			Model:           acc.spec.Model,
			ModelYear:       acc.spec.ModelYear,
			AvailableCount:  acc.count,
			PriceRange:      computePriceRange(acc.rates),
		}
		if acc.spec.Category != nil {
			category := string(*acc.spec.Category)
			group.Category = &category
		}
		groups[i] = group
	}

	return groups, nil
}

// specLess задает порядок витрины: категория по алфавиту (группы без
// категории в конце), затем нормализованные марка и модель, затем модельный год
func specLess(a, b *domain.Specification) bool {
	switch {
	case a.Category != nil && b.Category == nil:
		return true
	case a.Category == nil && b.Category != nil:
		return false
	case a.Category != nil && b.Category != nil && *a.Category != *b.Category:
		return *a.Category < *b.Category
	}

	if a.MakeNorm != b.MakeNorm {
		return a.MakeNorm < b.MakeNorm
	}
	if a.ModelNorm != b.ModelNorm {
		return a.ModelNorm < b.ModelNorm
	}
	return a.ModelYear < b.ModelYear
}

// computePriceRange считает диапазон ставок по юнитам с настроенной ставкой.
// Если ставка не настроена ни у одного юнита, диапазона нет: nil вместо
// нулей, чтобы "не настроено" не читалось как "бесплатно".
func computePriceRange(rates []domain.ResolvedRate) *PriceRange {
	amounts := make([]float64, 0, len(rates))
	for _, rate := range rates {
		if rate.IsSet() {
			amounts = append(amounts, *rate.Amount)
		}
	}

	if len(amounts) == 0 {
		return nil
	}

	minAmount := amounts[0]
	maxAmount := amounts[0]
	sum := 0.0
	for _, amount := range amounts {
		if amount < minAmount {
			minAmount = amount
		}
		if amount > maxAmount {
			maxAmount = amount
		}
		sum += amount
	}

	return &PriceRange{
		Min: minAmount,
		Avg: roundToCents(sum / float64(len(amounts))),
		Max: maxAmount,
	}
}

// roundToCents округляет ставку до цента
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
