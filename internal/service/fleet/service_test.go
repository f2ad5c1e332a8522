package fleet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	catalogStorage "github.com/m04kA/CRP-FleetService/internal/infra/storage/catalogentry"
	vehicleStorage "github.com/m04kA/CRP-FleetService/internal/infra/storage/vehicle"
	"github.com/m04kA/CRP-FleetService/internal/service/fleet/models"
	"github.com/m04kA/CRP-FleetService/pkg/ptr"
)

type fakeVehicleRepo struct {
	byID       map[int64]*domain.Vehicle
	companyAll []*domain.Vehicle
	err        error
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	unit, ok := f.byID[id]
	if !ok {
		return nil, vehicleStorage.ErrVehicleNotFound
	}
	return unit, nil
}

func (f *fakeVehicleRepo) ListByCompany(_ context.Context, filter domain.VehicleFilter) ([]*domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	units := make([]*domain.Vehicle, 0, len(f.companyAll))
	for _, unit := range f.companyAll {
		if unit.CompanyID != filter.CompanyID {
			continue
		}
		if filter.CatalogLinkedOnly && unit.CatalogEntryID == nil {
			continue
		}
		units = append(units, unit)
	}
	return units, nil
}

func (f *fakeVehicleRepo) ListByIDs(_ context.Context, ids []int64) ([]*domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	units := make([]*domain.Vehicle, 0, len(ids))
	for _, id := range ids {
		if unit, ok := f.byID[id]; ok {
			units = append(units, unit)
		}
	}
	return units, nil
}

type fakeSpecRepo struct {
	byID          map[int64]*domain.Specification
	selectorSpecs []*domain.Specification
	err           error
}

func (f *fakeSpecRepo) GetByID(_ context.Context, id int64) (*domain.Specification, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeSpecRepo) FindBySelector(_ context.Context, _ domain.SpecSelector) ([]*domain.Specification, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.selectorSpecs, nil
}

type fakeEntryRepo struct {
	byID map[int64]*domain.CatalogEntry
	err  error
}

func (f *fakeEntryRepo) GetByID(_ context.Context, id int64) (*domain.CatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	entry, ok := f.byID[id]
	if !ok {
		return nil, catalogStorage.ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeEntryRepo) ListByIDs(_ context.Context, ids []int64) ([]*domain.CatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	entries := make([]*domain.CatalogEntry, 0, len(ids))
	for _, id := range ids {
		if entry, ok := f.byID[id]; ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (f *fakeEntryRepo) ListBySpecificationIDs(_ context.Context, ids []int64) ([]*domain.CatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	entries := make([]*domain.CatalogEntry, 0, len(ids))
	for _, entry := range f.byID {
		if _, ok := wanted[entry.SpecificationID]; ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type serviceFixture struct {
	vehicles *fakeVehicleRepo
	specs    *fakeSpecRepo
	entries  *fakeEntryRepo
	svc      *Service
}

func newFixture() *serviceFixture {
	economy := domain.CategoryEconomy

	spec := &domain.Specification{
		ID: 10, Make: "Ford", Model: "Focus",
		MakeNorm: "ford", ModelNorm: "focus",
		ModelYear: 2022, Category: &economy,
	}
	entry := &domain.CatalogEntry{ID: 100, SpecificationID: 10, TemplateRate: ptr.Ptr(50.0)}

	f := &serviceFixture{
		vehicles: &fakeVehicleRepo{byID: map[int64]*domain.Vehicle{
			1: {ID: 1, CompanyID: 42, CatalogEntryID: ptr.Ptr(int64(100)), LicensePlate: "AB 123 CD", Status: domain.VehicleAvailable},
			2: {ID: 2, CompanyID: 42, CatalogEntryID: ptr.Ptr(int64(100)), LicensePlate: "AB 124 CD", Status: domain.VehicleAvailable, RateOverride: ptr.Ptr(45.0)},
			3: {ID: 3, CompanyID: 77, CatalogEntryID: ptr.Ptr(int64(100)), LicensePlate: "XX 900 YY", Status: domain.VehicleAvailable},
			4: {ID: 4, CompanyID: 42, LicensePlate: "AB 125 CD", Status: domain.VehicleMaintenance},
		}},
		specs:   &fakeSpecRepo{byID: map[int64]*domain.Specification{10: spec}},
		entries: &fakeEntryRepo{byID: map[int64]*domain.CatalogEntry{100: entry}},
	}
	f.vehicles.companyAll = []*domain.Vehicle{
		f.vehicles.byID[1],
		f.vehicles.byID[2],
		f.vehicles.byID[3],
		f.vehicles.byID[4],
	}
	f.svc = NewService(f.vehicles, f.specs, f.entries, nopLogger{})
	return f
}

func TestGetVehicle(t *testing.T) {
	t.Run("linked unit with catalog rate", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetVehicle(context.Background(), 42, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "available", resp.Status)
		require.NotNil(t, resp.Specification)
		assert.Equal(t, "Ford", resp.Specification.Make)
		require.NotNil(t, resp.Rate.Amount)
		assert.Equal(t, 50.0, *resp.Rate.Amount)
		assert.Equal(t, "catalog", resp.Rate.Source)
	})

	t.Run("override wins over the template rate", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetVehicle(context.Background(), 42, 2)

		require.NoError(t, err)
		require.NotNil(t, resp.Rate.Amount)
		assert.Equal(t, 45.0, *resp.Rate.Amount)
		assert.Equal(t, "override", resp.Rate.Source)
	})

	t.Run("unlinked unit has no specification and an unset rate", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetVehicle(context.Background(), 42, 4)

		require.NoError(t, err)
		assert.Nil(t, resp.Specification)
		assert.Nil(t, resp.Rate.Amount)
		assert.Equal(t, "unset", resp.Rate.Source)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetVehicle(context.Background(), 42, 999)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})

	t.Run("vehicle of another company is not exposed", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetVehicle(context.Background(), 42, 3)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCrossTenantAccess)
	})

	t.Run("dangling catalog reference is an error", func(t *testing.T) {
		f := newFixture()
		delete(f.entries.byID, 100)

		_, err := f.svc.GetVehicle(context.Background(), 42, 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDanglingCatalogRef)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture()
		f.vehicles.err = errors.New("connection refused")

		_, err := f.svc.GetVehicle(context.Background(), 42, 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetVehicleRate(t *testing.T) {
	t.Run("catalog template rate", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetVehicleRate(context.Background(), 42, 1)

		require.NoError(t, err)
		require.NotNil(t, resp.Amount)
		assert.Equal(t, 50.0, *resp.Amount)
		assert.Equal(t, "catalog", resp.Source)
	})

	t.Run("override rate", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetVehicleRate(context.Background(), 42, 2)

		require.NoError(t, err)
		require.NotNil(t, resp.Amount)
		assert.Equal(t, 45.0, *resp.Amount)
		assert.Equal(t, "override", resp.Source)
	})

	t.Run("unset rate is null, never zero", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetVehicleRate(context.Background(), 42, 4)

		require.NoError(t, err)
		assert.Nil(t, resp.Amount)
		assert.Equal(t, "unset", resp.Source)
	})

	t.Run("cross-tenant access", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetVehicleRate(context.Background(), 42, 3)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCrossTenantAccess)
	})

	t.Run("override hides a dangling reference", func(t *testing.T) {
		f := newFixture()
		delete(f.entries.byID, 100)

		resp, err := f.svc.GetVehicleRate(context.Background(), 42, 2)

		require.NoError(t, err)
		require.NotNil(t, resp.Amount)
		assert.Equal(t, 45.0, *resp.Amount)
		assert.Equal(t, "override", resp.Source)
	})
}

func TestGetDisplayRateExplicitUnits(t *testing.T) {
	t.Run("uniform rates", func(t *testing.T) {
		f := newFixture()
		f.vehicles.byID[5] = &domain.Vehicle{
			ID: 5, CompanyID: 42, CatalogEntryID: ptr.Ptr(int64(100)),
			LicensePlate: "AB 126 CD", Status: domain.VehicleAvailable,
		}

		resp, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID:  42,
			VehicleIDs: []int64{1, 5},
		})

		require.NoError(t, err)
		assert.False(t, resp.Varies)
		require.NotNil(t, resp.Amount)
		assert.Equal(t, 50.0, *resp.Amount)
		assert.Equal(t, 2, resp.UnitCount)
	})

	t.Run("differing rates show varies", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID:  42,
			VehicleIDs: []int64{1, 2},
		})

		require.NoError(t, err)
		assert.True(t, resp.Varies)
		assert.Nil(t, resp.Amount)
		assert.Equal(t, 2, resp.UnitCount)
	})

	t.Run("uniformly unset is not varies", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID:  42,
			VehicleIDs: []int64{4},
		})

		require.NoError(t, err)
		assert.False(t, resp.Varies)
		assert.Nil(t, resp.Amount)
		assert.Equal(t, 1, resp.UnitCount)
	})

	t.Run("unknown vehicle id in the list", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID:  42,
			VehicleIDs: []int64{1, 999},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})

	t.Run("foreign vehicle in the list", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID:  42,
			VehicleIDs: []int64{1, 3},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCrossTenantAccess)
	})

	t.Run("dangling reference in the group", func(t *testing.T) {
		f := newFixture()
		delete(f.entries.byID, 100)

		_, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID:  42,
			VehicleIDs: []int64{1},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDanglingCatalogRef)
	})
}

func TestGetDisplayRateBySelector(t *testing.T) {
	t.Run("selector group resolves over company units", func(t *testing.T) {
		f := newFixture()
		f.specs.selectorSpecs = []*domain.Specification{f.specs.byID[10]}

		resp, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID: 42,
			Make:      ptr.Ptr("Ford"),
		})

		require.NoError(t, err)
		// Юниты 1 и 2 компании 42 привязаны к каталогу, ставки 50 и 45
		assert.True(t, resp.Varies)
		assert.Equal(t, 2, resp.UnitCount)
	})

	t.Run("selector matching no specifications yields an empty group", func(t *testing.T) {
		f := newFixture()
		f.specs.selectorSpecs = nil

		_, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID: 42,
			Make:      ptr.Ptr("Bentley"),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyGroup)
	})

	t.Run("unknown category in the selector", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
			CompanyID: 42,
			Category:  ptr.Ptr("hovercraft"),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetDisplayRateCompanyUnitsFiltered(t *testing.T) {
	// Юниты компании 42: 1 и 2 привязаны к записи 100; юнит компании 77
	// с той же записью каталога в группу не попадает
	f := newFixture()
	f.specs.selectorSpecs = []*domain.Specification{f.specs.byID[10]}

	resp, err := f.svc.GetDisplayRate(context.Background(), &models.DisplayRateRequest{
		CompanyID: 42,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.UnitCount)
}
