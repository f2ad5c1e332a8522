package bulk_set_rates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	"github.com/m04kA/CRP-FleetService/pkg/ptr"
)

type fakeSpecRepo struct {
	specs        []*domain.Specification
	err          error
	lastSelector domain.SpecSelector
	calls        int
}

func (f *fakeSpecRepo) FindBySelector(_ context.Context, selector domain.SpecSelector) ([]*domain.Specification, error) {
	f.calls++
	f.lastSelector = selector
	return f.specs, f.err
}

type fakeEntryRepo struct {
	created     int64
	entries     []*domain.CatalogEntry
	ensureErr   error
	listErr     error
	ensuredIDs  []int64
	listedIDs   []int64
	ensureCalls int
}

func (f *fakeEntryRepo) EnsureForSpecifications(_ context.Context, ids []int64) (int64, error) {
	f.ensureCalls++
	f.ensuredIDs = ids
	return f.created, f.ensureErr
}

func (f *fakeEntryRepo) ListBySpecificationIDs(_ context.Context, ids []int64) ([]*domain.CatalogEntry, error) {
	f.listedIDs = ids
	return f.entries, f.listErr
}

type fakeVehicleRepo struct {
	updated       int64
	err           error
	lastCompanyID int64
	lastEntryIDs  []int64
	lastRate      *float64
	calls         int
}

func (f *fakeVehicleRepo) SetOverrideByCatalogEntries(_ context.Context, companyID int64, entryIDs []int64, rate *float64) (int64, error) {
	f.calls++
	f.lastCompanyID = companyID
	f.lastEntryIDs = entryIDs
	f.lastRate = rate
	return f.updated, f.err
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(specs *fakeSpecRepo, entries *fakeEntryRepo, vehicles *fakeVehicleRepo) (*UseCase, *fakeTxManager) {
	tx := &fakeTxManager{}
	return NewUseCase(specs, entries, vehicles, tx, nopLogger{}), tx
}

func TestExecuteUpdatesOwnUnitsOnly(t *testing.T) {
	specs := &fakeSpecRepo{specs: []*domain.Specification{{ID: 10}, {ID: 11}}}
	entries := &fakeEntryRepo{
		created: 1,
		entries: []*domain.CatalogEntry{
			{ID: 100, SpecificationID: 10},
			{ID: 101, SpecificationID: 11},
		},
	}
	vehicles := &fakeVehicleRepo{updated: 3}
	uc, tx := newTestUseCase(specs, entries, vehicles)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 42,
		Make:      ptr.Ptr("Ford"),
		NewRate:   ptr.Ptr(55.0),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.UnitsUpdated)
	assert.Equal(t, int64(1), resp.CatalogEntriesCreated)

	assert.Equal(t, 1, tx.calls)
	require.NotNil(t, specs.lastSelector.Make)
	assert.Equal(t, "Ford", *specs.lastSelector.Make)

	assert.Equal(t, []int64{10, 11}, entries.ensuredIDs)
	assert.Equal(t, []int64{10, 11}, entries.listedIDs)

	// Обновление строго в рамках компании: чужие юниты на тех же записях
	// каталога не затрагиваются
	assert.Equal(t, int64(42), vehicles.lastCompanyID)
	assert.Equal(t, []int64{100, 101}, vehicles.lastEntryIDs)
	require.NotNil(t, vehicles.lastRate)
	assert.Equal(t, 55.0, *vehicles.lastRate)
}

func TestExecuteZeroMatchesIsSuccess(t *testing.T) {
	specs := &fakeSpecRepo{specs: []*domain.Specification{}}
	entries := &fakeEntryRepo{}
	vehicles := &fakeVehicleRepo{}
	uc, _ := newTestUseCase(specs, entries, vehicles)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 42,
		Make:      ptr.Ptr("Bentley"),
		NewRate:   ptr.Ptr(400.0),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.UnitsUpdated)
	assert.Equal(t, int64(0), resp.CatalogEntriesCreated)

	// До материализации и обновления дело не доходит
	assert.Equal(t, 0, entries.ensureCalls)
	assert.Equal(t, 0, vehicles.calls)
}

func TestExecuteClearsOverridesWithNilRate(t *testing.T) {
	specs := &fakeSpecRepo{specs: []*domain.Specification{{ID: 10}}}
	entries := &fakeEntryRepo{entries: []*domain.CatalogEntry{{ID: 100, SpecificationID: 10}}}
	vehicles := &fakeVehicleRepo{updated: 2}
	uc, _ := newTestUseCase(specs, entries, vehicles)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 42,
		Make:      ptr.Ptr("Ford"),
		NewRate:   nil,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.UnitsUpdated)
	assert.Nil(t, vehicles.lastRate)
}

func TestExecuteRepeatedCallKeepsUnitsUpdatedCount(t *testing.T) {
	specs := &fakeSpecRepo{specs: []*domain.Specification{{ID: 10}}}
	entries := &fakeEntryRepo{
		created: 1,
		entries: []*domain.CatalogEntry{{ID: 100, SpecificationID: 10}},
	}
	vehicles := &fakeVehicleRepo{updated: 3}
	uc, _ := newTestUseCase(specs, entries, vehicles)

	req := &Request{CompanyID: 42, Make: ptr.Ptr("Ford"), NewRate: ptr.Ptr(55.0)}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повторный вызов: записи каталога уже есть, но UPDATE считает все
	// подпавшие под условие строки, поэтому счетчик юнитов не меняется
	entries.created = 0
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.UnitsUpdated, second.UnitsUpdated)
	assert.Equal(t, int64(1), first.CatalogEntriesCreated)
	assert.Equal(t, int64(0), second.CatalogEntriesCreated)
}

func TestExecuteEmptySelectorCoversWholeCatalog(t *testing.T) {
	specs := &fakeSpecRepo{specs: []*domain.Specification{{ID: 10}, {ID: 11}, {ID: 12}}}
	entries := &fakeEntryRepo{entries: []*domain.CatalogEntry{
		{ID: 100, SpecificationID: 10},
		{ID: 101, SpecificationID: 11},
		{ID: 102, SpecificationID: 12},
	}}
	vehicles := &fakeVehicleRepo{updated: 5}
	uc, _ := newTestUseCase(specs, entries, vehicles)

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 42, NewRate: ptr.Ptr(60.0)})

	require.NoError(t, err)
	assert.True(t, specs.lastSelector.IsEmpty())
	assert.Equal(t, int64(5), resp.UnitsUpdated)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "non-positive company id",
			req:     &Request{CompanyID: 0, NewRate: ptr.Ptr(55.0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative rate",
			req:     &Request{CompanyID: 42, NewRate: ptr.Ptr(-1.0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "rate above limit",
			req:     &Request{CompanyID: 42, NewRate: ptr.Ptr(domain.MaxDailyRate + 1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty make criterion",
			req:     &Request{CompanyID: 42, Make: ptr.Ptr(""), NewRate: ptr.Ptr(55.0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown category",
			req:     &Request{CompanyID: 42, Category: ptr.Ptr("spaceship"), NewRate: ptr.Ptr(55.0)},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := &fakeSpecRepo{}
			entries := &fakeEntryRepo{}
			vehicles := &fakeVehicleRepo{}
			uc, _ := newTestUseCase(specs, entries, vehicles)

			_, err := uc.Execute(context.Background(), tt.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, specs.calls, "validation must reject before any repository call")
		})
	}
}

func TestExecuteRollsUpRepositoryErrors(t *testing.T) {
	repoErr := errors.New("connection refused")

	t.Run("find specifications fails", func(t *testing.T) {
		specs := &fakeSpecRepo{err: repoErr}
		uc, _ := newTestUseCase(specs, &fakeEntryRepo{}, &fakeVehicleRepo{})

		_, err := uc.Execute(context.Background(), &Request{CompanyID: 42, NewRate: ptr.Ptr(55.0)})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("ensure entries fails", func(t *testing.T) {
		specs := &fakeSpecRepo{specs: []*domain.Specification{{ID: 10}}}
		entries := &fakeEntryRepo{ensureErr: repoErr}
		vehicles := &fakeVehicleRepo{}
		uc, _ := newTestUseCase(specs, entries, vehicles)

		_, err := uc.Execute(context.Background(), &Request{CompanyID: 42, NewRate: ptr.Ptr(55.0)})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, 0, vehicles.calls)
	})

	t.Run("set overrides fails", func(t *testing.T) {
		specs := &fakeSpecRepo{specs: []*domain.Specification{{ID: 10}}}
		entries := &fakeEntryRepo{entries: []*domain.CatalogEntry{{ID: 100, SpecificationID: 10}}}
		vehicles := &fakeVehicleRepo{err: repoErr}
		uc, _ := newTestUseCase(specs, entries, vehicles)

		_, err := uc.Execute(context.Background(), &Request{CompanyID: 42, NewRate: ptr.Ptr(55.0)})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
