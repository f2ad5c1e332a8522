package create_vehicle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	vehicleStorage "github.com/m04kA/CRP-FleetService/internal/infra/storage/vehicle"
	"github.com/m04kA/CRP-FleetService/internal/integrations/companyservice"
	"github.com/m04kA/CRP-FleetService/pkg/ptr"
)

type fakeSpecRepo struct {
	spec          *domain.Specification
	created       bool
	err           error
	lastCandidate *domain.Specification
	calls         int
}

func (f *fakeSpecRepo) GetOrCreate(_ context.Context, spec *domain.Specification) (*domain.Specification, bool, error) {
	f.calls++
	f.lastCandidate = spec
	return f.spec, f.created, f.err
}

type fakeEntryRepo struct {
	entry       *domain.CatalogEntry
	ensureErr   error
	getErr      error
	ensuredIDs  []int64
	ensureCalls int
}

func (f *fakeEntryRepo) EnsureForSpecifications(_ context.Context, ids []int64) (int64, error) {
	f.ensureCalls++
	f.ensuredIDs = ids
	if f.ensureErr != nil {
		return 0, f.ensureErr
	}
	return 1, nil
}

func (f *fakeEntryRepo) GetBySpecificationID(_ context.Context, _ int64) (*domain.CatalogEntry, error) {
	return f.entry, f.getErr
}

type fakeVehicleRepo struct {
	err      error
	lastUnit *domain.Vehicle
	calls    int
}

func (f *fakeVehicleRepo) Create(_ context.Context, unit *domain.Vehicle) (*domain.Vehicle, error) {
	f.calls++
	f.lastUnit = unit
	if f.err != nil {
		return nil, f.err
	}
	created := *unit
	created.ID = 777
	created.CreatedAt = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

type fakeCompanyClient struct {
	company *companyservice.Company
	err     error
	calls   int
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, _ int64) (*companyservice.Company, error) {
	f.calls++
	return f.company, f.err
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseFixture struct {
	specs    *fakeSpecRepo
	entries  *fakeEntryRepo
	vehicles *fakeVehicleRepo
	company  *fakeCompanyClient
	tx       *fakeTxManager
	uc       *UseCase
}

func newFixture() *useCaseFixture {
	f := &useCaseFixture{
		specs: &fakeSpecRepo{
			spec:    &domain.Specification{ID: 10, Make: "Ford", Model: "Focus", MakeNorm: "ford", ModelNorm: "focus", ModelYear: 2022},
			created: true,
		},
		entries: &fakeEntryRepo{entry: &domain.CatalogEntry{ID: 100, SpecificationID: 10}},
		vehicles: &fakeVehicleRepo{},
		company: &fakeCompanyClient{
			company: &companyservice.Company{ID: 42, Name: "Wheels Inc", LocationIDs: []int64{1, 2}, IsActive: true},
		},
		tx: &fakeTxManager{},
	}
	f.uc = NewUseCase(f.specs, f.entries, f.vehicles, f.company, f.tx, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	return f
}

func validRequest() *Request {
	return &Request{
		CompanyID:    42,
		LicensePlate: "AB 123 CD",
		Make:         "Ford",
		Model:        "Focus",
		ModelYear:    2022,
	}
}

func TestExecuteCreatesLinkedUnit(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(777), resp.ID)
	assert.Equal(t, int64(42), resp.CompanyID)
	assert.Equal(t, "available", resp.Status)
	assert.True(t, resp.SpecificationCreated)
	require.NotNil(t, resp.SpecificationID)
	assert.Equal(t, int64(10), *resp.SpecificationID)
	require.NotNil(t, resp.CatalogEntryID)
	assert.Equal(t, int64(100), *resp.CatalogEntryID)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []int64{10}, f.entries.ensuredIDs)

	require.NotNil(t, f.vehicles.lastUnit)
	assert.Equal(t, domain.VehicleAvailable, f.vehicles.lastUnit.Status)
	require.NotNil(t, f.vehicles.lastUnit.CatalogEntryID)
	assert.Equal(t, int64(100), *f.vehicles.lastUnit.CatalogEntryID)
}

func TestExecuteNormalizesSpecificationCandidate(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Make = "  FORD  "
	req.Model = " Focus   Wagon "
	req.Category = ptr.Ptr("compact")

	_, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, f.specs.lastCandidate)
	assert.Equal(t, "FORD", f.specs.lastCandidate.Make)
	assert.Equal(t, "ford", f.specs.lastCandidate.MakeNorm)
	assert.Equal(t, "focus wagon", f.specs.lastCandidate.ModelNorm)
	require.NotNil(t, f.specs.lastCandidate.Category)
	assert.Equal(t, domain.CategoryCompact, *f.specs.lastCandidate.Category)
}

func TestExecuteReusesExistingSpecification(t *testing.T) {
	f := newFixture()
	f.specs.created = false

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.False(t, resp.SpecificationCreated)
	require.NotNil(t, resp.SpecificationID)
	assert.Equal(t, int64(10), *resp.SpecificationID)
}

func TestExecuteCreatesUnlinkedUnit(t *testing.T) {
	f := newFixture()

	req := &Request{
		CompanyID:    42,
		LicensePlate: "AB 123 CD",
	}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, resp.SpecificationID)
	assert.Nil(t, resp.CatalogEntryID)
	assert.False(t, resp.SpecificationCreated)

	// Каталог не трогаем: юнит без спецификации
	assert.Equal(t, 0, f.specs.calls)
	assert.Equal(t, 0, f.entries.ensureCalls)
	require.NotNil(t, f.vehicles.lastUnit)
	assert.Nil(t, f.vehicles.lastUnit.CatalogEntryID)
}

func TestExecuteTrimsLicensePlate(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.LicensePlate = "  AB 123 CD  "

	_, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "AB 123 CD", f.vehicles.lastUnit.LicensePlate)
}

func TestExecuteCompanyNotFound(t *testing.T) {
	f := newFixture()
	f.company.company = nil
	f.company.err = companyservice.ErrCompanyNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecuteCompanyServiceUnavailable(t *testing.T) {
	f := newFixture()
	f.company.company = nil
	f.company.err = companyservice.ErrInternal

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecuteLocationNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.LocationID = ptr.Ptr(int64(99))

	_, err := f.uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocationNotFound)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecuteLocationAccepted(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.LocationID = ptr.Ptr(int64(2))

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.LocationID)
	assert.Equal(t, int64(2), *resp.LocationID)
}

func TestExecuteDuplicateVehicle(t *testing.T) {
	f := newFixture()
	f.vehicles.err = vehicleStorage.ErrDuplicateVehicle

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateVehicle)
}

func TestExecuteSpecificationLookupFails(t *testing.T) {
	f := newFixture()
	f.specs.spec = nil
	f.specs.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, f.vehicles.calls)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "non-positive company id",
			mutate:  func(req *Request) { req.CompanyID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty license plate",
			mutate:  func(req *Request) { req.LicensePlate = "   " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "license plate too long",
			mutate:  func(req *Request) { req.LicensePlate = "AB 123 CD 456 EF 789" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "vin with wrong length",
			mutate:  func(req *Request) { req.VIN = ptr.Ptr("TOOSHORT") },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "rate override out of bounds",
			mutate:  func(req *Request) { req.RateOverride = ptr.Ptr(-5.0) },
			wantErr: ErrInvalidInput,
		},
		{
			name: "partial specification block",
			mutate: func(req *Request) {
				req.Model = ""
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "category without specification",
			mutate: func(req *Request) {
				req.Make = ""
				req.Model = ""
				req.ModelYear = 0
				req.Category = ptr.Ptr("suv")
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown category",
			mutate:  func(req *Request) { req.Category = ptr.Ptr("hovercraft") },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "model year before lower bound",
			mutate:  func(req *Request) { req.ModelYear = 1949 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "model year too far ahead",
			mutate:  func(req *Request) { req.ModelYear = 2029 },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.company.calls, "validation must reject before the company lookup")
		})
	}
}

func TestExecuteModelYearBoundaryAccepted(t *testing.T) {
	// Фиксированное время: 2026 год, верхняя граница модельного года 2028
	f := newFixture()

	req := validRequest()
	req.ModelYear = 2028

	_, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
}
