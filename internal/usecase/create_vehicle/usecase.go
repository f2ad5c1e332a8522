package create_vehicle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	vehicleRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/vehicle"
	companyClient "github.com/m04kA/CRP-FleetService/internal/integrations/companyservice"
)

// UseCase use case для добавления юнита в автопарк
type UseCase struct {
	specRepo      SpecificationRepository
	entryRepo     CatalogEntryRepository
	vehicleRepo   VehicleRepository
	companyClient CompanyServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	specRepo SpecificationRepository,
	entryRepo CatalogEntryRepository,
	vehicleRepo VehicleRepository,
	companyClient CompanyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		specRepo:      specRepo,
		entryRepo:     entryRepo,
		vehicleRepo:   vehicleRepo,
		companyClient: companyClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case добавления юнита.
// Спецификация создается по принципу insert-if-absent: одновременное
// добавление двух юнитов одной спецификации не дает дубликата и не падает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateVehicle: company=%d, plate=%s, spec=%s %s %d",
		req.CompanyID, req.LicensePlate, req.Make, req.Model, req.ModelYear)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateVehicle: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем компанию в реестре
	company, err := uc.companyClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			uc.logger.Warn("CreateVehicle: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateVehicle: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 4. Проверяем существование точки выдачи
	if req.LocationID != nil {
		if err := validateLocationExists(company, *req.LocationID); err != nil {
			uc.logger.Warn("CreateVehicle: location id=%d not found in company id=%d", *req.LocationID, req.CompanyID)
			return nil, err
		}
	}

	// Переменные для хранения результата
	var (
		result      *domain.Vehicle
		spec        *domain.Specification
		specCreated bool
	)

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		unit := &domain.Vehicle{
			CompanyID:    req.CompanyID,
			LicensePlate: strings.TrimSpace(req.LicensePlate),
			VIN:          req.VIN,
			LocationID:   req.LocationID,
			Status:       domain.VehicleAvailable,
			RateOverride: req.RateOverride,
		}

		// 5.1. Получаем или создаем спецификацию и её запись каталога
		if req.HasSpecification() {
			candidate := &domain.Specification{
				Make:      strings.TrimSpace(req.Make),
				Model:     strings.TrimSpace(req.Model),
				ModelYear: req.ModelYear,
			}
			if req.Category != nil {
				category, err := domain.ParseVehicleCategory(*req.Category)
				if err != nil {
					return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
				}
				candidate.Category = &category
			}
			candidate.Normalize()

			created, wasCreated, err := uc.specRepo.GetOrCreate(txCtx, candidate)
			if err != nil {
				uc.logger.Error("CreateVehicle: failed to get or create specification: %v", err)
				return fmt.Errorf("%w: failed to get or create specification: %v", ErrInternal, err)
			}
			spec = created
			specCreated = wasCreated

			// 5.2. Материализуем запись каталога спецификации
			if _, err := uc.entryRepo.EnsureForSpecifications(txCtx, []int64{spec.ID}); err != nil {
				uc.logger.Error("CreateVehicle: failed to ensure catalog entry for specification id=%d: %v", spec.ID, err)
				return fmt.Errorf("%w: failed to ensure catalog entry: %v", ErrInternal, err)
			}

			entry, err := uc.entryRepo.GetBySpecificationID(txCtx, spec.ID)
			if err != nil {
				uc.logger.Error("CreateVehicle: failed to load catalog entry for specification id=%d: %v", spec.ID, err)
				return fmt.Errorf("%w: failed to load catalog entry: %v", ErrInternal, err)
			}

			unit.CatalogEntryID = &entry.ID
		}

		// 5.3. Сохраняем юнит
		created, err := uc.vehicleRepo.Create(txCtx, unit)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrDuplicateVehicle) {
				uc.logger.Warn("CreateVehicle: duplicate plate=%s or vin in company=%d", req.LicensePlate, req.CompanyID)
				return ErrDuplicateVehicle
			}
			uc.logger.Error("CreateVehicle: failed to create vehicle: %v", err)
			return fmt.Errorf("%w: failed to create vehicle: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateVehicle: successfully created vehicle id=%d for company=%d", result.ID, req.CompanyID)

	// Конвертируем в response
	resp := &Response{
		ID:                   result.ID,
		CompanyID:            result.CompanyID,
		CatalogEntryID:       result.CatalogEntryID,
		LicensePlate:         result.LicensePlate,
		VIN:                  result.VIN,
		LocationID:           result.LocationID,
		Status:               string(result.Status),
		RateOverride:         result.RateOverride,
		SpecificationCreated: specCreated,
		CreatedAt:            result.CreatedAt,
		UpdatedAt:            result.UpdatedAt,
	}
	if spec != nil {
		resp.SpecificationID = &spec.ID
	}

	return resp, nil
}
