package find_available

import (
	"context"
	"fmt"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	"github.com/m04kA/CRP-FleetService/pkg/ptr"
)

// UseCase use case поиска юнитов, доступных в окне аренды.
// Выборка read-only и дает снимок на момент чтения: гонка с параллельно
// создаваемой бронью допустима, сервис бронирований перепроверит
// доступность при подтверждении.
type UseCase struct {
	vehicleRepo     VehicleRepository
	specRepo        SpecificationRepository
	entryRepo       CatalogEntryRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vehicleRepo VehicleRepository,
	specRepo SpecificationRepository,
	entryRepo CatalogEntryRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		vehicleRepo:     vehicleRepo,
		specRepo:        specRepo,
		entryRepo:       entryRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute выполняет use case поиска доступных юнитов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailable: company=%d, pickup=%s, return=%s, location=%v",
		req.CompanyID, req.PickupAt.Format(domain.TimestampFormat), req.ReturnAt.Format(domain.TimestampFormat), req.LocationID)

	// 1. Валидация входных данных (до обращений к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailable: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем свободные к аренде юниты компании.
	// Участвуют только юниты со статусом available и привязкой к каталогу.
	filter := domain.VehicleFilter{
		CompanyID:         req.CompanyID,
		Status:            ptr.Ptr(domain.VehicleAvailable),
		LocationID:        req.LocationID,
		CatalogLinkedOnly: true,
	}

	units, err := uc.vehicleRepo.ListByCompany(ctx, filter)
	if err != nil {
		uc.logger.Error("FindAvailable: failed to list vehicles: %v", err)
		return nil, fmt.Errorf("%w: failed to list vehicles: %v", ErrInternal, err)
	}

	if len(units) == 0 {
		uc.logger.Info("FindAvailable: no candidate vehicles for company=%d", req.CompanyID)
		return emptyResponse(req), nil
	}

	// 3. Загружаем активные брони юнитов, пересекающие окно
	unitIDs := make([]int64, len(units))
	for i, unit := range units {
		unitIDs[i] = unit.ID
	}

	reservations, err := uc.reservationRepo.ListActiveForVehiclesInWindow(ctx, unitIDs, req.PickupAt, req.ReturnAt)
	if err != nil {
		uc.logger.Error("FindAvailable: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 4. Исключаем занятые юниты
	available := excludeReservedUnits(units, reservations, req.PickupAt, req.ReturnAt)
	if len(available) == 0 {
		uc.logger.Info("FindAvailable: all %d candidate vehicles are reserved for company=%d", len(units), req.CompanyID)
		return emptyResponse(req), nil
	}

	// 5. Загружаем записи каталога и спецификации выживших юнитов
	entryByID, specByID, err := uc.loadCatalogData(ctx, available)
	if err != nil {
		return nil, err
	}

	// 6. Группируем по спецификациям и считаем диапазоны ставок
	groups, err := buildGroups(available, entryByID, specByID)
	if err != nil {
		uc.logger.Error("FindAvailable: failed to build groups for company=%d: %v", req.CompanyID, err)
		return nil, err
	}

	uc.logger.Info("FindAvailable: company=%d, available_units=%d, groups=%d",
		req.CompanyID, len(available), len(groups))

	return &Response{
		CompanyID: req.CompanyID,
		PickupAt:  req.PickupAt,
		ReturnAt:  req.ReturnAt,
		Groups:    groups,
	}, nil
}

// loadCatalogData загружает записи каталога юнитов и их спецификации
func (uc *UseCase) loadCatalogData(ctx context.Context, units []*domain.Vehicle) (map[int64]*domain.CatalogEntry, map[int64]*domain.Specification, error) {
	entryIDs := make([]int64, 0, len(units))
	seen := make(map[int64]struct{}, len(units))
	for _, unit := range units {
		if unit.CatalogEntryID == nil {
			continue
		}
		if _, ok := seen[*unit.CatalogEntryID]; ok {
			continue
		}
		seen[*unit.CatalogEntryID] = struct{}{}
		entryIDs = append(entryIDs, *unit.CatalogEntryID)
	}

	entries, err := uc.entryRepo.ListByIDs(ctx, entryIDs)
	if err != nil {
		uc.logger.Error("FindAvailable: failed to list catalog entries: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to list catalog entries: %v", ErrInternal, err)
	}

	entryByID := make(map[int64]*domain.CatalogEntry, len(entries))
	specIDs := make([]int64, 0, len(entries))
	for _, entry := range entries {
		entryByID[entry.ID] = entry
		specIDs = append(specIDs, entry.SpecificationID)
	}

	specs, err := uc.specRepo.ListByIDs(ctx, specIDs)
	if err != nil {
		uc.logger.Error("FindAvailable: failed to list specifications: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to list specifications: %v", ErrInternal, err)
	}

	specByID := make(map[int64]*domain.Specification, len(specs))
	for _, spec := range specs {
		specByID[spec.ID] = spec
	}

	return entryByID, specByID, nil
}

// emptyResponse собирает ответ без групп
func emptyResponse(req *Request) *Response {
	return &Response{
		CompanyID: req.CompanyID,
		PickupAt:  req.PickupAt,
		ReturnAt:  req.ReturnAt,
		Groups:    []Group{},
	}
}
