package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	catalogRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/catalogentry"
	vehicleRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/vehicle"
	"github.com/m04kA/CRP-FleetService/internal/service/fleet/models"
)

// Service сервис для работы с юнитами автопарка и их ставками
type Service struct {
	vehicleRepo VehicleRepository
	specRepo    SpecificationRepository
	entryRepo   CatalogEntryRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса автопарка
func NewService(
	vehicleRepo VehicleRepository,
	specRepo SpecificationRepository,
	entryRepo CatalogEntryRepository,
	logger Logger,
) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		specRepo:    specRepo,
		entryRepo:   entryRepo,
		logger:      logger,
	}
}

// GetVehicle получает юнит компании вместе с его эффективной ставкой.
// Юнит чужой компании не возвращается: запрос отклоняется с ErrCrossTenantAccess.
func (s *Service) GetVehicle(ctx context.Context, companyID, vehicleID int64) (*models.VehicleResponse, error) {
	s.logger.Info("GetVehicle: fetching vehicle id=%d for company=%d", vehicleID, companyID)

	unit, err := s.loadOwnedVehicle(ctx, companyID, vehicleID, "GetVehicle")
	if err != nil {
		return nil, err
	}

	entry, err := s.loadCatalogEntry(ctx, unit, "GetVehicle")
	if err != nil {
		return nil, err
	}

	rate, err := domain.ResolveRate(unit, entry)
	if err != nil {
		s.logger.Error("GetVehicle: dangling catalog reference for vehicle id=%d entry=%d", vehicleID, *unit.CatalogEntryID)
		return nil, ErrDanglingCatalogRef
	}

	// Спецификация нужна только для отображения: у непривязанного юнита её нет
	var spec *domain.Specification
	if entry != nil {
		spec, err = s.specRepo.GetByID(ctx, entry.SpecificationID)
		if err != nil {
			s.logger.Error("GetVehicle: failed to load specification id=%d for vehicle id=%d: %v", entry.SpecificationID, vehicleID, err)
			return nil, fmt.Errorf("%w: GetVehicle - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("GetVehicle: successfully fetched vehicle id=%d rate_source=%s", vehicleID, rate.Source)
	return models.FromDomainVehicle(unit, spec, rate), nil
}

// GetVehicleRate получает эффективную суточную ставку юнита.
// Прецедентность: персональная ставка юнита, затем шаблонная ставка каталога,
// затем явное состояние "не настроена".
func (s *Service) GetVehicleRate(ctx context.Context, companyID, vehicleID int64) (*models.RateResponse, error) {
	s.logger.Info("GetVehicleRate: resolving rate for vehicle id=%d company=%d", vehicleID, companyID)

	unit, err := s.loadOwnedVehicle(ctx, companyID, vehicleID, "GetVehicleRate")
	if err != nil {
		return nil, err
	}

	entry, err := s.loadCatalogEntry(ctx, unit, "GetVehicleRate")
	if err != nil {
		return nil, err
	}

	rate, err := domain.ResolveRate(unit, entry)
	if err != nil {
		s.logger.Error("GetVehicleRate: dangling catalog reference for vehicle id=%d entry=%d", vehicleID, *unit.CatalogEntryID)
		return nil, ErrDanglingCatalogRef
	}

	s.logger.Info("GetVehicleRate: resolved rate for vehicle id=%d source=%s", vehicleID, rate.Source)
	resp := models.FromDomainRate(rate)
	return &resp, nil
}

// GetDisplayRate вычисляет витринную ставку группы юнитов.
// Группа задается либо явным списком ID юнитов, либо селектором спецификаций
// по юнитам компании, привязанным к каталогу. Любое расхождение ставок внутри
// группы дает varies=true: сервис никогда не подменяет разнобой минимумом
// или средним.
func (s *Service) GetDisplayRate(ctx context.Context, req *models.DisplayRateRequest) (*models.DisplayRateResponse, error) {
	s.logger.Info("GetDisplayRate: computing display rate for company=%d explicit_units=%d", req.CompanyID, len(req.VehicleIDs))

	var (
		units []*domain.Vehicle
		err   error
	)

	if req.HasExplicitUnits() {
		units, err = s.loadExplicitUnits(ctx, req.CompanyID, req.VehicleIDs)
	} else {
		units, err = s.loadUnitsBySelector(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	if len(units) == 0 {
		s.logger.Warn("GetDisplayRate: no vehicles in group for company=%d", req.CompanyID)
		return nil, ErrEmptyGroup
	}

	rates, err := s.resolveUnitRates(ctx, units, "GetDisplayRate")
	if err != nil {
		return nil, err
	}

	displayRate, err := domain.AggregateDisplayRate(rates)
	if err != nil {
		// Пустая группа отсечена выше, сюда попадать не должно
		s.logger.Error("GetDisplayRate: aggregation failed for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetDisplayRate - aggregation: %v", ErrInternal, err)
	}

	s.logger.Info("GetDisplayRate: company=%d units=%d varies=%t", req.CompanyID, len(units), displayRate.Varies)
	return models.FromDomainDisplayRate(displayRate, len(units)), nil
}

// Вспомогательные методы

// loadOwnedVehicle загружает юнит и проверяет его принадлежность компании
func (s *Service) loadOwnedVehicle(ctx context.Context, companyID, vehicleID int64, op string) (*domain.Vehicle, error) {
	unit, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("%s: vehicle id=%d not found", op, vehicleID)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("%s: repository error for vehicle id=%d: %v", op, vehicleID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if unit.CompanyID != companyID {
		s.logger.Warn("%s: vehicle id=%d belongs to company=%d, requested by company=%d", op, vehicleID, unit.CompanyID, companyID)
		return nil, ErrCrossTenantAccess
	}

	return unit, nil
}

// loadCatalogEntry загружает запись каталога, на которую ссылается юнит.
// Для непривязанного юнита возвращает nil без ошибки. Отсутствие записи при
// непустой ссылке здесь не ошибка: решение принимает domain.ResolveRate.
func (s *Service) loadCatalogEntry(ctx context.Context, unit *domain.Vehicle, op string) (*domain.CatalogEntry, error) {
	if unit.CatalogEntryID == nil {
		return nil, nil
	}

	entry, err := s.entryRepo.GetByID(ctx, *unit.CatalogEntryID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrEntryNotFound) {
			return nil, nil
		}
		s.logger.Error("%s: repository error for catalog entry id=%d: %v", op, *unit.CatalogEntryID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return entry, nil
}

// loadExplicitUnits загружает юниты по явному списку ID.
// Отсутствующий ID дает ErrVehicleNotFound, чужой юнит - ErrCrossTenantAccess.
func (s *Service) loadExplicitUnits(ctx context.Context, companyID int64, vehicleIDs []int64) ([]*domain.Vehicle, error) {
	units, err := s.vehicleRepo.ListByIDs(ctx, vehicleIDs)
	if err != nil {
		s.logger.Error("GetDisplayRate: repository error for explicit units: %v", err)
		return nil, fmt.Errorf("%w: GetDisplayRate - repository error: %v", ErrInternal, err)
	}

	if len(units) != len(uniqueIDs(vehicleIDs)) {
		s.logger.Warn("GetDisplayRate: explicit list contains unknown vehicle ids for company=%d", companyID)
		return nil, ErrVehicleNotFound
	}

	for _, unit := range units {
		if unit.CompanyID != companyID {
			s.logger.Warn("GetDisplayRate: vehicle id=%d belongs to company=%d, requested by company=%d", unit.ID, unit.CompanyID, companyID)
			return nil, ErrCrossTenantAccess
		}
	}

	return units, nil
}

// loadUnitsBySelector загружает юниты компании, чьи спецификации подпадают
// под селектор. Участвуют только юниты, привязанные к каталогу.
func (s *Service) loadUnitsBySelector(ctx context.Context, req *models.DisplayRateRequest) ([]*domain.Vehicle, error) {
	selector, err := req.ToDomainSelector()
	if err != nil {
		s.logger.Warn("GetDisplayRate: invalid selector for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid selector: %v", ErrInvalidInput, err)
	}

	specs, err := s.specRepo.FindBySelector(ctx, selector)
	if err != nil {
		s.logger.Error("GetDisplayRate: repository error for selector: %v", err)
		return nil, fmt.Errorf("%w: GetDisplayRate - repository error: %v", ErrInternal, err)
	}
	if len(specs) == 0 {
		return []*domain.Vehicle{}, nil
	}

	specIDs := make([]int64, len(specs))
	for i, spec := range specs {
		specIDs[i] = spec.ID
	}

	entries, err := s.entryRepo.ListBySpecificationIDs(ctx, specIDs)
	if err != nil {
		s.logger.Error("GetDisplayRate: repository error for catalog entries: %v", err)
		return nil, fmt.Errorf("%w: GetDisplayRate - repository error: %v", ErrInternal, err)
	}

	entryIDSet := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		entryIDSet[entry.ID] = struct{}{}
	}

	allUnits, err := s.vehicleRepo.ListByCompany(ctx, domain.VehicleFilter{
		CompanyID:         req.CompanyID,
		CatalogLinkedOnly: true,
	})
	if err != nil {
		s.logger.Error("GetDisplayRate: repository error for company units: %v", err)
		return nil, fmt.Errorf("%w: GetDisplayRate - repository error: %v", ErrInternal, err)
	}

	units := make([]*domain.Vehicle, 0, len(allUnits))
	for _, unit := range allUnits {
		if unit.CatalogEntryID == nil {
			continue
		}
		if _, ok := entryIDSet[*unit.CatalogEntryID]; ok {
			units = append(units, unit)
		}
	}

	return units, nil
}

// resolveUnitRates загружает записи каталога юнитов одним запросом и резолвит
// эффективную ставку каждого юнита
func (s *Service) resolveUnitRates(ctx context.Context, units []*domain.Vehicle, op string) ([]domain.ResolvedRate, error) {
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

	entries, err := s.entryRepo.ListByIDs(ctx, entryIDs)
	if err != nil {
		s.logger.Error("%s: repository error for catalog entries: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	entryByID := make(map[int64]*domain.CatalogEntry, len(entries))
	for _, entry := range entries {
		entryByID[entry.ID] = entry
	}

	rates := make([]domain.ResolvedRate, 0, len(units))
	for _, unit := range units {
		var entry *domain.CatalogEntry
		if unit.CatalogEntryID != nil {
			entry = entryByID[*unit.CatalogEntryID]
		}

		rate, err := domain.ResolveRate(unit, entry)
		if err != nil {
			s.logger.Error("%s: dangling catalog reference for vehicle id=%d entry=%d", op, unit.ID, *unit.CatalogEntryID)
			return nil, ErrDanglingCatalogRef
		}

		rates = append(rates, rate)
	}

	return rates, nil
}

// uniqueIDs возвращает список без дубликатов, сохраняя порядок
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
