package bulk_set_rates

import (
	"context"
	"fmt"
)

// UseCase use case массовой установки ставок по селектору спецификаций.
// Операция дополняет каталог недостающими записями и меняет только
// персональные ставки юнитов своей компании. Шаблонные ставки каталога
// не затрагиваются.
type UseCase struct {
	specRepo    SpecificationRepository
	entryRepo   CatalogEntryRepository
	vehicleRepo VehicleRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	specRepo SpecificationRepository,
	entryRepo CatalogEntryRepository,
	vehicleRepo VehicleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		specRepo:    specRepo,
		entryRepo:   entryRepo,
		vehicleRepo: vehicleRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case массовой установки ставок.
// Все шаги идут в одной транзакции: снаружи не видно состояния, где записи
// каталога уже материализованы, а ставки юнитов еще старые. Повторный вызов
// с теми же аргументами дает то же состояние и те же счетчики.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BulkSetRates: company=%d, category=%v, make=%v, model=%v, year=%v, rate=%v",
		req.CompanyID, req.Category, req.Make, req.Model, req.ModelYear, req.NewRate)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BulkSetRates: validation failed: %v", err)
		return nil, err
	}

	// 2. Конвертируем селектор
	selector, err := req.ToDomainSelector()
	if err != nil {
		uc.logger.Warn("BulkSetRates: invalid selector: %v", err)
		return nil, fmt.Errorf("%w: invalid selector: %v", ErrInvalidInput, err)
	}

	// Переменная для хранения результата
	result := &Response{}

	// 3. Выполняем операции с БД в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Находим спецификации, подпадающие под селектор
		specs, err := uc.specRepo.FindBySelector(txCtx, selector)
		if err != nil {
			uc.logger.Error("BulkSetRates: failed to find specifications: %v", err)
			return fmt.Errorf("%w: failed to find specifications: %v", ErrInternal, err)
		}

		// Ни одной спецификации - валидный исход, не ошибка
		if len(specs) == 0 {
			uc.logger.Info("BulkSetRates: no specifications match selector for company=%d", req.CompanyID)
			return nil
		}

		specIDs := make([]int64, len(specs))
		for i, spec := range specs {
			specIDs[i] = spec.ID
		}

		// 3.2. Материализуем недостающие записи каталога
		entriesCreated, err := uc.entryRepo.EnsureForSpecifications(txCtx, specIDs)
		if err != nil {
			uc.logger.Error("BulkSetRates: failed to ensure catalog entries: %v", err)
			return fmt.Errorf("%w: failed to ensure catalog entries: %v", ErrInternal, err)
		}
		result.CatalogEntriesCreated = entriesCreated

		// 3.3. Собираем записи каталога охваченных спецификаций
		entries, err := uc.entryRepo.ListBySpecificationIDs(txCtx, specIDs)
		if err != nil {
			uc.logger.Error("BulkSetRates: failed to list catalog entries: %v", err)
			return fmt.Errorf("%w: failed to list catalog entries: %v", ErrInternal, err)
		}

		entryIDs := make([]int64, len(entries))
		for i, entry := range entries {
			entryIDs[i] = entry.ID
		}

		// 3.4. Обновляем персональные ставки юнитов компании
		unitsUpdated, err := uc.vehicleRepo.SetOverrideByCatalogEntries(txCtx, req.CompanyID, entryIDs, req.NewRate)
		if err != nil {
			uc.logger.Error("BulkSetRates: failed to set unit overrides: %v", err)
			return fmt.Errorf("%w: failed to set unit overrides: %v", ErrInternal, err)
		}
		result.UnitsUpdated = unitsUpdated

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BulkSetRates: company=%d, units_updated=%d, entries_created=%d",
		req.CompanyID, result.UnitsUpdated, result.CatalogEntriesCreated)

	return result, nil
}
