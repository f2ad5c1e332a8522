package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	entryRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/catalogentry"
	specRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/specification"
	"github.com/m04kA/CRP-FleetService/internal/service/catalog/models"
)

// Service сервис администрирования глобального каталога спецификаций.
// Каталог общий для всех компаний: шаблонные ставки меняются только здесь.
type Service struct {
	specRepo     SpecificationRepository
	entryRepo    CatalogEntryRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	specRepo SpecificationRepository,
	entryRepo CatalogEntryRepository,
	logger Logger,
) *Service {
	return &Service{
		specRepo:     specRepo,
		entryRepo:    entryRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateSpecification создает спецификацию каталога вместе с её записью.
// Запись каталога создается без шаблонной ставки. Дубликат канонического
// ключа (make, model, year) дает ErrSpecificationExists.
func (s *Service) CreateSpecification(ctx context.Context, req *models.CreateSpecificationRequest) (*models.SpecificationResponse, error) {
	s.logger.Info("CreateSpecification: creating specification make=%s model=%s year=%d", req.Make, req.Model, req.ModelYear)

	if err := s.validateSpecificationInput(req); err != nil {
		s.logger.Warn("CreateSpecification: invalid input make=%s model=%s year=%d: %v", req.Make, req.Model, req.ModelYear, err)
		return nil, err
	}

	spec, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateSpecification: invalid category=%v: %v", req.Category, err)
		return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}

	created, err := s.specRepo.Create(ctx, spec)
	if err != nil {
		if errors.Is(err, specRepo.ErrSpecificationExists) {
			s.logger.Warn("CreateSpecification: specification make=%s model=%s year=%d already exists", req.Make, req.Model, req.ModelYear)
			return nil, ErrSpecificationExists
		}
		s.logger.Error("CreateSpecification: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpecification - repository error: %v", ErrInternal, err)
	}

	// Материализуем запись каталога сразу: дальше её будут находить
	// и bulk-операции, и установка шаблонной ставки
	if _, err := s.entryRepo.EnsureForSpecifications(ctx, []int64{created.ID}); err != nil {
		s.logger.Error("CreateSpecification: failed to ensure catalog entry for specification id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: CreateSpecification - repository error: %v", ErrInternal, err)
	}

	entry, err := s.entryRepo.GetBySpecificationID(ctx, created.ID)
	if err != nil {
		s.logger.Error("CreateSpecification: failed to load catalog entry for specification id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: CreateSpecification - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSpecification: successfully created specification id=%d", created.ID)
	return models.FromDomainSpecification(created, entry), nil
}

// GetSpecification получает спецификацию вместе с шаблонной ставкой каталога
func (s *Service) GetSpecification(ctx context.Context, specificationID int64) (*models.SpecificationResponse, error) {
	s.logger.Info("GetSpecification: fetching specification id=%d", specificationID)

	spec, err := s.specRepo.GetByID(ctx, specificationID)
	if err != nil {
		if errors.Is(err, specRepo.ErrSpecificationNotFound) {
			s.logger.Warn("GetSpecification: specification id=%d not found", specificationID)
			return nil, ErrSpecificationNotFound
		}
		s.logger.Error("GetSpecification: repository error for id=%d: %v", specificationID, err)
		return nil, fmt.Errorf("%w: GetSpecification - repository error: %v", ErrInternal, err)
	}

	entry, err := s.loadEntry(ctx, specificationID, "GetSpecification")
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetSpecification: successfully fetched specification id=%d", specificationID)
	return models.FromDomainSpecification(spec, entry), nil
}

// SetTemplateRate устанавливает шаблонную ставку спецификации.
// Ставка общая для всех компаний с юнитами этой спецификации.
// rate = nil сбрасывает ставку в состояние "не настроена".
func (s *Service) SetTemplateRate(ctx context.Context, specificationID int64, req *models.SetTemplateRateRequest) (*models.TemplateRateResponse, error) {
	s.logger.Info("SetTemplateRate: setting template rate for specification id=%d rate=%v", specificationID, req.TemplateRate)

	if err := validateRate(req.TemplateRate); err != nil {
		s.logger.Warn("SetTemplateRate: invalid rate for specification id=%d: %v", specificationID, err)
		return nil, err
	}

	if _, err := s.specRepo.GetByID(ctx, specificationID); err != nil {
		if errors.Is(err, specRepo.ErrSpecificationNotFound) {
			s.logger.Warn("SetTemplateRate: specification id=%d not found", specificationID)
			return nil, ErrSpecificationNotFound
		}
		s.logger.Error("SetTemplateRate: repository error for id=%d: %v", specificationID, err)
		return nil, fmt.Errorf("%w: SetTemplateRate - repository error: %v", ErrInternal, err)
	}

	// Запись могла быть не материализована, если спецификация появилась
	// до введения каталожных записей
	if _, err := s.entryRepo.EnsureForSpecifications(ctx, []int64{specificationID}); err != nil {
		s.logger.Error("SetTemplateRate: failed to ensure catalog entry for specification id=%d: %v", specificationID, err)
		return nil, fmt.Errorf("%w: SetTemplateRate - repository error: %v", ErrInternal, err)
	}

	if err := s.entryRepo.SetTemplateRate(ctx, specificationID, req.TemplateRate); err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotFound) {
			s.logger.Error("SetTemplateRate: catalog entry missing for specification id=%d after ensure", specificationID)
			return nil, fmt.Errorf("%w: SetTemplateRate - catalog entry missing", ErrInternal)
		}
		s.logger.Error("SetTemplateRate: repository error for id=%d: %v", specificationID, err)
		return nil, fmt.Errorf("%w: SetTemplateRate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetTemplateRate: successfully set template rate for specification id=%d", specificationID)
	return &models.TemplateRateResponse{
		SpecificationID: specificationID,
		TemplateRate:    req.TemplateRate,
	}, nil
}

// Вспомогательные методы

// loadEntry загружает запись каталога спецификации.
// Отсутствие записи не ошибка: спецификация без записи показывается
// с ненастроенной шаблонной ставкой.
func (s *Service) loadEntry(ctx context.Context, specificationID int64, op string) (*domain.CatalogEntry, error) {
	entry, err := s.entryRepo.GetBySpecificationID(ctx, specificationID)
	if err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotFound) {
			return nil, nil
		}
		s.logger.Error("%s: repository error for catalog entry of specification id=%d: %v", op, specificationID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return entry, nil
}

// validateSpecificationInput проверяет границы входных данных спецификации
func (s *Service) validateSpecificationInput(req *models.CreateSpecificationRequest) error {
	if strings.TrimSpace(req.Make) == "" {
		return fmt.Errorf("%w: make is required", ErrInvalidInput)
	}
	if len(req.Make) > domain.MaxMakeLength {
		return fmt.Errorf("%w: make is too long", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if len(req.Model) > domain.MaxModelLength {
		return fmt.Errorf("%w: model is too long", ErrInvalidInput)
	}

	maxYear := s.timeProvider.Now().Year() + domain.MaxModelYearsAhead
	if req.ModelYear < domain.MinModelYear || req.ModelYear > maxYear {
		return fmt.Errorf("%w: model year must be between %d and %d", ErrInvalidInput, domain.MinModelYear, maxYear)
	}

	return nil
}

// validateRate проверяет границы суточной ставки
func validateRate(rate *float64) error {
	if rate == nil {
		return nil
	}
	if *rate < domain.MinDailyRate || *rate > domain.MaxDailyRate {
		return fmt.Errorf("%w: rate must be between %.2f and %.2f", ErrInvalidInput, domain.MinDailyRate, domain.MaxDailyRate)
	}
	return nil
}
