package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	"github.com/m04kA/CRP-FleetService/pkg/dbmetrics"
	"github.com/m04kA/CRP-FleetService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var vehicleColumns = []string{
	"id",
	"company_id",
	"catalog_entry_id",
	"license_plate",
	"vin",
	"location_id",
	"status",
	"rate_override",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с юнитами автопарка
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория юнитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый юнит автопарка.
// При нарушении уникальности (госномер в рамках компании или VIN)
// возвращает ErrDuplicateVehicle.
func (r *Repository) Create(ctx context.Context, unit *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns(
			"company_id",
			"catalog_entry_id",
			"license_plate",
			"vin",
			"location_id",
			"status",
			"rate_override",
		).
		Values(
			unit.CompanyID,
			unit.CatalogEntryID,
			unit.LicensePlate,
			unit.VIN,
			unit.LocationID,
			unit.Status,
			unit.RateOverride,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateVehicle
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	return unit, nil
}

// GetByID получает юнит по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var unit domain.Vehicle
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&unit.CompanyID,
		&unit.CatalogEntryID,
		&unit.LicensePlate,
		&unit.VIN,
		&unit.LocationID,
		&unit.Status,
		&unit.RateOverride,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan vehicle: %v", ErrScanRow, err)
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	return &unit, nil
}

// ListByCompany получает юниты компании с гибкой фильтрацией.
// Поддерживает фильтрацию по:
// - Статусу (Status) - опционально
// - Локации (LocationID) - опционально
// - Привязке к каталогу (CatalogLinkedOnly) - только юниты с catalog_entry_id
func (r *Repository) ListByCompany(ctx context.Context, filter domain.VehicleFilter) ([]*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.CatalogLinkedOnly {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"catalog_entry_id": nil})
	}

	query, args, err := selectBuilder.
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVehicles(rows)
}

// ListByIDs получает юниты по списку ID.
// Отсутствующие ID молча пропускаются, порядок результата не гарантируется.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Vehicle, error) {
	if len(ids) == 0 {
		return []*domain.Vehicle{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVehicles(rows)
}

// SetOverrideByCatalogEntries устанавливает ставку юнитам компании,
// привязанным к перечисленным записям каталога. Затрагивает только юниты
// указанной компании: ставки чужих юнитов на тех же записях каталога
// не меняются. Возвращает количество обновленных юнитов.
//
// Postgres считает в RowsAffected все строки, попавшие под WHERE,
// включая строки с уже установленным этим же значением, поэтому
// повторный вызов возвращает то же количество.
func (r *Repository) SetOverrideByCatalogEntries(ctx context.Context, companyID int64, catalogEntryIDs []int64, rate *float64) (int64, error) {
	if len(catalogEntryIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vehicles").
		Set("rate_override", rate).
		Where(squirrel.Eq{
			"company_id":       companyID,
			"catalog_entry_id": catalogEntryIDs,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SetOverrideByCatalogEntries - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SetOverrideByCatalogEntries - execute update: %v", ErrExecQuery, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SetOverrideByCatalogEntries - get rows affected: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// scanVehicles сканирует результаты запроса в слайс юнитов
func (r *Repository) scanVehicles(rows *sql.Rows) ([]*domain.Vehicle, error) {
	units := make([]*domain.Vehicle, 0)

	for rows.Next() {
		var unit domain.Vehicle
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&unit.ID,
			&unit.CompanyID,
			&unit.CatalogEntryID,
			&unit.LicensePlate,
			&unit.VIN,
			&unit.LocationID,
			&unit.Status,
			&unit.RateOverride,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanVehicles - scan row: %v", ErrScanRow, err)
		}

		unit.CreatedAt = createdAt.Time
		unit.UpdatedAt = updatedAt.Time

		units = append(units, &unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanVehicles - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}
