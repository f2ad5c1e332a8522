package catalogentry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	"github.com/m04kA/CRP-FleetService/pkg/dbmetrics"
	"github.com/m04kA/CRP-FleetService/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"specification_id",
	"template_rate",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями глобального каталога
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// EnsureForSpecifications создает записи каталога для всех спецификаций,
// у которых записи еще нет. Записи создаются без шаблонной ставки
// (template_rate = NULL). Возвращает количество созданных записей.
//
// Повторный вызов для тех же спецификаций ничего не создает и возвращает 0:
// ON CONFLICT DO NOTHING не учитывает существующие строки в RowsAffected.
func (r *Repository) EnsureForSpecifications(ctx context.Context, specificationIDs []int64) (int64, error) {
	if len(specificationIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("catalog_entries").
		Columns("specification_id")
	for _, id := range specificationIDs {
		insertBuilder = insertBuilder.Values(id)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (specification_id) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: EnsureForSpecifications - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: EnsureForSpecifications - execute insert: %v", ErrExecQuery, err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: EnsureForSpecifications - get rows affected: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает запись каталога по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CatalogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("catalog_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEntry(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetBySpecificationID получает запись каталога по ID спецификации
func (r *Repository) GetBySpecificationID(ctx context.Context, specificationID int64) (*domain.CatalogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("catalog_entries").
		Where(squirrel.Eq{"specification_id": specificationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpecificationID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEntry(executor.QueryRowContext(ctx, query, args...), "GetBySpecificationID")
}

// ListByIDs получает записи каталога по списку ID.
// Отсутствующие ID молча пропускаются, порядок результата не гарантируется.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.CatalogEntry, error) {
	if len(ids) == 0 {
		return []*domain.CatalogEntry{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("catalog_entries").
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

	return r.scanEntries(rows)
}

// ListBySpecificationIDs получает записи каталога по списку ID спецификаций
func (r *Repository) ListBySpecificationIDs(ctx context.Context, specificationIDs []int64) ([]*domain.CatalogEntry, error) {
	if len(specificationIDs) == 0 {
		return []*domain.CatalogEntry{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("catalog_entries").
		Where(squirrel.Eq{"specification_id": specificationIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpecificationIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpecificationIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// SetTemplateRate устанавливает шаблонную ставку записи каталога.
// rate = nil сбрасывает ставку в NULL (запись остается без шаблонной цены).
func (r *Repository) SetTemplateRate(ctx context.Context, specificationID int64, rate *float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("catalog_entries").
		Set("template_rate", rate).
		Where(squirrel.Eq{"specification_id": specificationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetTemplateRate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetTemplateRate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetTemplateRate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// scanEntry сканирует одну строку результата в запись каталога
func (r *Repository) scanEntry(row *sql.Row, method string) (*domain.CatalogEntry, error) {
	var entry domain.CatalogEntry
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.SpecificationID,
		&entry.TemplateRate,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan catalog entry: %v", ErrScanRow, method, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

// scanEntries сканирует результаты запроса в слайс записей каталога
func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.CatalogEntry, error) {
	entries := make([]*domain.CatalogEntry, 0)

	for rows.Next() {
		var entry domain.CatalogEntry
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.SpecificationID,
			&entry.TemplateRate,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
