package specification

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

var specificationColumns = []string{
	"id",
	"make",
	"model",
	"make_norm",
	"model_norm",
	"model_year",
	"category",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со спецификациями каталога
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория спецификаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую спецификацию.
// Канонические формы make_norm/model_norm должны быть заполнены заранее
// через spec.Normalize(). При нарушении уникальности по
// (make_norm, model_norm, model_year) возвращает ErrSpecificationExists.
func (r *Repository) Create(ctx context.Context, spec *domain.Specification) (*domain.Specification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specifications").
		Columns(
			"make",
			"model",
			"make_norm",
			"model_norm",
			"model_year",
			"category",
		).
		Values(
			spec.Make,
			spec.Model,
			spec.MakeNorm,
			spec.ModelNorm,
			spec.ModelYear,
			spec.Category,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&spec.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSpecificationExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	spec.CreatedAt = createdAt.Time
	spec.UpdatedAt = updatedAt.Time

	return spec, nil
}

// GetOrCreate возвращает спецификацию по каноническому ключу, создавая её
// при отсутствии. Вставка идет через ON CONFLICT DO NOTHING, поэтому при
// конкурентном создании одной и той же спецификации оба вызова вернут одну
// строку. Второе возвращаемое значение - true, если строка была создана
// этим вызовом.
func (r *Repository) GetOrCreate(ctx context.Context, spec *domain.Specification) (*domain.Specification, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specifications").
		Columns(
			"make",
			"model",
			"make_norm",
			"model_norm",
			"model_year",
			"category",
		).
		Values(
			spec.Make,
			spec.Model,
			spec.MakeNorm,
			spec.ModelNorm,
			spec.ModelYear,
			spec.Category,
		).
		Suffix("ON CONFLICT (make_norm, model_norm, model_year) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, false, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&spec.ID,
		&createdAt,
		&updatedAt,
	)

	if err == nil {
		spec.CreatedAt = createdAt.Time
		spec.UpdatedAt = updatedAt.Time
		return spec, true, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("%w: GetOrCreate - execute insert: %v", ErrExecQuery, err)
	}

	// Конфликт: строка уже существует, читаем её по каноническому ключу
	existing, err := r.GetByNormalizedKey(ctx, spec.MakeNorm, spec.ModelNorm, spec.ModelYear)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

// GetByID получает спецификацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Specification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(specificationColumns...).
		From("specifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSpecification(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByNormalizedKey получает спецификацию по каноническому ключу
// (make_norm, model_norm, model_year)
func (r *Repository) GetByNormalizedKey(ctx context.Context, makeNorm, modelNorm string, modelYear int) (*domain.Specification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(specificationColumns...).
		From("specifications").
		Where(squirrel.Eq{
			"make_norm":  makeNorm,
			"model_norm": modelNorm,
			"model_year": modelYear,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByNormalizedKey - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSpecification(executor.QueryRowContext(ctx, query, args...), "GetByNormalizedKey")
}

// FindBySelector получает спецификации, удовлетворяющие всем заданным
// критериям селектора. Пустой селектор возвращает все спецификации.
// Текстовые критерии сравниваются в нормализованном виде.
func (r *Repository) FindBySelector(ctx context.Context, selector domain.SpecSelector) ([]*domain.Specification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(specificationColumns...).
		From("specifications")

	if selector.Make != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"make_norm": selector.MakeNorm()})
	}
	if selector.Model != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"model_norm": selector.ModelNorm()})
	}
	if selector.ModelYear != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"model_year": *selector.ModelYear})
	}
	if selector.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *selector.Category})
	}

	query, args, err := selectBuilder.
		OrderBy("make_norm ASC, model_norm ASC, model_year ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBySelector - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBySelector - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSpecifications(rows)
}

// ListByIDs получает спецификации по списку ID.
// Отсутствующие ID молча пропускаются, порядок результата не гарантируется.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Specification, error) {
	if len(ids) == 0 {
		return []*domain.Specification{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(specificationColumns...).
		From("specifications").
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

	return r.scanSpecifications(rows)
}

// scanSpecification сканирует одну строку результата в спецификацию
func (r *Repository) scanSpecification(row *sql.Row, method string) (*domain.Specification, error) {
	var spec domain.Specification
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&spec.ID,
		&spec.Make,
		&spec.Model,
		&spec.MakeNorm,
		&spec.ModelNorm,
		&spec.ModelYear,
		&spec.Category,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpecificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan specification: %v", ErrScanRow, method, err)
	}

	spec.CreatedAt = createdAt.Time
	spec.UpdatedAt = updatedAt.Time

	return &spec, nil
}

// scanSpecifications сканирует результаты запроса в слайс спецификаций
func (r *Repository) scanSpecifications(rows *sql.Rows) ([]*domain.Specification, error) {
	specs := make([]*domain.Specification, 0)

	for rows.Next() {
		var spec domain.Specification
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&spec.ID,
			&spec.Make,
			&spec.Model,
			&spec.MakeNorm,
			&spec.ModelNorm,
			&spec.ModelYear,
			&spec.Category,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSpecifications - scan row: %v", ErrScanRow, err)
		}

		spec.CreatedAt = createdAt.Time
		spec.UpdatedAt = updatedAt.Time

		specs = append(specs, &spec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSpecifications - rows error: %v", ErrScanRow, err)
	}

	return specs, nil
}
