package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	"github.com/m04kA/CRP-FleetService/pkg/dbmetrics"
	"github.com/m04kA/CRP-FleetService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения броней автопарка.
// Таблица reservations принадлежит сервису бронирований: здесь только
// выборки интервалов, никаких мутаций.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveForVehiclesInWindow получает активные брони перечисленных юнитов,
// пересекающиеся с окном [from, to).
//
// Пересечение строгое: starts_at < to AND ends_at > from.
// Брони, касающиеся окна только границей, не учитываются:
// - бронь до 10:00 не блокирует окно с 10:00
// - бронь с 18:00 не блокирует окно до 18:00
func (r *Repository) ListActiveForVehiclesInWindow(ctx context.Context, vehicleIDs []int64, from, to time.Time) ([]*domain.Reservation, error) {
	if len(vehicleIDs) == 0 {
		return []*domain.Reservation{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveReservationStatuses))
	for i, s := range domain.ActiveReservationStatuses {
		activeStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"vehicle_id",
		"starts_at",
		"ends_at",
		"status",
	).
		From("reservations").
		Where(squirrel.Eq{"vehicle_id": vehicleIDs}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("vehicle_id ASC, starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForVehiclesInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForVehiclesInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// scanReservations сканирует результаты запроса в слайс броней
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation

		err := rows.Scan(
			&res.ID,
			&res.VehicleID,
			&res.StartsAt,
			&res.EndsAt,
			&res.Status,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
