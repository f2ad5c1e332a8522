package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation interval
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationPickedUp  ReservationStatus = "picked_up"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ActiveReservationStatuses список статусов, блокирующих юнит на интервале.
// Используется при фильтрации пересекающихся броней.
var ActiveReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationPickedUp,
}

// Reservation is a claim on a unit for a time range. Reservations are owned
// and mutated by the booking subsystem; this service only reads them.
type Reservation struct {
	ID        int64
	VehicleID int64
	StartsAt  time.Time
	EndsAt    time.Time
	Status    ReservationStatus
}

// IsActive returns true if the reservation blocks overlapping intervals
func (r *Reservation) IsActive() bool {
	for _, s := range ActiveReservationStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// Overlaps reports whether the reservation conflicts with the [from, to) window
func (r *Reservation) Overlaps(from, to time.Time) bool {
	return IntervalsOverlap(r.StartsAt, r.EndsAt, from, to)
}

// IntervalsOverlap проверяет реальное пересечение двух интервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы пересекаются, только если:
// - начало первого СТРОГО раньше конца второго И
// - конец первого СТРОГО позже начала второго
//
// Используются строгие неравенства: граничные случаи пересечением не считаются.
//
// Примеры:
// - Бронь 04.06-10.06, окно 01.06-05.06 → ЕСТЬ пересечение (04.06-05.06)
// - Бронь 01.05-01.06, окно 01.06-05.06 → НЕТ пересечения (граничат)
// - Бронь 05.06-08.06, окно 01.06-05.06 → НЕТ пересечения (граничат)
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
