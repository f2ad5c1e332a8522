package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		resStart time.Time
		resEnd   time.Time
		winStart time.Time
		winEnd   time.Time
		want     bool
	}{
		{
			name:     "reservation crosses window end",
			resStart: day(4), resEnd: day(10),
			winStart: day(1), winEnd: day(5),
			want: true,
		},
		{
			name:     "reservation ends exactly at window start",
			resStart: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), resEnd: day(1),
			winStart: day(1), winEnd: day(5),
			want: false,
		},
		{
			name:     "reservation starts exactly at window end",
			resStart: day(5), resEnd: day(8),
			winStart: day(1), winEnd: day(5),
			want: false,
		},
		{
			name:     "reservation inside window",
			resStart: day(2), resEnd: day(3),
			winStart: day(1), winEnd: day(5),
			want: true,
		},
		{
			name:     "window inside reservation",
			resStart: day(1), resEnd: day(10),
			winStart: day(3), winEnd: day(4),
			want: true,
		},
		{
			name:     "disjoint before",
			resStart: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), resEnd: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
			winStart: day(1), winEnd: day(5),
			want: false,
		},
		{
			name:     "disjoint after",
			resStart: day(20), resEnd: day(25),
			winStart: day(1), winEnd: day(5),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntervalsOverlap(tt.resStart, tt.resEnd, tt.winStart, tt.winEnd)
			assert.Equal(t, tt.want, got)

			res := &Reservation{StartsAt: tt.resStart, EndsAt: tt.resEnd, Status: ReservationConfirmed}
			assert.Equal(t, tt.want, res.Overlaps(tt.winStart, tt.winEnd))
		})
	}
}

func TestReservationIsActive(t *testing.T) {
	tests := []struct {
		status ReservationStatus
		active bool
	}{
		{ReservationPending, true},
		{ReservationConfirmed, true},
		{ReservationPickedUp, true},
		{ReservationCompleted, false},
		{ReservationCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Reservation{Status: tt.status}
			assert.Equal(t, tt.active, r.IsActive())
		})
	}
}
