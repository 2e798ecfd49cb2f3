// Package calendar собирает занятость одной даты бизнеса из хранилищ.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/slots"
)

// ErrLoad не удалось прочитать занятость; ошибки чтения не превращаются в "всё свободно"
var ErrLoad = errors.New("calendar: failed to load occupancy")

type BookingReader interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

type ReservationReader interface {
	ListLiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Reservation, error)
}

type BlockReader interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.AdminBlock, error)
}

// Loader читает бронирования, живые резервы и блокировки на дату
type Loader struct {
	bookings     BookingReader
	reservations ReservationReader
	blocks       BlockReader
}

func NewLoader(bookings BookingReader, reservations ReservationReader, blocks BlockReader) *Loader {
	return &Loader{bookings: bookings, reservations: reservations, blocks: blocks}
}

// LoadDay собирает DayState. Блокировки читаются в UTC-окне ±1 день вокруг даты,
// отбор по локальной дате выполняет DayState.
func (l *Loader) LoadDay(ctx context.Context, date time.Time, loc *time.Location, hours *domain.BusinessHours, now time.Time) (*slots.DayState, error) {
	bookings, err := l.bookings.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: bookings: %w", ErrLoad, err)
	}

	reservations, err := l.reservations.ListLiveByDate(ctx, date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: reservations: %w", ErrLoad, err)
	}

	from, to := slots.SearchWindow(date)
	blocks, err := l.blocks.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: admin blocks: %w", ErrLoad, err)
	}

	return &slots.DayState{
		Date:         date,
		Location:     loc,
		Hours:        hours,
		Bookings:     bookings,
		Reservations: reservations,
		Blocks:       blocks,
	}, nil
}

// ResolveLocation таймзона бизнеса: из расписания, затем из конфигурации.
// Занятость всегда считается в ней, таймзона покупателя сюда не попадает.
func ResolveLocation(hours *domain.BusinessHours, fallback string) (*time.Location, error) {
	tz := ""
	if hours != nil {
		tz = hours.Timezone
	}
	if tz == "" {
		tz = fallback
	}
	if tz == "" {
		tz = domain.DefaultTimezone
	}
	return slots.LoadLocation(tz)
}
