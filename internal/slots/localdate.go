package slots

import (
	"fmt"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// LoadLocation резолвит IANA-таймзону; ошибка оборачивает domain.ErrConfiguration
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return nil, fmt.Errorf("%w: empty timezone", domain.ErrConfiguration)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q: %v", domain.ErrConfiguration, timezone, err)
	}
	return loc, nil
}

// LocalCalendarDateOf возвращает календарную дату ("YYYY-MM-DD") момента ts в таймзоне бизнеса.
// Единственная точка, где UTC-метки административных блокировок сопоставляются с датой бизнеса.
func LocalCalendarDateOf(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format(domain.DateFormat)
}

// ParseDate парсит "YYYY-MM-DD" в полночь UTC этой даты (представление даты без таймзоны)
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// SearchWindow UTC-окно [date-1d, date+2d), гарантированно покрывающее локальные сутки date
// в любой таймзоне (смещения лежат в пределах ±14 часов).
func SearchWindow(date time.Time) (from, to time.Time) {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -1), day.AddDate(0, 0, 2)
}

// LocalDayBounds начало текущих и следующих локальных суток date в loc
func LocalDayBounds(date time.Time, loc *time.Location) (start, end time.Time) {
	y, m, d := date.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// BlockIntervalOnDate переводит UTC-блокировку в занятый интервал локальной даты date.
// Блокировка обрезается по границам локальных суток; away-блокировка занимает сутки целиком.
// Второй результат false, если блокировка не задевает эту дату.
func BlockIntervalOnDate(block *domain.AdminBlock, date time.Time, loc *time.Location) (domain.OccupiedInterval, bool) {
	// Принадлежность дате решается по локальным календарным датам концов блокировки;
	// конец полуоткрытый, поэтому берётся последний момент перед EndAt.
	day := date.Format(domain.DateFormat)
	first := LocalCalendarDateOf(block.StartAt, loc)
	last := LocalCalendarDateOf(block.EndAt.Add(-time.Nanosecond), loc)
	if !block.StartAt.Before(block.EndAt) || day < first || day > last {
		return domain.OccupiedInterval{}, false
	}

	dayStart, dayEnd := LocalDayBounds(date, loc)

	if block.Away {
		return domain.OccupiedInterval{StartMinute: 0, DurationMinutes: types.MinutesPerDay, Source: domain.SourceAdminBlock}, true
	}

	startMinute := 0
	if block.StartAt.After(dayStart) {
		local := block.StartAt.In(loc)
		startMinute = local.Hour()*60 + local.Minute()
	}

	endMinute := types.MinutesPerDay
	if block.EndAt.Before(dayEnd) {
		local := block.EndAt.In(loc)
		endMinute = local.Hour()*60 + local.Minute()
		if local.Second() > 0 || local.Nanosecond() > 0 {
			endMinute++
		}
	}

	if endMinute <= startMinute {
		return domain.OccupiedInterval{}, false
	}

	return domain.OccupiedInterval{
		StartMinute:     startMinute,
		DurationMinutes: endMinute - startMinute,
		Source:          domain.SourceAdminBlock,
	}, true
}
