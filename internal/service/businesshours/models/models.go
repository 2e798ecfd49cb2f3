package models

import (
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// Break перерыв в формате API
type Break struct {
	Start string `json:"start"` // "12:00"
	End   string `json:"end"`   // "13:00"
}

// UpdateHoursRequest запрос на изменение расписания дня недели
type UpdateHoursRequest struct {
	IsWorkingDay bool    `json:"isWorkingDay"`
	StartTime    string  `json:"startTime,omitempty"`
	EndTime      string  `json:"endTime,omitempty"`
	Breaks       []Break `json:"breaks,omitempty"`
	Timezone     string  `json:"timezone,omitempty"`
}

// ToDomain конвертирует запрос в domain модель. Форматы времени проверяются Validate домена.
func (r *UpdateHoursRequest) ToDomain(weekday time.Weekday) *domain.BusinessHours {
	hours := &domain.BusinessHours{
		Weekday:      weekday,
		IsWorkingDay: r.IsWorkingDay,
		Timezone:     r.Timezone,
		Breaks:       make([]domain.Break, 0, len(r.Breaks)),
	}
	if r.IsWorkingDay {
		hours.StartTime = types.TimeString(r.StartTime)
		hours.EndTime = types.TimeString(r.EndTime)
		for _, b := range r.Breaks {
			hours.Breaks = append(hours.Breaks, domain.Break{Start: types.TimeString(b.Start), End: types.TimeString(b.End)})
		}
	}
	return hours
}

// HoursResponse расписание дня недели
type HoursResponse struct {
	Weekday      int       `json:"weekday"` // 0 = воскресенье
	IsWorkingDay bool      `json:"isWorkingDay"`
	StartTime    string    `json:"startTime,omitempty"`
	EndTime      string    `json:"endTime,omitempty"`
	Breaks       []Break   `json:"breaks"`
	Timezone     string    `json:"timezone,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HoursListResponse недельное расписание
type HoursListResponse struct {
	Days []HoursResponse `json:"days"`
}

// FromDomainHours конвертирует domain модель в DTO
func FromDomainHours(h *domain.BusinessHours) *HoursResponse {
	if h == nil {
		return nil
	}
	resp := &HoursResponse{
		Weekday:      int(h.Weekday),
		IsWorkingDay: h.IsWorkingDay,
		StartTime:    h.StartTime.String(),
		EndTime:      h.EndTime.String(),
		Breaks:       make([]Break, 0, len(h.Breaks)),
		Timezone:     h.Timezone,
		UpdatedAt:    h.UpdatedAt,
	}
	for _, b := range h.Breaks {
		resp.Breaks = append(resp.Breaks, Break{Start: b.Start.String(), End: b.End.String()})
	}
	return resp
}

// FromDomainHoursList конвертирует список domain моделей в DTO
func FromDomainHoursList(list []*domain.BusinessHours) *HoursListResponse {
	resp := &HoursListResponse{Days: make([]HoursResponse, 0, len(list))}
	for _, h := range list {
		resp.Days = append(resp.Days, *FromDomainHours(h))
	}
	return resp
}
