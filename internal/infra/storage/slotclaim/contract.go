package slotclaim

import (
	"strconv"

	"github.com/yaduk2001/selling-sub001/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

// OwnerKind кто держит захват: резерв или бронирование
type OwnerKind string

const (
	OwnerReservation OwnerKind = "reservation"
	OwnerBooking     OwnerKind = "booking"
)

// BookingOwnerID идентификатор бронирования как владельца захватов
func BookingOwnerID(id int64) string {
	return strconv.FormatInt(id, 10)
}
