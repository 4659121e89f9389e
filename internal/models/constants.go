package models

import "strings"

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// BookingState selects a subset of bookings in list queries.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

var bookingStates = map[BookingState]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseBookingState resolves a state name case-insensitively. An empty name means ALL.
func ParseBookingState(raw string) (BookingState, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return StateAll, true
	}
	state := BookingState(raw)
	_, ok := bookingStates[state]
	return state, ok
}

// Decided reports whether the status is terminal.
func (s BookingStatus) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

const (
	// DefaultUserHeader заголовок с идентификатором действующего пользователя
	DefaultUserHeader = "X-Sharer-User-Id"

	// DefaultRateLimitBurst размер пачки запросов для лимитера по умолчанию
	DefaultRateLimitBurst = 5

	// DefaultWriteQuotaWindow окно квоты на изменяющие запросы в секундах
	DefaultWriteQuotaWindow = 60

	// ExportSheetName имя листа в выгрузке бронирований
	ExportSheetName = "Bookings"
)
