package availability

import (
	"errors"
	"fmt"
)

// Kind identifica o motivo de uma recusa do motor de disponibilidade.
type Kind string

const (
	KindInvalidDateFormat      Kind = "invalid_date_format"
	KindInvalidTimeFormat      Kind = "invalid_time_format"
	KindInvalidPartySize       Kind = "invalid_party_size"
	KindClosedOnThisDay        Kind = "closed_on_this_day"
	KindShiftInactiveOrUnknown Kind = "shift_inactive_or_unknown"
	KindOutsideShiftHours      Kind = "outside_shift_hours"
	KindPastBookingCutoff      Kind = "past_booking_cutoff"
	KindShiftCapacityExceeded  Kind = "shift_capacity_exceeded"
	KindPartySizeExceedsLimit  Kind = "party_size_exceeds_limit"
	KindNoTablesAvailable      Kind = "no_tables_available"
	KindInsufficientCapacity   Kind = "insufficient_capacity"
	KindNoAvailability         Kind = "no_availability"
)

// Error carrega a mensagem pronta para exibição ao usuário.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func fail(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf devolve o Kind de um erro do motor, ou "" para qualquer outro erro.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// MessageOf devolve a mensagem amigável de um erro do motor.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
