package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a rejection so callers can decide whether a retry makes sense.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindNotFound
	KindInvariant
	KindBusy
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindInvariant:
		return "invariant_violation"
	case KindBusy:
		return "resource_busy"
	default:
		return "unknown"
	}
}

// Error is a typed rejection. Two errors match with errors.Is when their codes are equal,
// so a sentinel still matches after WithSeats attached the offending seat numbers.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Seats   []string
}

func (e *Error) Error() string {
	if len(e.Seats) == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Seats, ", "))
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// WithSeats returns a copy of e naming the seats that caused it.
func (e *Error) WithSeats(seats []string) *Error {
	c := *e
	c.Seats = append([]string(nil), seats...)
	return &c
}

// WithMessage returns a copy of e with a more specific message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	c := *e
	c.Message = fmt.Sprintf(format, args...)
	return &c
}

// KindOf reports the kind of err, or zero when err is not a domain rejection.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	if errors.Is(err, ErrRecordNotFound) {
		return KindNotFound
	}

	return 0
}

var (
	ErrRecordNotFound = errors.New("record not found")

	ErrShowNotFound = &Error{
		Kind: KindNotFound, Code: "show_not_found", Message: "show not found"}
	ErrTheatreNotFound = &Error{
		Kind: KindNotFound, Code: "theatre_not_found", Message: "theatre not found"}
	ErrMovieNotFound = &Error{
		Kind: KindNotFound, Code: "movie_not_found", Message: "movie not found"}
	ErrScreenNotFound = &Error{
		Kind: KindNotFound, Code: "screen_not_found", Message: "screen not found"}
	ErrBookingNotFound = &Error{
		Kind: KindNotFound, Code: "booking_not_found", Message: "booking not found"}

	ErrShowTheatreMismatch = &Error{
		Kind: KindValidation, Code: "show_theatre_mismatch", Message: "show does not belong to the given theatre"}
	ErrInvalidSeatSelection = &Error{
		Kind: KindValidation, Code: "invalid_seat_selection", Message: "seat selection must be non-empty and free of duplicates"}
	ErrCapacityExceeded = &Error{
		Kind: KindValidation, Code: "capacity_exceeded", Message: "seat capacity requires more rows than available"}
	ErrUnknownSeats = &Error{
		Kind: KindValidation, Code: "unknown_seats", Message: "seats do not exist in this show"}

	ErrSeatsBlocked = &Error{
		Kind: KindConflict, Code: "seats_blocked", Message: "selected seats are blocked"}
	ErrSeatsUnavailable = &Error{
		Kind: KindConflict, Code: "seats_unavailable", Message: "selected seats are not available"}
	ErrNothingToUnblock = &Error{
		Kind: KindConflict, Code: "nothing_to_unblock", Message: "none of the given seats are blocked"}
	ErrPaymentExists = &Error{
		Kind: KindConflict, Code: "payment_exists", Message: "payment already exists for this booking"}
	ErrDuplicateShow = &Error{
		Kind: KindConflict, Code: "duplicate_show", Message: "a show is already scheduled on this screen at this time"}
	ErrDuplicateScreen = &Error{
		Kind: KindConflict, Code: "duplicate_screen", Message: "screen number already exists in this theatre"}

	ErrInvariantViolation = &Error{
		Kind: KindInvariant, Code: "invariant_violation", Message: "available seat counter out of range"}

	ErrResourceBusy = &Error{
		Kind: KindBusy, Code: "resource_busy", Message: "show is busy, please retry"}
)
