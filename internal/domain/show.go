package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultTotalTickets = 100
	MaxShowNumber       = 5
)

var (
	DefaultTicketPrice = decimal.NewFromInt(150)
	MinTicketPrice     = decimal.NewFromInt(150)
	MaxTicketPrice     = decimal.NewFromInt(200)
)

// Show is one scheduled screening. Its available seat counter is unexported so every change
// goes through AdjustAvailable or Release, which keep it inside [0, TotalTickets].
type Show struct {
	ID           int
	ShowNumber   int
	MovieID      int
	TheatreID    int
	ScreenID     *int
	ShowTime     time.Time
	TicketPrice  decimal.Decimal
	TotalTickets int
	CreatedAt    time.Time

	availableSeats int
}

// LoadAvailableSeats sets the counter from persisted state.
func (s *Show) LoadAvailableSeats(n int) error {
	if n < 0 || n > s.TotalTickets {
		return ErrInvariantViolation.WithMessage(
			"show %d: stored available seats %d outside [0, %d]", s.ID, n, s.TotalTickets)
	}

	s.availableSeats = n
	return nil
}

func (s *Show) AvailableSeats() int {
	return s.availableSeats
}

// AdjustAvailable applies delta to the counter and fails without changing it when the
// result would leave [0, TotalTickets].
func (s *Show) AdjustAvailable(delta int) error {
	next := s.availableSeats + delta
	if next < 0 || next > s.TotalTickets {
		return ErrInvariantViolation.WithMessage(
			"show %d: adjusting available seats %d by %d leaves [0, %d]", s.ID, s.availableSeats, delta, s.TotalTickets)
	}

	s.availableSeats = next
	return nil
}

// Release returns n seats to the counter, capped at TotalTickets, and reports how many
// were actually added.
func (s *Show) Release(n int) int {
	if n <= 0 {
		return 0
	}

	next := min(s.availableSeats+n, s.TotalTickets)
	added := next - s.availableSeats
	s.availableSeats = next

	return added
}

func (s *Show) BelongsTo(theatreID int) bool {
	return s.TheatreID == theatreID
}

// Price returns the cost of the given number of tickets.
func (s *Show) Price(tickets int) decimal.Decimal {
	return s.TicketPrice.Mul(decimal.NewFromInt(int64(tickets)))
}

// Clone returns a copy that can be mutated without affecting s.
func (s *Show) Clone() *Show {
	c := *s
	if s.ScreenID != nil {
		id := *s.ScreenID
		c.ScreenID = &id
	}
	return &c
}

// ScheduleShow generates the seat inventory for a new show in a theatre of the given
// capacity. TotalTickets is trimmed to the number of seats actually generated and the
// counter starts full.
func ScheduleShow(show *Show, capacity int) ([]Seat, error) {
	seats, err := GenerateSeats(show, capacity)
	if err != nil {
		return nil, err
	}

	show.TotalTickets = len(seats)
	show.availableSeats = len(seats)

	return seats, nil
}
