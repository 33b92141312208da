package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const MaxTicketsPerBooking = 10

type Booking struct {
	ID          int
	ShowID      int
	TheatreID   int
	UserID      int
	NoOfTickets int
	Seats       []Seat
	Price       decimal.Decimal
	CreatedAt   time.Time
}

type BookingRequest struct {
	ShowID      int
	TheatreID   int
	UserID      int
	SeatNumbers []string
}

type BlockResult struct {
	ShowID         int
	BlockedSeats   []string
	AlreadyBlocked []string
	AvailableSeats int
}

type UnblockResult struct {
	ShowID         int
	UnblockedSeats []string
	NotBlocked     []string
	AvailableSeats int
}

// InventoryTx is a unit of work over one show's seat inventory. It is only handed out while
// the show's exclusive lock is held, and every write commits or rolls back together.
type InventoryTx interface {
	// Show re-reads the locked show.
	Show(ctx context.Context) (*Show, error)
	SeatsByNumbers(ctx context.Context, seatNumbers []string) ([]Seat, error)
	BlockedSeatIDs(ctx context.Context, seatIDs []int) (map[int]bool, error)

	MarkBooked(ctx context.Context, seats []Seat) error
	MarkUnbooked(ctx context.Context, seats []Seat) error
	SaveAvailableSeats(ctx context.Context, show *Show) error

	CreateBooking(ctx context.Context, booking *Booking) error
	GetBooking(ctx context.Context, id int) (*Booking, error)
	DeleteBooking(ctx context.Context, id int) error

	BlockSeats(ctx context.Context, seats []Seat) error
	// UnblockSeats removes the blocks held on seats and returns the seats that had one.
	UnblockSeats(ctx context.Context, seats []Seat) ([]Seat, error)
}

type InventoryRepository interface {
	GetShow(ctx context.Context, id int) (*Show, error)
	GetBooking(ctx context.Context, id int) (*Booking, error)
	// RunInShowTx runs fn in a transaction holding the show's row lock. A lock that cannot be
	// acquired in time fails with ErrResourceBusy.
	RunInShowTx(ctx context.Context, showID int, fn func(tx InventoryTx) error) error
}

type BookingService interface {
	Book(ctx context.Context, req BookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, id int) (*Booking, error)
	Cancel(ctx context.Context, bookingID int) (*Booking, error)
	MarkBlocked(ctx context.Context, showID int, seatNumbers []string) (*BlockResult, error)
	RemoveBlocked(ctx context.Context, showID int, seatNumbers []string) (*UnblockResult, error)
}
