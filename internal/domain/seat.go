package domain

import (
	"context"
	"fmt"
	"time"
)

const (
	SeatsPerRow = 10
	MaxSeatRows = 26
)

type Seat struct {
	ID         int
	ShowID     int
	SeatNumber string
	IsBooked   bool
}

type BlockedSeat struct {
	ID         int
	ShowID     int
	SeatID     int
	SeatNumber string
	CreatedAt  time.Time
}

// GenerateSeats lays out min(capacity, show.TotalTickets) seats in lettered rows of
// SeatsPerRow: A1..A10, B1..B10 and so on.
func GenerateSeats(show *Show, capacity int) ([]Seat, error) {
	count := min(capacity, show.TotalTickets)
	if count <= 0 {
		return nil, ErrCapacityExceeded.WithMessage("show %d has no seats to generate", show.ID)
	}

	rows := (count + SeatsPerRow - 1) / SeatsPerRow
	if rows > MaxSeatRows {
		return nil, ErrCapacityExceeded.WithMessage(
			"%d seats need %d rows, at most %d are supported", count, rows, MaxSeatRows)
	}

	seats := make([]Seat, 0, count)
	for i := range count {
		seats = append(seats, Seat{
			ShowID:     show.ID,
			SeatNumber: fmt.Sprintf("%c%d", 'A'+rune(i/SeatsPerRow), i%SeatsPerRow+1),
		})
	}

	return seats, nil
}

// ValidateSeatSelection rejects an empty list or one naming the same seat twice.
func ValidateSeatSelection(seatNumbers []string) error {
	if len(seatNumbers) == 0 {
		return ErrInvalidSeatSelection
	}

	seen := make(map[string]struct{}, len(seatNumbers))
	var duplicates []string

	for _, n := range seatNumbers {
		if _, ok := seen[n]; ok {
			duplicates = append(duplicates, n)
			continue
		}
		seen[n] = struct{}{}
	}

	if len(duplicates) > 0 {
		return ErrInvalidSeatSelection.WithSeats(duplicates)
	}

	return nil
}

// FindAvailable returns the seats among the requested numbers that are neither booked nor
// blocked. Unknown numbers are skipped, so callers compare the result's length with the
// request's to detect a partial match.
func FindAvailable(seats []Seat, blocked map[int]bool, seatNumbers []string) []Seat {
	byNumber := indexSeats(seats)

	available := make([]Seat, 0, len(seatNumbers))
	for _, n := range seatNumbers {
		seat, ok := byNumber[n]
		if !ok || seat.IsBooked || blocked[seat.ID] {
			continue
		}
		available = append(available, seat)
	}

	return available
}

// MissingSeats returns the requested numbers that have no seat in seats, in request order.
func MissingSeats(seats []Seat, seatNumbers []string) []string {
	byNumber := indexSeats(seats)

	var missing []string
	for _, n := range seatNumbers {
		if _, ok := byNumber[n]; !ok {
			missing = append(missing, n)
		}
	}

	return missing
}

// Unavailable returns the requested numbers missing from the available subset.
func Unavailable(available []Seat, seatNumbers []string) []string {
	return MissingSeats(available, seatNumbers)
}

func SeatNumbers(seats []Seat) []string {
	numbers := make([]string, len(seats))
	for i, s := range seats {
		numbers[i] = s.SeatNumber
	}
	return numbers
}

func SeatIDs(seats []Seat) []int {
	ids := make([]int, len(seats))
	for i, s := range seats {
		ids[i] = s.ID
	}
	return ids
}

func indexSeats(seats []Seat) map[string]Seat {
	byNumber := make(map[string]Seat, len(seats))
	for _, s := range seats {
		byNumber[s.SeatNumber] = s
	}
	return byNumber
}

type SeatRepository interface {
	// GetSeatsByShow lists a show's booked seats, or its bookable seats (unbooked and not
	// blocked) when booked is false, ordered by seat id.
	GetSeatsByShow(ctx context.Context, showID int, booked bool) ([]Seat, error)
}
