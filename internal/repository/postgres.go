package repository

import (
	"context"
	"errors"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraint
}

// busyOrErr turns a lock timeout into ErrResourceBusy and passes other errors through.
func busyOrErr(err error) error {
	pgErr, ok := pgError(err)
	if ok && pgErr.Code == pgerrcode.LockNotAvailable {
		return domain.ErrResourceBusy
	}
	return err
}

const seatColumns = `id, show_id, seat_number, is_booked`

func scanSeats(rows pgx.Rows) ([]domain.Seat, error) {
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(
			&seat.ID,
			&seat.ShowID,
			&seat.SeatNumber,
			&seat.IsBooked,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

const showColumns = `
	id,
	show_number,
	movie_id,
	theatre_id,
	screen_id,
	show_time,
	ticket_price,
	total_tickets,
	available_seats,
	created_at`

func scanShow(row pgx.Row) (*domain.Show, error) {
	var (
		show      domain.Show
		available int
	)

	err := row.Scan(
		&show.ID,
		&show.ShowNumber,
		&show.MovieID,
		&show.TheatreID,
		&show.ScreenID,
		&show.ShowTime,
		&show.TicketPrice,
		&show.TotalTickets,
		&available,
		&show.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShowNotFound
		}
		return nil, err
	}

	show.ShowTime = show.ShowTime.UTC()

	err = show.LoadAvailableSeats(available)
	if err != nil {
		return nil, err
	}

	return &show, nil
}

func getShow(ctx context.Context, q querier, id int) (*domain.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows WHERE id = $1`
	return scanShow(q.QueryRow(ctx, query, id))
}

func getBooking(ctx context.Context, q querier, id int) (*domain.Booking, error) {
	query := `
		SELECT
			b.id,
			b.show_id,
			s.theatre_id,
			b.user_id,
			b.nooftickets,
			b.price,
			b.created_at
		FROM bookings b
		JOIN shows s
			ON s.id = b.show_id
		WHERE b.id = $1
	`

	var booking domain.Booking

	err := q.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ShowID,
		&booking.TheatreID,
		&booking.UserID,
		&booking.NoOfTickets,
		&booking.Price,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	query = `
		SELECT se.id, se.show_id, se.seat_number, se.is_booked
		FROM booking_seats bs
		JOIN seats se
			ON se.id = bs.seat_id
		WHERE bs.booking_id = $1
		ORDER BY se.id
	`

	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}

	booking.Seats, err = scanSeats(rows)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}
