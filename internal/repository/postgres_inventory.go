package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresInventoryRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresInventoryRepository(db *pgxpool.Pool, lockTimeout time.Duration) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

func (p *PostgresInventoryRepository) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	return getShow(ctx, p.db, id)
}

func (p *PostgresInventoryRepository) GetBooking(ctx context.Context, id int) (*domain.Booking, error) {
	return getBooking(ctx, p.db, id)
}

// RunInShowTx locks the show's row with SELECT ... FOR UPDATE. lock_timeout is scoped to the
// transaction, so a holder that keeps the row longer than lockTimeout makes us fail fast with
// ErrResourceBusy instead of queueing indefinitely.
func (p *PostgresInventoryRepository) RunInShowTx(
	ctx context.Context,
	showID int,
	fn func(tx domain.InventoryTx) error) error {

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`,
			fmt.Sprintf("%dms", p.lockTimeout.Milliseconds()))
		if err != nil {
			return err
		}

		var id int
		err = tx.QueryRow(ctx, `SELECT id FROM shows WHERE id = $1 FOR UPDATE`, showID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrShowNotFound
			}
			return err
		}

		return fn(&postgresInventoryTx{tx: tx, showID: showID})
	})

	return busyOrErr(err)
}

type postgresInventoryTx struct {
	tx     pgx.Tx
	showID int
}

func (t *postgresInventoryTx) Show(ctx context.Context) (*domain.Show, error) {
	return getShow(ctx, t.tx, t.showID)
}

func (t *postgresInventoryTx) SeatsByNumbers(ctx context.Context, seatNumbers []string) ([]domain.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE show_id = $1 AND seat_number = ANY($2)
		ORDER BY id
	`

	rows, err := t.tx.Query(ctx, query, t.showID, seatNumbers)
	if err != nil {
		return nil, err
	}

	return scanSeats(rows)
}

func (t *postgresInventoryTx) BlockedSeatIDs(ctx context.Context, seatIDs []int) (map[int]bool, error) {
	query := `
		SELECT seat_id
		FROM blocked_seats
		WHERE show_id = $1 AND seat_id = ANY($2)
	`

	rows, err := t.tx.Query(ctx, query, t.showID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocked := make(map[int]bool)

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		blocked[id] = true
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return blocked, nil
}

func (t *postgresInventoryTx) setBooked(ctx context.Context, seats []domain.Seat, booked bool) error {
	query := `
		UPDATE seats
		SET is_booked = $1
		WHERE show_id = $2 AND id = ANY($3) AND is_booked <> $1
	`

	tag, err := t.tx.Exec(ctx, query, booked, t.showID, domain.SeatIDs(seats))
	if err != nil {
		return err
	}

	if tag.RowsAffected() != int64(len(seats)) {
		return domain.ErrSeatsUnavailable.WithSeats(domain.SeatNumbers(seats))
	}

	return nil
}

func (t *postgresInventoryTx) MarkBooked(ctx context.Context, seats []domain.Seat) error {
	return t.setBooked(ctx, seats, true)
}

func (t *postgresInventoryTx) MarkUnbooked(ctx context.Context, seats []domain.Seat) error {
	return t.setBooked(ctx, seats, false)
}

func (t *postgresInventoryTx) SaveAvailableSeats(ctx context.Context, show *domain.Show) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE shows SET available_seats = $1 WHERE id = $2`,
		show.AvailableSeats(), t.showID)

	return err
}

func (t *postgresInventoryTx) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (show_id, user_id, nooftickets, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := t.tx.QueryRow(
		ctx,
		query,
		t.showID,
		booking.UserID,
		booking.NoOfTickets,
		booking.Price,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return err
	}

	rows := make([][]any, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		rows = append(rows, []any{booking.ID, seat.ID})
	}

	_, err = t.tx.CopyFrom(
		ctx,
		pgx.Identifier{"booking_seats"},
		[]string{"booking_id", "seat_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isUniqueViolation(err, "booking_seats_seat_id_key") {
			return domain.ErrSeatsUnavailable.WithSeats(domain.SeatNumbers(booking.Seats))
		}
		return err
	}

	return nil
}

func (t *postgresInventoryTx) GetBooking(ctx context.Context, id int) (*domain.Booking, error) {
	booking, err := getBooking(ctx, t.tx, id)
	if err != nil {
		return nil, err
	}

	if booking.ShowID != t.showID {
		return nil, domain.ErrBookingNotFound
	}

	return booking, nil
}

func (t *postgresInventoryTx) DeleteBooking(ctx context.Context, id int) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1 AND show_id = $2`, id, t.showID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

func (t *postgresInventoryTx) BlockSeats(ctx context.Context, seats []domain.Seat) error {
	rows := make([][]any, 0, len(seats))
	for _, seat := range seats {
		rows = append(rows, []any{t.showID, seat.ID})
	}

	_, err := t.tx.CopyFrom(
		ctx,
		pgx.Identifier{"blocked_seats"},
		[]string{"show_id", "seat_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isUniqueViolation(err, "blocked_seats_seat_id_key") {
			return domain.ErrSeatsBlocked.WithSeats(domain.SeatNumbers(seats))
		}
		return err
	}

	return nil
}

func (t *postgresInventoryTx) UnblockSeats(ctx context.Context, seats []domain.Seat) ([]domain.Seat, error) {
	query := `
		DELETE FROM blocked_seats bs
		USING seats s
		WHERE bs.seat_id = s.id AND bs.show_id = $1 AND bs.seat_id = ANY($2)
		RETURNING s.id, s.show_id, s.seat_number, s.is_booked
	`

	rows, err := t.tx.Query(ctx, query, t.showID, domain.SeatIDs(seats))
	if err != nil {
		return nil, err
	}

	return scanSeats(rows)
}
