package repository

import (
	"context"
	"errors"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			booking_id,
			user_id,
			payment_method,
			amount,
			status,
			transaction_id
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		payment.BookingID,
		payment.UserID,
		payment.Method,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		pgErr, ok := pgError(err)
		switch {
		case ok && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == "payments_booking_id_key":
			return domain.ErrPaymentExists
		case ok && pgErr.Code == pgerrcode.ForeignKeyViolation:
			return domain.ErrBookingNotFound
		default:
			return err
		}
	}

	return nil
}

func (p *PostgresPaymentRepository) GetByBookingID(ctx context.Context, bookingID int) (*domain.Payment, error) {
	query := `
		SELECT id, booking_id, user_id, payment_method, amount, status, transaction_id, created_at
		FROM payments
		WHERE booking_id = $1
	`

	var payment domain.Payment

	err := p.db.QueryRow(ctx, query, bookingID).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.UserID,
		&payment.Method,
		&payment.Amount,
		&payment.Status,
		&payment.TransactionID,
		&payment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &payment, nil
}
