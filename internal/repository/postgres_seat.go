package repository

import (
	"context"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetSeatsByShow(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shows WHERE id = $1)`, showID).Scan(&exists)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrShowNotFound
	}

	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE show_id = $1 AND is_booked
		ORDER BY id
	`

	if !booked {
		query = `
			SELECT ` + seatColumns + `
			FROM seats se
			WHERE se.show_id = $1
				AND NOT se.is_booked
				AND NOT EXISTS (
					SELECT 1 FROM blocked_seats bs WHERE bs.seat_id = se.id
				)
			ORDER BY se.id
		`
	}

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}

	return scanSeats(rows)
}
