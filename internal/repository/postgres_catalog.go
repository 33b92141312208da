package repository

import (
	"context"
	"errors"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

func (p *PostgresCatalogRepository) CreateTheatre(ctx context.Context, theatre *domain.Theatre) error {
	query := `
		INSERT INTO theatres (name, location, capacity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		theatre.Name,
		theatre.Location,
		theatre.Capacity,
	).Scan(&theatre.ID, &theatre.CreatedAt)
}

func (p *PostgresCatalogRepository) GetTheatre(ctx context.Context, id int) (*domain.Theatre, error) {
	query := `
		SELECT id, name, location, capacity, created_at
		FROM theatres
		WHERE id = $1
	`

	var theatre domain.Theatre

	err := p.db.QueryRow(ctx, query, id).Scan(
		&theatre.ID,
		&theatre.Name,
		&theatre.Location,
		&theatre.Capacity,
		&theatre.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTheatreNotFound
		}
		return nil, err
	}

	return &theatre, nil
}

func (p *PostgresCatalogRepository) CreateScreen(ctx context.Context, screen *domain.Screen) error {
	query := `
		INSERT INTO screens (theatre_id, screen_number)
		VALUES ($1, $2)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, screen.TheatreID, screen.ScreenNumber).Scan(&screen.ID)
	if err != nil {
		if isUniqueViolation(err, "screens_theatre_number_key") {
			return domain.ErrDuplicateScreen
		}
		if pgErr, ok := pgError(err); ok && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrTheatreNotFound
		}
		return err
	}

	return nil
}

func (p *PostgresCatalogRepository) GetScreen(ctx context.Context, id int) (*domain.Screen, error) {
	var screen domain.Screen

	err := p.db.QueryRow(ctx,
		`SELECT id, theatre_id, screen_number FROM screens WHERE id = $1`, id,
	).Scan(&screen.ID, &screen.TheatreID, &screen.ScreenNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScreenNotFound
		}
		return nil, err
	}

	return &screen, nil
}

func (p *PostgresCatalogRepository) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, language, genre, certificate)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Language,
		movie.Genre,
		movie.Certificate,
	).Scan(&movie.ID, &movie.CreatedAt)
}

func (p *PostgresCatalogRepository) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, language, genre, certificate, created_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Language,
		&movie.Genre,
		&movie.Certificate,
		&movie.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}

	return &movie, nil
}

func (p *PostgresCatalogRepository) CreateShow(ctx context.Context, show *domain.Show, seats []domain.Seat) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO shows (
				show_number,
				movie_id,
				theatre_id,
				screen_id,
				show_time,
				ticket_price,
				total_tickets,
				available_seats
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			show.ShowNumber,
			show.MovieID,
			show.TheatreID,
			show.ScreenID,
			show.ShowTime,
			show.TicketPrice,
			show.TotalTickets,
			show.AvailableSeats(),
		).Scan(&show.ID, &show.CreatedAt)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(seats))
		for i := range seats {
			seats[i].ShowID = show.ID
			rows = append(rows, []any{show.ID, seats[i].SeatNumber, false})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats"},
			[]string{"show_id", "seat_number", "is_booked"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	pgErr, ok := pgError(err)
	if !ok {
		return err
	}

	switch {
	case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == "shows_schedule_key":
		return domain.ErrDuplicateShow
	case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == "shows_movie_id_fkey":
		return domain.ErrMovieNotFound
	case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == "shows_theatre_id_fkey":
		return domain.ErrTheatreNotFound
	case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == "shows_screen_id_fkey":
		return domain.ErrScreenNotFound
	default:
		return err
	}
}

func (p *PostgresCatalogRepository) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	return getShow(ctx, p.db, id)
}
