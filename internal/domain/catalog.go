package domain

import (
	"context"
	"time"
)

type Theatre struct {
	ID        int
	Name      string
	Location  string
	Capacity  int
	CreatedAt time.Time
}

type Screen struct {
	ID           int
	TheatreID    int
	ScreenNumber int
}

type Movie struct {
	ID          int
	Title       string
	Language    string
	Genre       string
	Certificate string
	CreatedAt   time.Time
}

type CatalogRepository interface {
	CreateTheatre(ctx context.Context, theatre *Theatre) error
	GetTheatre(ctx context.Context, id int) (*Theatre, error)
	CreateScreen(ctx context.Context, screen *Screen) error
	GetScreen(ctx context.Context, id int) (*Screen, error)
	CreateMovie(ctx context.Context, movie *Movie) error
	GetMovie(ctx context.Context, id int) (*Movie, error)
	// CreateShow stores the show together with its generated seats.
	CreateShow(ctx context.Context, show *Show, seats []Seat) error
	GetShow(ctx context.Context, id int) (*Show, error)
}
