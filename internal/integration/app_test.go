package integration_test

import (
	"log/slog"
	"os"

	"github.com/HarishKumarG/BMS-project/internal/app"
	"github.com/HarishKumarG/BMS-project/internal/auth"
	"github.com/HarishKumarG/BMS-project/internal/booking"
	"github.com/HarishKumarG/BMS-project/internal/cache"
	"github.com/HarishKumarG/BMS-project/internal/lock"
	"github.com/HarishKumarG/BMS-project/internal/mailer"
	"github.com/HarishKumarG/BMS-project/internal/mocks"
	"github.com/HarishKumarG/BMS-project/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	Tokens      *auth.TokenVerifier
	Mailer      *mailer.MockMailer
	Publisher   *mocks.MockPublisher
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mailer := mailer.NewMockMailer()
	publisher := new(mocks.MockPublisher)
	tokens := auth.NewTokenVerifier(cfg.JWT.Secret)

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	seatCache := cache.NewSeatCache(redisClient, cfg.Booking.SeatCacheTTL)
	inventory := repository.NewPostgresInventoryRepository(db, cfg.Booking.LockTimeout)

	engine := booking.NewEngine(inventory, lock.NewKeyedMutex(), seatCache, logger, booking.Config{
		LockTimeout:   cfg.Booking.LockTimeout,
		CommitTimeout: cfg.Booking.CommitTimeout,
	})

	application, err := app.NewApp(cfg, logger, app.Dependencies{
		Tokens:      tokens,
		Bookings:    engine,
		CatalogRepo: repository.NewPostgresCatalogRepository(db),
		SeatRepo:    repository.NewPostgresSeatRepository(db),
		PaymentRepo: repository.NewPostgresPaymentRepository(db),
		SeatCache:   seatCache,
		Publisher:   publisher,
		Mailer:      mailer,
	})
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	return &TestApp{
		App:         application,
		DB:          db,
		RedisClient: redisClient,
		Tokens:      tokens,
		Mailer:      mailer,
		Publisher:   publisher,
	}, nil
}
