package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/HarishKumarG/BMS-project/internal/auth"
	"github.com/HarishKumarG/BMS-project/internal/booking"
	"github.com/HarishKumarG/BMS-project/internal/cache"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/HarishKumarG/BMS-project/internal/events"
	"github.com/HarishKumarG/BMS-project/internal/lock"
	"github.com/HarishKumarG/BMS-project/internal/mailer"
	"github.com/HarishKumarG/BMS-project/internal/repository"
	appvalidator "github.com/HarishKumarG/BMS-project/internal/validator"
	"github.com/HarishKumarG/BMS-project/internal/vcs"
	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/routers"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

var (
	version = vcs.Version()
)

type tokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

type seatCache interface {
	GetAvailable(ctx context.Context, showID int) ([]domain.Seat, bool, error)
	Generation(ctx context.Context, showID int) (int64, error)
	SetAvailable(ctx context.Context, showID int, generation int64, seats []domain.Seat) (bool, error)
}

type Application struct {
	config        Config
	logger        *slog.Logger
	validator     *validator.Validate
	openapiRouter routers.Router
	wg            sync.WaitGroup

	tokens      tokenVerifier
	bookings    domain.BookingService
	catalogRepo domain.CatalogRepository
	seatRepo    domain.SeatRepository
	paymentRepo domain.PaymentRepository
	seatCache   seatCache
	publisher   events.Publisher
	mailer      mailer.Mailer
}

// Dependencies are the collaborators of an Application. SeatCache and Mailer are optional.
type Dependencies struct {
	Tokens      tokenVerifier
	Bookings    domain.BookingService
	CatalogRepo domain.CatalogRepository
	SeatRepo    domain.SeatRepository
	PaymentRepo domain.PaymentRepository
	SeatCache   *cache.SeatCache
	Publisher   events.Publisher
	Mailer      mailer.Mailer
}

func NewApp(cfg Config, logger *slog.Logger, deps Dependencies) (*Application, error) {
	openapiRouter, err := newOpenAPIRouter()
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	app := &Application{
		config:        cfg,
		logger:        logger,
		validator:     appvalidator.NewValidator(),
		openapiRouter: openapiRouter,
		tokens:        deps.Tokens,
		bookings:      deps.Bookings,
		catalogRepo:   deps.CatalogRepo,
		seatRepo:      deps.SeatRepo,
		paymentRepo:   deps.PaymentRepo,
		publisher:     deps.Publisher,
		mailer:        deps.Mailer,
	}

	if deps.SeatCache != nil {
		app.seatCache = deps.SeatCache
	}

	if app.publisher == nil {
		app.publisher = events.NewLogPublisher(logger)
	}

	return app, nil
}

func Run() error {
	err := LoadEnvFile(".env")
	if err != nil {
		return err
	}

	var cfg Config
	cfg.RegisterFlags(flag.CommandLine)

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	stdoutHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(stdoutHandler)

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(stdoutHandler, newOtelLogHandler()))
	}

	deps := Dependencies{
		Tokens: auth.NewTokenVerifier(cfg.JWT.Secret),
	}

	var inventory domain.InventoryRepository

	if cfg.DB.Dsn == "" {
		logger.Warn("no database configured, using the in-memory store")

		store := repository.NewMemoryStore(cfg.Booking.LockTimeout)
		inventory = store
		deps.CatalogRepo = store
		deps.SeatRepo = store
		deps.PaymentRepo = store
	} else {
		db, err := NewDatabasePool(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		inventory = repository.NewPostgresInventoryRepository(db, cfg.Booking.LockTimeout)
		deps.CatalogRepo = repository.NewPostgresCatalogRepository(db)
		deps.SeatRepo = repository.NewPostgresSeatRepository(db)
		deps.PaymentRepo = repository.NewPostgresPaymentRepository(db)
	}

	var invalidator booking.Invalidator

	if cfg.Redis.Url != "" {
		redisClient, err := NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		deps.SeatCache = cache.NewSeatCache(redisClient, cfg.Booking.SeatCacheTTL)
		invalidator = deps.SeatCache
	}

	deps.Bookings = booking.NewEngine(inventory, lock.NewKeyedMutex(), invalidator, logger, booking.Config{
		LockTimeout:   cfg.Booking.LockTimeout,
		CommitTimeout: cfg.Booking.CommitTimeout,
	})

	if cfg.AMQP.Url != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQP.Url, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		defer publisher.Close()

		deps.Publisher = publisher
	}

	if cfg.SMTP.Host != "" {
		deps.Mailer = mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	}

	app, err := NewApp(cfg, logger, deps)
	if err != nil {
		return err
	}

	return app.serve()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.Url,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.Dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10*time.Second + app.config.Booking.LockTimeout + app.config.Booking.CommitTimeout,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
