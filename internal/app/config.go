package app

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	JWT              JWTConfig
	AMQP             AMQPConfig
	Booking          BookingConfig
}

type DBConfig struct {
	Dsn          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	Url          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type JWTConfig struct {
	Secret string
}

type AMQPConfig struct {
	Url      string
	Exchange string
}

type BookingConfig struct {
	LockTimeout   time.Duration
	CommitTimeout time.Duration
	SeatCacheTTL  time.Duration
}

// LoadEnvFile reads variables from a .env file into the environment. A missing file is not
// an error; variables already set win over the file.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// RegisterFlags binds cfg to fs. Defaults come from the environment so the service can be
// configured with flags, variables or a .env file.
func (cfg *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flags.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	flags.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	flags.StringVar(&cfg.DB.Dsn, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN, the in-memory store is used when empty")
	flags.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flags.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flags.StringVar(&cfg.Redis.Url, "redis-url", envString("REDIS_URL", ""), "Redis address, seat caching is disabled when empty")
	flags.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flags.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flags.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flags.StringVar(&cfg.SMTP.Host, "smtp-host", envString("SMTP_HOST", ""), "SMTP host, mail is disabled when empty")
	flags.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flags.StringVar(&cfg.SMTP.Username, "smtp-username", envString("SMTP_USERNAME", ""), "SMTP username")
	flags.StringVar(&cfg.SMTP.Password, "smtp-password", envString("SMTP_PASSWORD", ""), "SMTP password")
	flags.StringVar(&cfg.SMTP.Sender, "smtp-sender", envString("SMTP_SENDER", "BMS <no-reply@bms.local>"), "SMTP sender")

	flags.StringVar(&cfg.JWT.Secret, "jwt-secret", envString("JWT_SECRET", ""), "HS256 secret shared with the identity provider")

	flags.StringVar(&cfg.AMQP.Url, "amqp-url", envString("AMQP_URL", ""), "RabbitMQ URL, events are only logged when empty")
	flags.StringVar(&cfg.AMQP.Exchange, "amqp-exchange", envString("AMQP_EXCHANGE", "bms.events"), "RabbitMQ topic exchange for booking events")

	flags.DurationVar(&cfg.Booking.LockTimeout, "booking-lock-timeout", envDuration("BOOKING_LOCK_TIMEOUT", 3*time.Second), "Maximum wait for a show's lock")
	flags.DurationVar(&cfg.Booking.CommitTimeout, "booking-commit-timeout", envDuration("BOOKING_COMMIT_TIMEOUT", 10*time.Second), "Maximum duration of a booking transaction")
	flags.DurationVar(&cfg.Booking.SeatCacheTTL, "seat-cache-ttl", envDuration("SEAT_CACHE_TTL", 30*time.Second), "Lifetime of cached available seats")
}

func (cfg Config) Validate() error {
	var errs []error

	if cfg.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt secret must be set"))
	}
	if cfg.Booking.LockTimeout <= 0 {
		errs = append(errs, errors.New("booking lock timeout must be positive"))
	}
	if cfg.Booking.CommitTimeout <= 0 {
		errs = append(errs, errors.New("booking commit timeout must be positive"))
	}

	return errors.Join(errs...)
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
