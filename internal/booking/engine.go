// Package booking holds the seat booking, blocking and cancellation engine. Every mutation of a
// show's inventory runs under that show's exclusive lock and re-reads state after acquiring it.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/HarishKumarG/BMS-project/internal/booking"

// Locker serialises work per show id.
type Locker interface {
	Lock(ctx context.Context, key int) (func(), error)
}

// Invalidator drops cached state derived from a show's inventory.
type Invalidator interface {
	InvalidateShow(ctx context.Context, showID int) error
}

type Config struct {
	// LockTimeout bounds the wait for a show's lock.
	LockTimeout time.Duration
	// CommitTimeout bounds the transaction once the lock is held.
	CommitTimeout time.Duration
}

type Engine struct {
	inventory   domain.InventoryRepository
	locks       Locker
	invalidator Invalidator
	logger      *slog.Logger
	cfg         Config

	tracer   trace.Tracer
	requests metric.Int64Counter
	lockWait metric.Float64Histogram
}

func NewEngine(
	inventory domain.InventoryRepository,
	locks Locker,
	invalidator Invalidator,
	logger *slog.Logger,
	cfg Config) *Engine {

	meter := otel.Meter(instrumentationName)

	requests, err := meter.Int64Counter("booking.requests",
		metric.WithDescription("Booking, blocking and cancellation requests by outcome"))
	if err != nil {
		logger.Warn("failed to create booking.requests counter", "error", err)
	}

	lockWait, err := meter.Float64Histogram("booking.lock.wait",
		metric.WithDescription("Time spent waiting for a show lock"),
		metric.WithUnit("s"))
	if err != nil {
		logger.Warn("failed to create booking.lock.wait histogram", "error", err)
	}

	return &Engine{
		inventory:   inventory,
		locks:       locks,
		invalidator: invalidator,
		logger:      logger,
		cfg:         cfg,
		tracer:      otel.Tracer(instrumentationName),
		requests:    requests,
		lockWait:    lockWait,
	}
}

func (e *Engine) Book(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	ctx, span := e.tracer.Start(ctx, "booking.Book", trace.WithAttributes(
		attribute.Int("show.id", req.ShowID),
		attribute.Int("seats.requested", len(req.SeatNumbers)),
	))
	defer span.End()

	booking, err := e.book(ctx, req)
	e.record(ctx, span, "book", err)

	return booking, err
}

func (e *Engine) book(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	show, err := e.inventory.GetShow(ctx, req.ShowID)
	if err != nil {
		return nil, err
	}

	if !show.BelongsTo(req.TheatreID) {
		return nil, domain.ErrShowTheatreMismatch.WithMessage(
			"show %d does not belong to theatre %d", req.ShowID, req.TheatreID)
	}

	err = domain.ValidateSeatSelection(req.SeatNumbers)
	if err != nil {
		return nil, err
	}

	if len(req.SeatNumbers) > domain.MaxTicketsPerBooking {
		return nil, domain.ErrInvalidSeatSelection.WithMessage(
			"at most %d seats can be booked at once", domain.MaxTicketsPerBooking)
	}

	var booking *domain.Booking

	err = e.withShowLock(ctx, show.ID, func(ctx context.Context, tx domain.InventoryTx) error {
		show, err := tx.Show(ctx)
		if err != nil {
			return err
		}

		seats, err := tx.SeatsByNumbers(ctx, req.SeatNumbers)
		if err != nil {
			return err
		}

		blocked, err := tx.BlockedSeatIDs(ctx, domain.SeatIDs(seats))
		if err != nil {
			return err
		}

		if len(blocked) > 0 {
			return domain.ErrSeatsBlocked.WithSeats(blockedNumbers(seats, blocked, req.SeatNumbers))
		}

		available := domain.FindAvailable(seats, blocked, req.SeatNumbers)
		if len(available) != len(req.SeatNumbers) {
			return domain.ErrSeatsUnavailable.WithSeats(domain.Unavailable(available, req.SeatNumbers))
		}

		err = show.AdjustAvailable(-len(available))
		if err != nil {
			return err
		}

		b := &domain.Booking{
			ShowID:      show.ID,
			TheatreID:   show.TheatreID,
			UserID:      req.UserID,
			NoOfTickets: len(available),
			Seats:       available,
			Price:       show.Price(len(available)),
		}

		err = tx.CreateBooking(ctx, b)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		err = tx.MarkBooked(ctx, available)
		if err != nil {
			return fmt.Errorf("mark seats booked: %w", err)
		}

		err = tx.SaveAvailableSeats(ctx, show)
		if err != nil {
			return fmt.Errorf("save available seats: %w", err)
		}

		for i := range b.Seats {
			b.Seats[i].IsBooked = true
		}
		booking = b

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("booking committed",
		"booking_id", booking.ID,
		"show_id", booking.ShowID,
		"user_id", booking.UserID,
		"seats", domain.SeatNumbers(booking.Seats))

	return booking, nil
}

func (e *Engine) GetBooking(ctx context.Context, id int) (*domain.Booking, error) {
	return e.inventory.GetBooking(ctx, id)
}

// Cancel releases a booking's seats, returns them to the show's counter and deletes the booking.
func (e *Engine) Cancel(ctx context.Context, bookingID int) (*domain.Booking, error) {
	ctx, span := e.tracer.Start(ctx, "booking.Cancel", trace.WithAttributes(
		attribute.Int("booking.id", bookingID),
	))
	defer span.End()

	booking, err := e.cancel(ctx, bookingID)
	e.record(ctx, span, "cancel", err)

	return booking, err
}

func (e *Engine) cancel(ctx context.Context, bookingID int) (*domain.Booking, error) {
	existing, err := e.inventory.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var cancelled *domain.Booking

	err = e.withShowLock(ctx, existing.ShowID, func(ctx context.Context, tx domain.InventoryTx) error {
		booking, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}

		show, err := tx.Show(ctx)
		if err != nil {
			return err
		}

		err = tx.MarkUnbooked(ctx, booking.Seats)
		if err != nil {
			return fmt.Errorf("mark seats unbooked: %w", err)
		}

		added := show.Release(booking.NoOfTickets)
		if added != booking.NoOfTickets {
			e.logger.Warn("available seats capped on cancellation",
				"booking_id", booking.ID, "show_id", show.ID, "tickets", booking.NoOfTickets, "added", added)
		}

		err = tx.SaveAvailableSeats(ctx, show)
		if err != nil {
			return fmt.Errorf("save available seats: %w", err)
		}

		err = tx.DeleteBooking(ctx, booking.ID)
		if err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}

		for i := range booking.Seats {
			booking.Seats[i].IsBooked = false
		}
		cancelled = booking

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("booking cancelled",
		"booking_id", cancelled.ID,
		"show_id", cancelled.ShowID,
		"seats", domain.SeatNumbers(cancelled.Seats))

	return cancelled, nil
}

// withShowLock acquires the show's lock within LockTimeout and runs fn in an inventory
// transaction. Once the lock is held the transaction no longer follows ctx's cancellation, so
// a departed caller cannot abandon it halfway; CommitTimeout bounds it instead.
func (e *Engine) withShowLock(
	ctx context.Context,
	showID int,
	fn func(ctx context.Context, tx domain.InventoryTx) error) error {

	lockCtx, cancel := context.WithTimeout(ctx, e.cfg.LockTimeout)
	defer cancel()

	start := time.Now()
	unlock, err := e.locks.Lock(lockCtx, showID)
	if e.lockWait != nil {
		e.lockWait.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.Bool("acquired", err == nil)))
	}
	if err != nil {
		// A caller whose own deadline ran out while queued is answered as busy too.
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("waiting for show %d: %w", showID, ctx.Err())
		}
		return domain.ErrResourceBusy.WithMessage("show %d is busy, please retry", showID)
	}
	defer unlock()

	txCtx, cancelTx := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.CommitTimeout)
	defer cancelTx()

	err = e.inventory.RunInShowTx(txCtx, showID, func(tx domain.InventoryTx) error {
		return fn(txCtx, tx)
	})
	if err != nil {
		return err
	}

	e.invalidate(txCtx, showID)

	return nil
}

func (e *Engine) invalidate(ctx context.Context, showID int) {
	if e.invalidator == nil {
		return
	}

	err := e.invalidator.InvalidateShow(ctx, showID)
	if err != nil {
		e.logger.Warn("failed to invalidate seat cache", "show_id", showID, "error", err)
	}
}

func (e *Engine) record(ctx context.Context, span trace.Span, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = domain.KindOf(err).String()
		span.RecordError(err)
	}

	span.SetAttributes(attribute.String("outcome", outcome))

	if kind := domain.KindOf(err); kind == domain.KindInvariant {
		e.logger.Error("seat counter invariant violated", "operation", operation, "error", err, "alert", true)
	}

	if e.requests != nil {
		e.requests.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		))
	}
}

// blockedNumbers returns the requested seat numbers whose seats are blocked, in request order.
func blockedNumbers(seats []domain.Seat, blocked map[int]bool, seatNumbers []string) []string {
	byNumber := make(map[string]int, len(seats))
	for _, s := range seats {
		byNumber[s.SeatNumber] = s.ID
	}

	var numbers []string
	for _, n := range seatNumbers {
		if id, ok := byNumber[n]; ok && blocked[id] {
			numbers = append(numbers, n)
		}
	}

	return numbers
}
