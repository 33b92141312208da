package booking

import (
	"context"
	"fmt"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MarkBlocked places administrative holds on seats. Seats that are already blocked are reported
// back and left alone; only newly blocked seats reduce the available counter.
func (e *Engine) MarkBlocked(ctx context.Context, showID int, seatNumbers []string) (*domain.BlockResult, error) {
	ctx, span := e.tracer.Start(ctx, "booking.MarkBlocked", trace.WithAttributes(
		attribute.Int("show.id", showID),
		attribute.Int("seats.requested", len(seatNumbers)),
	))
	defer span.End()

	result, err := e.markBlocked(ctx, showID, seatNumbers)
	e.record(ctx, span, "block", err)

	return result, err
}

func (e *Engine) markBlocked(ctx context.Context, showID int, seatNumbers []string) (*domain.BlockResult, error) {
	err := domain.ValidateSeatSelection(seatNumbers)
	if err != nil {
		return nil, err
	}

	_, err = e.inventory.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	var result *domain.BlockResult

	err = e.withShowLock(ctx, showID, func(ctx context.Context, tx domain.InventoryTx) error {
		show, err := tx.Show(ctx)
		if err != nil {
			return err
		}

		seats, err := tx.SeatsByNumbers(ctx, seatNumbers)
		if err != nil {
			return err
		}

		missing := domain.MissingSeats(seats, seatNumbers)
		if len(missing) > 0 {
			return domain.ErrUnknownSeats.WithSeats(missing)
		}

		blocked, err := tx.BlockedSeatIDs(ctx, domain.SeatIDs(seats))
		if err != nil {
			return err
		}

		var (
			fresh          []domain.Seat
			alreadyBlocked []string
			booked         []string
		)

		for _, seat := range inRequestOrder(seats, seatNumbers) {
			switch {
			case blocked[seat.ID]:
				alreadyBlocked = append(alreadyBlocked, seat.SeatNumber)
			case seat.IsBooked:
				booked = append(booked, seat.SeatNumber)
			default:
				fresh = append(fresh, seat)
			}
		}

		if len(booked) > 0 {
			return domain.ErrSeatsUnavailable.WithSeats(booked).WithMessage("booked seats cannot be blocked")
		}

		if len(fresh) > 0 {
			err = show.AdjustAvailable(-len(fresh))
			if err != nil {
				return err
			}

			err = tx.BlockSeats(ctx, fresh)
			if err != nil {
				return fmt.Errorf("block seats: %w", err)
			}

			err = tx.SaveAvailableSeats(ctx, show)
			if err != nil {
				return fmt.Errorf("save available seats: %w", err)
			}
		}

		result = &domain.BlockResult{
			ShowID:         show.ID,
			BlockedSeats:   domain.SeatNumbers(fresh),
			AlreadyBlocked: alreadyBlocked,
			AvailableSeats: show.AvailableSeats(),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("seats blocked",
		"show_id", showID,
		"blocked", result.BlockedSeats,
		"already_blocked", result.AlreadyBlocked)

	return result, nil
}

// RemoveBlocked lifts holds from seats and returns them to the available counter, capped at
// the show's total.
func (e *Engine) RemoveBlocked(ctx context.Context, showID int, seatNumbers []string) (*domain.UnblockResult, error) {
	ctx, span := e.tracer.Start(ctx, "booking.RemoveBlocked", trace.WithAttributes(
		attribute.Int("show.id", showID),
		attribute.Int("seats.requested", len(seatNumbers)),
	))
	defer span.End()

	result, err := e.removeBlocked(ctx, showID, seatNumbers)
	e.record(ctx, span, "unblock", err)

	return result, err
}

func (e *Engine) removeBlocked(ctx context.Context, showID int, seatNumbers []string) (*domain.UnblockResult, error) {
	err := domain.ValidateSeatSelection(seatNumbers)
	if err != nil {
		return nil, err
	}

	_, err = e.inventory.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	var result *domain.UnblockResult

	err = e.withShowLock(ctx, showID, func(ctx context.Context, tx domain.InventoryTx) error {
		show, err := tx.Show(ctx)
		if err != nil {
			return err
		}

		seats, err := tx.SeatsByNumbers(ctx, seatNumbers)
		if err != nil {
			return err
		}

		removed, err := tx.UnblockSeats(ctx, seats)
		if err != nil {
			return fmt.Errorf("unblock seats: %w", err)
		}

		if len(removed) == 0 {
			return domain.ErrNothingToUnblock.WithSeats(seatNumbers)
		}

		added := show.Release(len(removed))
		if added != len(removed) {
			e.logger.Warn("available seats capped on unblock",
				"show_id", show.ID, "removed", len(removed), "added", added)
		}

		err = tx.SaveAvailableSeats(ctx, show)
		if err != nil {
			return fmt.Errorf("save available seats: %w", err)
		}

		unblocked := domain.SeatNumbers(inRequestOrder(removed, seatNumbers))

		result = &domain.UnblockResult{
			ShowID:         show.ID,
			UnblockedSeats: unblocked,
			NotBlocked:     domain.MissingSeats(removed, seatNumbers),
			AvailableSeats: show.AvailableSeats(),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("seats unblocked", "show_id", showID, "unblocked", result.UnblockedSeats)

	return result, nil
}

// inRequestOrder returns the seats ordered as their numbers appear in seatNumbers.
func inRequestOrder(seats []domain.Seat, seatNumbers []string) []domain.Seat {
	byNumber := make(map[string]domain.Seat, len(seats))
	for _, s := range seats {
		byNumber[s.SeatNumber] = s
	}

	ordered := make([]domain.Seat, 0, len(seats))
	for _, n := range seatNumbers {
		if s, ok := byNumber[n]; ok {
			ordered = append(ordered, s)
		}
	}

	return ordered
}
