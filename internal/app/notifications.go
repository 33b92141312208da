package app

import (
	"context"
	"time"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/HarishKumarG/BMS-project/internal/events"
)

const notifyTimeout = 10 * time.Second

var bookingTemplates = map[events.Type]string{
	events.BookingConfirmed: "booking_confirmed.tmpl",
	events.BookingCancelled: "booking_cancelled.tmpl",
}

// notifyBooking publishes the booking event and mails the caller once the change has been
// committed. Failures are logged; the request has already succeeded.
func (app *Application) notifyBooking(principal domain.Principal, t events.Type, booking *domain.Booking) {
	seats := domain.SeatNumbers(booking.Seats)

	event := events.New(t, booking.ShowID, seats)
	event.BookingID = booking.ID
	event.UserID = booking.UserID
	app.publish(event)

	if app.mailer == nil || principal.Email == "" {
		return
	}

	data := map[string]any{
		"BookingID": booking.ID,
		"ShowID":    booking.ShowID,
		"Seats":     seats,
		"Tickets":   booking.NoOfTickets,
		"Price":     booking.Price.String(),
	}

	app.background(func() {
		err := app.mailer.Send(principal.Email, bookingTemplates[t], data)
		if err != nil {
			app.logger.Error("failed to send booking mail", "booking_id", booking.ID, "type", t, "error", err)
		}
	})
}

func (app *Application) publish(event events.Event) {
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		err := app.publisher.Publish(ctx, event)
		if err != nil {
			app.logger.Error("failed to publish event", "type", event.Type, "show_id", event.ShowID, "error", err)
		}
	})
}
