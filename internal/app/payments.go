package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/google/uuid"
)

// CreatePayment records the payment of a booking. The amount is always derived from the
// booking; the gateway itself lives outside this service.
func (app *Application) CreatePayment(w http.ResponseWriter, r *http.Request) {
	principal := app.contextGetPrincipal(r)

	var input api.CreatePaymentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking, err := app.bookings.GetBooking(r.Context(), input.BookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("booking %d does not exist", input.BookingId))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !principal.CanAccess(booking.UserID) {
		app.forbiddenResponse(w, r)
		return
	}

	status := api.Pending
	if input.Status != nil {
		status = *input.Status
	}

	payment := &domain.Payment{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		Method:        domain.PaymentMethod(input.PaymentMethod),
		Amount:        booking.Price,
		Status:        domain.PaymentStatus(status),
		TransactionID: uuid.New(),
	}

	err = app.paymentRepo.Create(r.Context(), payment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("booking %d does not exist", input.BookingId))
		default:
			app.domainErrorResponse(w, r, err)
		}
		return
	}

	app.contextGetLogger(r).Info("payment recorded",
		"payment_id", payment.ID, "booking_id", payment.BookingID, "status", payment.Status)

	resp := api.PaymentResponse{
		Id:            payment.ID,
		BookingId:     payment.BookingID,
		UserId:        payment.UserID,
		PaymentMethod: api.PaymentMethod(payment.Method),
		Amount:        payment.Amount,
		Status:        api.PaymentStatus(payment.Status),
		TransactionId: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
