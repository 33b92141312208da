package validator

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issues(t *testing.T, err error) map[string]string {
	t.Helper()

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)

	got := make(map[string]string, len(verrs))
	for _, e := range verrs {
		got[e.Field()] = ValidationMessage(e)
	}
	return got
}

func TestCreateBookingRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		req  api.CreateBookingRequest
		want map[string]string
	}{
		{
			name: "valid",
			req:  api.CreateBookingRequest{ShowId: 1, TheatreId: 2, SelectedSeats: []string{"A1", "J10"}},
		},
		{
			name: "no seats",
			req:  api.CreateBookingRequest{ShowId: 1, TheatreId: 2, SelectedSeats: []string{}},
			want: map[string]string{"selected_seats": fmt.Sprintf(ErrMinItems, "1")},
		},
		{
			name: "missing seats",
			req:  api.CreateBookingRequest{ShowId: 1, TheatreId: 2},
			want: map[string]string{"selected_seats": ErrRequired},
		},
		{
			name: "malformed seat number",
			req:  api.CreateBookingRequest{ShowId: 1, TheatreId: 2, SelectedSeats: []string{"A11"}},
			want: map[string]string{"selected_seats[0]": ErrSeatNumber},
		},
		{
			name: "lowercase seat number",
			req:  api.CreateBookingRequest{ShowId: 1, TheatreId: 2, SelectedSeats: []string{"A1", "b2"}},
			want: map[string]string{"selected_seats[1]": ErrSeatNumber},
		},
		{
			name: "too many seats",
			req: api.CreateBookingRequest{ShowId: 1, TheatreId: 2,
				SelectedSeats: []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "B1"}},
			want: map[string]string{"selected_seats": fmt.Sprintf(ErrMaxItems, "10")},
		},
		{
			name: "invalid ids",
			req:  api.CreateBookingRequest{SelectedSeats: []string{"A1"}},
			want: map[string]string{
				"show_id":    fmt.Sprintf(ErrMinValue, "1"),
				"theatre_id": fmt.Sprintf(ErrMinValue, "1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			assert.Equal(t, tt.want, issues(t, err))
		})
	}
}

func TestCreateShowRequest(t *testing.T) {
	v := NewValidator()
	showTime := time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		price decimal.Decimal
		want  map[string]string
	}{
		{name: "lowest price", price: decimal.NewFromInt(150)},
		{name: "highest price", price: decimal.RequireFromString("200.00")},
		{name: "too cheap", price: decimal.RequireFromString("149.99"), want: map[string]string{"ticket_price": ErrTicketPrice}},
		{name: "too expensive", price: decimal.NewFromInt(201), want: map[string]string{"ticket_price": ErrTicketPrice}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := api.CreateShowRequest{MovieId: 1, TheatreId: 1, ShowTime: showTime, TicketPrice: &tt.price}

			err := v.Struct(req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			assert.Equal(t, tt.want, issues(t, err))
		})
	}

	t.Run("show number out of range", func(t *testing.T) {
		number := 6
		err := v.Struct(api.CreateShowRequest{MovieId: 1, TheatreId: 1, ShowTime: showTime, ShowNumber: &number})
		assert.Equal(t, map[string]string{"show_number": fmt.Sprintf(ErrMaxValue, "5")}, issues(t, err))
	})
}

func TestCreatePaymentRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(api.CreatePaymentRequest{BookingId: 1, PaymentMethod: api.Upi}))

	status := api.PaymentStatus("refunded")
	err := v.Struct(api.CreatePaymentRequest{BookingId: 1, PaymentMethod: "cash", Status: &status})

	assert.Equal(t, map[string]string{
		"payment_method": fmt.Sprintf(ErrOneOf, "credit_card, debit_card, upi, net_banking, wallet"),
		"status":         fmt.Sprintf(ErrOneOf, "pending, completed, failed"),
	}, issues(t, err))
}
