package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "net_banking"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

type Payment struct {
	ID            int
	BookingID     int
	UserID        int
	Method        PaymentMethod
	Amount        decimal.Decimal
	Status        PaymentStatus
	TransactionID uuid.UUID
	CreatedAt     time.Time
}

type PaymentRepository interface {
	// Create stores payment, failing with ErrPaymentExists when the booking is already paid
	// and ErrBookingNotFound when it does not exist.
	Create(ctx context.Context, payment *Payment) error
	GetByBookingID(ctx context.Context, bookingID int) (*Payment, error)
}
