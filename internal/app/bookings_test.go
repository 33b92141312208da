package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/HarishKumarG/BMS-project/internal/events"
	"github.com/HarishKumarG/BMS-project/internal/mailer"
	"github.com/HarishKumarG/BMS-project/internal/mocks"
	appvalidator "github.com/HarishKumarG/BMS-project/internal/validator"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var bookedAt = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func newTestBooking(userID int) *domain.Booking {
	return &domain.Booking{
		ID:          12,
		ShowID:      3,
		TheatreID:   2,
		UserID:      userID,
		NoOfTickets: 2,
		Seats:       []domain.Seat{
			{ID: 1, ShowID: 3, SeatNumber: "A1", IsBooked: true},
			{ID: 2, ShowID: 3, SeatNumber: "A2", IsBooked: true},
		},
		Price:     decimal.NewFromInt(300),
		CreatedAt: bookedAt,
	}
}

type BookingsTestSuite struct {
	suite.Suite
	app       *Application
	bookings  *mocks.MockBookingService
	publisher *mocks.MockPublisher
	mailer    *mailer.MockMailer
}

func (s *BookingsTestSuite) SetupTest() {
	s.bookings = new(mocks.MockBookingService)
	s.publisher = new(mocks.MockPublisher)
	s.mailer = mailer.NewMockMailer()

	s.app = newTestApplication(s.T(), func(a *Application) {
		a.bookings = s.bookings
		a.publisher = s.publisher
		a.mailer = s.mailer
	})
}

func TestBookingsSuite(t *testing.T) {
	suite.Run(t, new(BookingsTestSuite))
}

func (s *BookingsTestSuite) TestCreateBooking() {
	validInput := api.CreateBookingRequest{
		ShowId:        3,
		TheatreId:     2,
		SelectedSeats: []string{"A1", "A2"},
	}
	validRequest := domain.BookingRequest{
		ShowID:      3,
		TheatreID:   2,
		UserID:      customer.UserID,
		SeatNumbers: []string{"A1", "A2"},
	}

	tests := []struct {
		name           string
		input          any
		principal      *domain.Principal
		authorization  string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantCode       string
		wantSeats      []string
		wantHeader     map[string]string
	}{
		{
			name:           "should return 401 without a bearer token",
			input:          validInput,
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorizedAccess,
			wantHeader:     map[string]string{"WWW-Authenticate": "Bearer"},
		},
		{
			name:           "should return 401 for a malformed token",
			input:          validInput,
			authorization:  "Bearer not-a-jwt",
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidToken,
		},
		{
			name:       "should return 400 for a body that is not an object",
			input:      "A1,A2",
			principal:  &customer,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should return 422 for a malformed seat number",
			input: api.CreateBookingRequest{
				ShowId:        3,
				TheatreId:     2,
				SelectedSeats: []string{"a1"},
			},
			principal:      &customer,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrSeatNumber,
		},
		{
			name: "should return 422 for more than ten seats",
			input: api.CreateBookingRequest{
				ShowId:        3,
				TheatreId:     2,
				SelectedSeats: []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "B1"},
			},
			principal:      &customer,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must contain at most 10 items",
		},
		{
			name:      "should return 404 when the show does not exist",
			input:     validInput,
			principal: &customer,
			setupMocks: func() {
				s.bookings.On("Book", mock.Anything, validRequest).Return(nil, domain.ErrShowNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "show not found",
			wantCode:       "show_not_found",
		},
		{
			name:      "should return 400 when the show belongs to another theatre",
			input:     validInput,
			principal: &customer,
			setupMocks: func() {
				s.bookings.On("Book", mock.Anything, validRequest).Return(nil, domain.ErrShowTheatreMismatch)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "show_theatre_mismatch",
		},
		{
			name:      "should return 400 naming the seats that are no longer available",
			input:     validInput,
			principal: &customer,
			setupMocks: func() {
				s.bookings.On("Book", mock.Anything, validRequest).
					Return(nil, domain.ErrSeatsUnavailable.WithSeats([]string{"A2"}))
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "selected seats are not available: A2",
			wantCode:       "seats_unavailable",
			wantSeats:      []string{"A2"},
		},
		{
			name:      "should return 400 when seats are blocked",
			input:     validInput,
			principal: &customer,
			setupMocks: func() {
				s.bookings.On("Book", mock.Anything, validRequest).
					Return(nil, domain.ErrSeatsBlocked.WithSeats([]string{"A1"}))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "seats_blocked",
			wantSeats:  []string{"A1"},
		},
		{
			name:      "should return 503 with Retry-After when the show is busy",
			input:     validInput,
			principal: &customer,
			setupMocks: func() {
				s.bookings.On("Book", mock.Anything, validRequest).Return(nil, domain.ErrResourceBusy)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "resource_busy",
			wantHeader: map[string]string{"Retry-After": "1"},
		},
		{
			name:      "should return 500 when the seat counter is broken",
			input:     validInput,
			principal: &customer,
			setupMocks: func() {
				s.bookings.On("Book", mock.Anything, validRequest).Return(nil, domain.ErrInvariantViolation)
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:      "should return 500 on an unexpected error",
			input:     validInput,
			principal: &customer,
			setupMocks: func() {
				s.bookings.On("Book", mock.Anything, validRequest).Return(nil, errors.New("connection reset"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:      "should book the seats",
			input:     validInput,
			principal: &customer,
			setupMocks: func() {
				s.bookings.On("Book", mock.Anything, validRequest).Return(newTestBooking(customer.UserID), nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings", tt.input)
			if tt.principal != nil {
				authorize(s.T(), r, *tt.principal)
			}
			if tt.authorization != "" {
				r.Header.Set("Authorization", tt.authorization)
			}

			serve(s.app, w, r)

			s.Equal(tt.wantStatus, w.Code)
			for key, value := range tt.wantHeader {
				s.Equal(value, w.Header().Get(key))
			}

			if tt.wantCode != "" {
				var resp api.ErrorResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(tt.wantCode, *resp.Code)
				if tt.wantErrMessage != "" {
					s.Equal(tt.wantErrMessage, resp.Message)
				}
				if tt.wantSeats != nil {
					s.Require().NotNil(resp.Seats)
					s.Equal(tt.wantSeats, *resp.Seats)
				}
			} else {
				checkErrorResponse(s.T(), w, struct {
					wantStatus     int
					wantErrMessage string
				}{tt.wantStatus, tt.wantErrMessage})
			}

			if tt.wantStatus != http.StatusCreated {
				s.Empty(s.publisher.Events())
				s.Empty(s.mailer.Sent())
				return
			}

			var got api.BookingResponse
			s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))

			want := api.BookingResponse{
				Id:          12,
				ShowId:      3,
				TheatreId:   2,
				UserId:      customer.UserID,
				Nooftickets: 2,
				Seats:       []string{"A1", "A2"},
				Price:       decimal.NewFromInt(300),
				CreatedAt:   bookedAt,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				s.T().Errorf("response mismatch (-want +got):\n%s", diff)
			}

			published := s.publisher.Events()
			s.Require().Len(published, 1)
			s.Equal(events.BookingConfirmed, published[0].Type)
			s.Equal(12, published[0].BookingID)
			s.Equal([]string{"A1", "A2"}, published[0].Seats)

			sent := s.mailer.Sent()
			s.Require().Len(sent, 1)
			s.Equal(customer.Email, sent[0].Recipient)
			s.Equal("booking_confirmed.tmpl", sent[0].TemplateFile)
		})
	}
}

func (s *BookingsTestSuite) TestCreateBookingSucceedsWhenNotificationsFail() {
	s.publisher.Err = errors.New("broker unreachable")
	s.mailer.Err = errors.New("smtp unreachable")

	s.bookings.On("Book", mock.Anything, mock.Anything).Return(newTestBooking(customer.UserID), nil)

	w, r := executeRequest(s.T(), http.MethodPost, "/bookings", api.CreateBookingRequest{
		ShowId:        3,
		TheatreId:     2,
		SelectedSeats: []string{"A1", "A2"},
	})
	authorize(s.T(), r, customer)

	serve(s.app, w, r)

	s.Equal(http.StatusCreated, w.Code)
	s.Len(s.publisher.Events(), 1)
}

func (s *BookingsTestSuite) TestInvariantViolationPanicsInDevelopment() {
	s.app.config.Env = "dev"
	s.bookings.On("Book", mock.Anything, mock.Anything).Return(nil, domain.ErrInvariantViolation)

	w, r := executeRequest(s.T(), http.MethodPost, "/bookings", api.CreateBookingRequest{
		ShowId:        3,
		TheatreId:     2,
		SelectedSeats: []string{"A1"},
	})
	authorize(s.T(), r, customer)

	serve(s.app, w, r)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("close", w.Header().Get("Connection"))
}

func (s *BookingsTestSuite) TestClientGoneWhileQueued() {
	var logs bytes.Buffer
	s.app.logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s.bookings.On("Book", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("waiting for show 3: %w", context.Canceled))

	w, r := executeRequest(s.T(), http.MethodPost, "/bookings", api.CreateBookingRequest{
		ShowId:        3,
		TheatreId:     2,
		SelectedSeats: []string{"A1"},
	})
	authorize(s.T(), r, customer)

	serve(s.app, w, r)

	s.Equal(statusClientClosedRequest, w.Code)
	s.Empty(w.Body.String())
	s.Contains(logs.String(), "client closed request")
	s.NotContains(logs.String(), "level=ERROR")
}

func (s *BookingsTestSuite) TestGetBooking() {
	tests := []struct {
		name           string
		url            string
		principal      domain.Principal
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should return 400 for a non-numeric id",
			url:            "/bookings/abc",
			principal:      customer,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "",
		},
		{
			name:      "should return 404 when the booking does not exist",
			url:       "/bookings/12",
			principal: customer,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(nil, domain.ErrBookingNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "booking not found",
		},
		{
			name:      "should return 403 for another customer",
			url:       "/bookings/12",
			principal: otherCustomer,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
			},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrForbidden,
		},
		{
			name:      "should return the booking to its owner",
			url:       "/bookings/12",
			principal: customer,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "should return any booking to a manager",
			url:       "/bookings/12",
			principal: manager,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)
			authorize(s.T(), r, tt.principal)

			serve(s.app, w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusOK {
				var got api.BookingResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))
				s.Equal(12, got.Id)
				s.Equal([]string{"A1", "A2"}, got.Seats)
			}
		})
	}
}

func (s *BookingsTestSuite) TestCancelBooking() {
	tests := []struct {
		name           string
		principal      domain.Principal
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantEvent      bool
	}{
		{
			name:      "should return 404 when the booking does not exist",
			principal: customer,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(nil, domain.ErrBookingNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "booking not found",
		},
		{
			name:      "should return 403 and leave the booking alone for another customer",
			principal: otherCustomer,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
			},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrForbidden,
		},
		{
			name:      "should return 503 when the show is busy",
			principal: customer,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
				s.bookings.On("Cancel", mock.Anything, 12).Return(nil, domain.ErrResourceBusy)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:      "should return 404 when the booking was cancelled concurrently",
			principal: customer,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
				s.bookings.On("Cancel", mock.Anything, 12).Return(nil, domain.ErrBookingNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:      "should cancel the booking of its owner",
			principal: customer,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
				s.bookings.On("Cancel", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
			},
			wantStatus: http.StatusOK,
			wantEvent:  true,
		},
		{
			name:      "should let a manager cancel any booking",
			principal: manager,
			setupMocks: func() {
				s.bookings.On("GetBooking", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
				s.bookings.On("Cancel", mock.Anything, 12).Return(newTestBooking(customer.UserID), nil)
			},
			wantStatus: http.StatusOK,
			wantEvent:  true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMocks()

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings/12/cancel", nil)
			authorize(s.T(), r, tt.principal)

			serve(s.app, w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusForbidden {
				s.bookings.AssertNotCalled(s.T(), "Cancel", mock.Anything, mock.Anything)
			}

			published := s.publisher.Events()
			if !tt.wantEvent {
				s.Empty(published)
				return
			}

			s.Require().Len(published, 1)
			s.Equal(events.BookingCancelled, published[0].Type)
			s.Equal(customer.UserID, published[0].UserID)

			sent := s.mailer.Sent()
			s.Require().Len(sent, 1)
			s.Equal(tt.principal.Email, sent[0].Recipient)
			s.Equal("booking_cancelled.tmpl", sent[0].TemplateFile)
		})
	}
}
