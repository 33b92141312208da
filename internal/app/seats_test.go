package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/booking"
	"github.com/HarishKumarG/BMS-project/internal/cache"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/HarishKumarG/BMS-project/internal/lock"
	"github.com/HarishKumarG/BMS-project/internal/mocks"
	"github.com/HarishKumarG/BMS-project/internal/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SeatsTestSuite struct {
	suite.Suite
	app      *Application
	seatRepo *mocks.MockSeatRepo
	redis    *mocks.MockRedisClient
}

func (s *SeatsTestSuite) SetupTest() {
	s.seatRepo = new(mocks.MockSeatRepo)
	s.redis = new(mocks.MockRedisClient)

	s.app = newTestApplication(s.T(), func(a *Application) {
		a.seatRepo = s.seatRepo
		a.seatCache = cache.NewSeatCache(s.redis, time.Minute)
	})
}

func TestSeatsSuite(t *testing.T) {
	suite.Run(t, new(SeatsTestSuite))
}

func (s *SeatsTestSuite) TestGetAvailableSeats() {
	available := []domain.Seat{
		{ID: 1, ShowID: 3, SeatNumber: "A1"},
		{ID: 3, ShowID: 3, SeatNumber: "A3"},
	}
	fillKeys := []string{"available_seats:3", "available_seats:gen:3"}

	tests := []struct {
		name           string
		url            string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantSeats      []api.Seat
	}{
		{
			name:       "should return 400 without show_id",
			url:        "/seats/available",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "should return 400 for a show_id below one",
			url:        "/seats/available?show_id=0",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should serve a cache hit without reading the store",
			url:  "/seats/available?show_id=3",
			setupMocks: func() {
				s.redis.On("Get", mock.Anything, "available_seats:3").
					Return(redis.NewStringResult(`[{"id":1,"seat_number":"A1","is_booked":false}]`, nil))
				s.seatRepo.GetSeatsByShowFunc = func(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
					s.T().Error("store must not be read on a cache hit")
					return nil, nil
				}
			},
			wantStatus: http.StatusOK,
			wantSeats:  []api.Seat{{SeatNumber: "A1"}},
		},
		{
			name: "should fill the cache on a miss",
			url:  "/seats/available?show_id=3",
			setupMocks: func() {
				s.redis.On("Get", mock.Anything, "available_seats:3").
					Return(redis.NewStringResult("", redis.Nil))
				s.redis.On("Get", mock.Anything, "available_seats:gen:3").
					Return(redis.NewStringResult("4", nil))
				s.redis.On("EvalSha", mock.Anything, mock.Anything, fillKeys, int64(4), mock.Anything, int64(60000)).
					Return(redis.NewCmdResult(int64(1), nil)).Once()
				s.seatRepo.GetSeatsByShowFunc = func(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
					s.Equal(3, showID)
					s.False(booked)
					return available, nil
				}
			},
			wantStatus: http.StatusOK,
			wantSeats:  []api.Seat{{SeatNumber: "A1"}, {SeatNumber: "A3"}},
		},
		{
			name: "should serve the store read when the fill is rejected",
			url:  "/seats/available?show_id=3",
			setupMocks: func() {
				s.redis.On("Get", mock.Anything, "available_seats:3").
					Return(redis.NewStringResult("", redis.Nil))
				s.redis.On("Get", mock.Anything, "available_seats:gen:3").
					Return(redis.NewStringResult("", redis.Nil))
				s.redis.On("EvalSha", mock.Anything, mock.Anything, fillKeys, int64(0), mock.Anything, int64(60000)).
					Return(redis.NewCmdResult(int64(0), nil)).Once()
				s.seatRepo.GetSeatsByShowFunc = func(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
					return available, nil
				}
			},
			wantStatus: http.StatusOK,
			wantSeats:  []api.Seat{{SeatNumber: "A1"}, {SeatNumber: "A3"}},
		},
		{
			name: "should fall back to the store when redis is down",
			url:  "/seats/available?show_id=3",
			setupMocks: func() {
				s.redis.On("Get", mock.Anything, "available_seats:3").
					Return(redis.NewStringResult("", errors.New("connection refused")))
				s.redis.On("Get", mock.Anything, "available_seats:gen:3").
					Return(redis.NewStringResult("", errors.New("connection refused")))
				s.seatRepo.GetSeatsByShowFunc = func(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
					return available, nil
				}
			},
			wantStatus: http.StatusOK,
			wantSeats:  []api.Seat{{SeatNumber: "A1"}, {SeatNumber: "A3"}},
		},
		{
			name: "should return 404 for an unknown show",
			url:  "/seats/available?show_id=99",
			setupMocks: func() {
				s.redis.On("Get", mock.Anything, "available_seats:99").
					Return(redis.NewStringResult("", redis.Nil))
				s.redis.On("Get", mock.Anything, "available_seats:gen:99").
					Return(redis.NewStringResult("", redis.Nil))
				s.seatRepo.GetSeatsByShowFunc = func(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
					return nil, domain.ErrShowNotFound
				}
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "show not found",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)

			serve(s.app, w, r)

			s.Equal(tt.wantStatus, w.Code)
			s.redis.AssertExpectations(s.T())

			if tt.wantSeats == nil {
				checkErrorResponse(s.T(), w, struct {
					wantStatus     int
					wantErrMessage string
				}{tt.wantStatus, tt.wantErrMessage})
				return
			}

			var got api.SeatsResponse
			s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))

			want := api.SeatsResponse{ShowId: 3, Seats: tt.wantSeats}
			if diff := cmp.Diff(want, got); diff != "" {
				s.T().Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func (s *SeatsTestSuite) TestGetAvailableSeatsWithoutCache() {
	s.app.seatCache = nil
	s.seatRepo.GetSeatsByShowFunc = func(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
		return []domain.Seat{{ID: 1, ShowID: 3, SeatNumber: "A1"}}, nil
	}

	w, r := executeRequest(s.T(), http.MethodGet, "/seats/available?show_id=3", nil)

	serve(s.app, w, r)

	s.Equal(http.StatusOK, w.Code)
	s.redis.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything)
}

func (s *SeatsTestSuite) TestGetBookedSeats() {
	s.seatRepo.GetSeatsByShowFunc = func(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
		s.True(booked)
		return []domain.Seat{{ID: 2, ShowID: 3, SeatNumber: "A2", IsBooked: true}}, nil
	}

	w, r := executeRequest(s.T(), http.MethodGet, "/seats/booked?show_id=3", nil)

	serve(s.app, w, r)

	s.Equal(http.StatusOK, w.Code)

	var got api.SeatsResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))
	s.Equal([]api.Seat{{SeatNumber: "A2", IsBooked: true}}, got.Seats)
	s.redis.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything)
}

// bookingAfterRead commits a booking once, right after the first seat read returns.
type bookingAfterRead struct {
	*repository.MemoryStore
	once sync.Once
	book func()
}

func (b *bookingAfterRead) GetSeatsByShow(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
	seats, err := b.MemoryStore.GetSeatsByShow(ctx, showID, booked)
	b.once.Do(b.book)
	return seats, err
}

func TestAvailableSeatsAreNotCachedAcrossABooking(t *testing.T) {
	ctx := context.Background()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	seatCache := cache.NewSeatCache(client, time.Minute)

	store := repository.NewMemoryStore(time.Second)
	theatre := &domain.Theatre{Name: "PVR Forum", Location: "Bengaluru", Capacity: 100}
	require.NoError(t, store.CreateTheatre(ctx, theatre))

	show := &domain.Show{
		ShowNumber:   1,
		MovieID:      1,
		TheatreID:    theatre.ID,
		ShowTime:     time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC),
		TicketPrice:  decimal.NewFromInt(150),
		TotalTickets: 10,
	}
	seats, err := domain.ScheduleShow(show, theatre.Capacity)
	require.NoError(t, err)
	require.NoError(t, store.CreateShow(ctx, show, seats))

	engine := booking.NewEngine(store, lock.NewKeyedMutex(), seatCache,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		booking.Config{LockTimeout: time.Second, CommitTimeout: 5 * time.Second})

	repo := &bookingAfterRead{MemoryStore: store}
	repo.book = func() {
		_, err := engine.Book(ctx, domain.BookingRequest{
			ShowID:      show.ID,
			TheatreID:   theatre.ID,
			UserID:      customer.UserID,
			SeatNumbers: []string{"A1"},
		})
		require.NoError(t, err)
	}

	app := newTestApplication(t, func(a *Application) {
		a.seatRepo = repo
		a.seatCache = seatCache
	})

	listAvailable := func() []string {
		w, r := executeRequest(t, http.MethodGet, fmt.Sprintf("/seats/available?show_id=%d", show.ID), nil)
		serve(app, w, r)
		require.Equal(t, http.StatusOK, w.Code)

		var got api.SeatsResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))

		numbers := make([]string, len(got.Seats))
		for i, seat := range got.Seats {
			numbers[i] = seat.SeatNumber
		}
		return numbers
	}

	// The first read saw A1 free, but the booking landed before the fill.
	assert.Contains(t, listAvailable(), "A1")
	assert.False(t, server.Exists(fmt.Sprintf("available_seats:%d", show.ID)))

	second := listAvailable()
	assert.NotContains(t, second, "A1")
	assert.Len(t, second, 9)
	assert.True(t, server.Exists(fmt.Sprintf("available_seats:%d", show.ID)))

	assert.Equal(t, second, listAvailable())
}
