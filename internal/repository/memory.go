package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/HarishKumarG/BMS-project/internal/lock"
)

type memoryShow struct {
	show     domain.Show
	seats    []domain.Seat
	seatPos  map[int]int
	blocked  map[int]time.Time
	bookings map[int]domain.Booking
}

func (s *memoryShow) clone() *memoryShow {
	c := &memoryShow{
		show:     *s.show.Clone(),
		seats:    slices.Clone(s.seats),
		seatPos:  make(map[int]int, len(s.seatPos)),
		blocked:  make(map[int]time.Time, len(s.blocked)),
		bookings: make(map[int]domain.Booking, len(s.bookings)),
	}

	for k, v := range s.seatPos {
		c.seatPos[k] = v
	}
	for k, v := range s.blocked {
		c.blocked[k] = v
	}
	for k, v := range s.bookings {
		v.Seats = slices.Clone(v.Seats)
		c.bookings[k] = v
	}

	return c
}

// MemoryStore keeps the whole data set in process. Inventory transactions work on a copy of
// the show's state that replaces the original only when the callback succeeds.
type MemoryStore struct {
	mu          sync.RWMutex
	theatres    map[int]domain.Theatre
	screens     map[int]domain.Screen
	movies      map[int]domain.Movie
	shows       map[int]*memoryShow
	bookingShow map[int]int
	payments    map[int]domain.Payment
	lastID      map[string]int

	locks       *lock.KeyedMutex
	lockTimeout time.Duration
}

func NewMemoryStore(lockTimeout time.Duration) *MemoryStore {
	return &MemoryStore{
		theatres:    make(map[int]domain.Theatre),
		screens:     make(map[int]domain.Screen),
		movies:      make(map[int]domain.Movie),
		shows:       make(map[int]*memoryShow),
		bookingShow: make(map[int]int),
		payments:    make(map[int]domain.Payment),
		lastID:      make(map[string]int),
		locks:       lock.NewKeyedMutex(),
		lockTimeout: lockTimeout,
	}
}

// nextID must be called with mu held for writing.
func (m *MemoryStore) nextID(table string) int {
	m.lastID[table]++
	return m.lastID[table]
}

func (m *MemoryStore) CreateTheatre(ctx context.Context, theatre *domain.Theatre) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	theatre.ID = m.nextID("theatres")
	theatre.CreatedAt = time.Now()
	m.theatres[theatre.ID] = *theatre

	return nil
}

func (m *MemoryStore) GetTheatre(ctx context.Context, id int) (*domain.Theatre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	theatre, ok := m.theatres[id]
	if !ok {
		return nil, domain.ErrTheatreNotFound
	}

	return &theatre, nil
}

func (m *MemoryStore) CreateScreen(ctx context.Context, screen *domain.Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.theatres[screen.TheatreID]; !ok {
		return domain.ErrTheatreNotFound
	}

	for _, s := range m.screens {
		if s.TheatreID == screen.TheatreID && s.ScreenNumber == screen.ScreenNumber {
			return domain.ErrDuplicateScreen
		}
	}

	screen.ID = m.nextID("screens")
	m.screens[screen.ID] = *screen

	return nil
}

func (m *MemoryStore) GetScreen(ctx context.Context, id int) (*domain.Screen, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	screen, ok := m.screens[id]
	if !ok {
		return nil, domain.ErrScreenNotFound
	}

	return &screen, nil
}

func (m *MemoryStore) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	movie.ID = m.nextID("movies")
	movie.CreatedAt = time.Now()
	m.movies[movie.ID] = *movie

	return nil
}

func (m *MemoryStore) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	movie, ok := m.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}

	return &movie, nil
}

func (m *MemoryStore) CreateShow(ctx context.Context, show *domain.Show, seats []domain.Seat) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.shows {
		if s.show.TheatreID == show.TheatreID &&
			s.show.ShowTime.Equal(show.ShowTime) &&
			sameScreen(s.show.ScreenID, show.ScreenID) {
			return domain.ErrDuplicateShow
		}
	}

	show.ID = m.nextID("shows")
	show.CreatedAt = time.Now()

	state := &memoryShow{
		show:     *show.Clone(),
		seats:    make([]domain.Seat, len(seats)),
		seatPos:  make(map[int]int, len(seats)),
		blocked:  make(map[int]time.Time),
		bookings: make(map[int]domain.Booking),
	}

	for i := range seats {
		seats[i].ID = m.nextID("seats")
		seats[i].ShowID = show.ID
		state.seats[i] = seats[i]
		state.seatPos[seats[i].ID] = i
	}

	m.shows[show.ID] = state

	return nil
}

func sameScreen(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (m *MemoryStore) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.shows[id]
	if !ok {
		return nil, domain.ErrShowNotFound
	}

	return state.show.Clone(), nil
}

func (m *MemoryStore) GetSeatsByShow(ctx context.Context, showID int, booked bool) ([]domain.Seat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.shows[showID]
	if !ok {
		return nil, domain.ErrShowNotFound
	}

	seats := make([]domain.Seat, 0)
	for _, s := range state.seats {
		if booked && s.IsBooked {
			seats = append(seats, s)
		}
		if !booked && !s.IsBooked {
			if _, isBlocked := state.blocked[s.ID]; !isBlocked {
				seats = append(seats, s)
			}
		}
	}

	return seats, nil
}

func (m *MemoryStore) GetBooking(ctx context.Context, id int) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	showID, ok := m.bookingShow[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	booking, ok := m.shows[showID].bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	booking.Seats = slices.Clone(booking.Seats)
	return &booking, nil
}

func (m *MemoryStore) RunInShowTx(ctx context.Context, showID int, fn func(tx domain.InventoryTx) error) error {
	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	unlock, err := m.locks.Lock(lockCtx, showID)
	if err != nil {
		return domain.ErrResourceBusy.WithMessage("show %d is busy, please retry", showID)
	}
	defer unlock()

	m.mu.RLock()
	state, ok := m.shows[showID]
	m.mu.RUnlock()

	if !ok {
		return domain.ErrShowNotFound
	}

	tx := &memoryInventoryTx{store: m, state: state.clone()}

	err = fn(tx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.shows[showID] = tx.state
	for _, id := range tx.created {
		m.bookingShow[id] = showID
	}
	for _, id := range tx.deleted {
		delete(m.bookingShow, id)
		delete(m.payments, id)
	}

	return nil
}

func (m *MemoryStore) Create(ctx context.Context, payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bookingShow[payment.BookingID]; !ok {
		return domain.ErrBookingNotFound
	}

	if _, ok := m.payments[payment.BookingID]; ok {
		return domain.ErrPaymentExists
	}

	payment.ID = m.nextID("payments")
	payment.CreatedAt = time.Now()
	m.payments[payment.BookingID] = *payment

	return nil
}

func (m *MemoryStore) GetByBookingID(ctx context.Context, bookingID int) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payment, ok := m.payments[bookingID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &payment, nil
}

type memoryInventoryTx struct {
	store   *MemoryStore
	state   *memoryShow
	created []int
	deleted []int
}

func (t *memoryInventoryTx) Show(ctx context.Context) (*domain.Show, error) {
	return t.state.show.Clone(), nil
}

func (t *memoryInventoryTx) SeatsByNumbers(ctx context.Context, seatNumbers []string) ([]domain.Seat, error) {
	seats := make([]domain.Seat, 0, len(seatNumbers))
	for _, s := range t.state.seats {
		if slices.Contains(seatNumbers, s.SeatNumber) {
			seats = append(seats, s)
		}
	}

	return seats, nil
}

func (t *memoryInventoryTx) BlockedSeatIDs(ctx context.Context, seatIDs []int) (map[int]bool, error) {
	blocked := make(map[int]bool)
	for _, id := range seatIDs {
		if _, ok := t.state.blocked[id]; ok {
			blocked[id] = true
		}
	}

	return blocked, nil
}

func (t *memoryInventoryTx) setBooked(seats []domain.Seat, booked bool) error {
	for _, s := range seats {
		pos, ok := t.state.seatPos[s.ID]
		if !ok || t.state.seats[pos].IsBooked == booked {
			return domain.ErrSeatsUnavailable.WithSeats([]string{s.SeatNumber})
		}
		t.state.seats[pos].IsBooked = booked
	}

	return nil
}

func (t *memoryInventoryTx) MarkBooked(ctx context.Context, seats []domain.Seat) error {
	return t.setBooked(seats, true)
}

func (t *memoryInventoryTx) MarkUnbooked(ctx context.Context, seats []domain.Seat) error {
	return t.setBooked(seats, false)
}

func (t *memoryInventoryTx) SaveAvailableSeats(ctx context.Context, show *domain.Show) error {
	return t.state.show.LoadAvailableSeats(show.AvailableSeats())
}

func (t *memoryInventoryTx) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	t.store.mu.Lock()
	booking.ID = t.store.nextID("bookings")
	t.store.mu.Unlock()

	booking.CreatedAt = time.Now()

	stored := *booking
	stored.Seats = slices.Clone(booking.Seats)
	for i := range stored.Seats {
		stored.Seats[i].IsBooked = true
	}

	t.state.bookings[booking.ID] = stored
	t.created = append(t.created, booking.ID)

	return nil
}

func (t *memoryInventoryTx) GetBooking(ctx context.Context, id int) (*domain.Booking, error) {
	booking, ok := t.state.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	booking.Seats = slices.Clone(booking.Seats)
	return &booking, nil
}

func (t *memoryInventoryTx) DeleteBooking(ctx context.Context, id int) error {
	if _, ok := t.state.bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}

	delete(t.state.bookings, id)
	t.deleted = append(t.deleted, id)

	return nil
}

func (t *memoryInventoryTx) BlockSeats(ctx context.Context, seats []domain.Seat) error {
	now := time.Now()
	for _, s := range seats {
		if _, ok := t.state.blocked[s.ID]; ok {
			return domain.ErrSeatsBlocked.WithSeats([]string{s.SeatNumber})
		}
		t.state.blocked[s.ID] = now
	}

	return nil
}

func (t *memoryInventoryTx) UnblockSeats(ctx context.Context, seats []domain.Seat) ([]domain.Seat, error) {
	removed := make([]domain.Seat, 0, len(seats))
	for _, s := range seats {
		if _, ok := t.state.blocked[s.ID]; ok {
			delete(t.state.blocked, s.ID)
			removed = append(removed, s)
		}
	}

	return removed, nil
}
