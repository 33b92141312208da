// Package cache holds the Redis side cache for seat availability. It is invalidated on every
// inventory write and never consulted for booking decisions.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/redis/go-redis/v9"
)

type cachedSeat struct {
	ID         int    `json:"id"`
	SeatNumber string `json:"seat_number"`
	IsBooked   bool   `json:"is_booked"`
}

type SeatCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewSeatCache(client redis.UniversalClient, ttl time.Duration) *SeatCache {
	return &SeatCache{
		client: client,
		ttl:    ttl,
	}
}

// fillIfCurrent writes the seat list only while the show's generation still matches the one
// read before the store was queried. An invalidation in between bumps the generation.
var fillIfCurrent = redis.NewScript(`
	local current = redis.call("GET", KEYS[2]) or "0"
	if current ~= ARGV[1] then
		return 0
	end
	if tonumber(ARGV[3]) > 0 then
		redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
	else
		redis.call("SET", KEYS[1], ARGV[2])
	end
	return 1
`)

var invalidateShow = redis.NewScript(`
	redis.call("INCR", KEYS[2])
	return redis.call("DEL", KEYS[1])
`)

func availableSeatsKey(showID int) string {
	return fmt.Sprintf("available_seats:%d", showID)
}

func generationKey(showID int) string {
	return fmt.Sprintf("available_seats:gen:%d", showID)
}

// GetAvailable returns the cached bookable seats of a show. The boolean is false on a miss.
func (c *SeatCache) GetAvailable(ctx context.Context, showID int) ([]domain.Seat, bool, error) {
	data, err := c.client.Get(ctx, availableSeatsKey(showID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get available seats of show %d: %w", showID, err)
	}

	var cached []cachedSeat
	err = json.Unmarshal(data, &cached)
	if err != nil {
		return nil, false, fmt.Errorf("decode available seats of show %d: %w", showID, err)
	}

	seats := make([]domain.Seat, len(cached))
	for i, s := range cached {
		seats[i] = domain.Seat{ID: s.ID, ShowID: showID, SeatNumber: s.SeatNumber, IsBooked: s.IsBooked}
	}

	return seats, true, nil
}

// Generation returns the show's invalidation counter. Read it before loading seats from the
// store and hand it to SetAvailable.
func (c *SeatCache) Generation(ctx context.Context, showID int) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(showID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get cache generation of show %d: %w", showID, err)
	}

	return gen, nil
}

// SetAvailable caches seats loaded at the given generation. It reports false without writing
// when the show was invalidated since then.
func (c *SeatCache) SetAvailable(ctx context.Context, showID int, generation int64, seats []domain.Seat) (bool, error) {
	cached := make([]cachedSeat, len(seats))
	for i, s := range seats {
		cached[i] = cachedSeat{ID: s.ID, SeatNumber: s.SeatNumber, IsBooked: s.IsBooked}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return false, err
	}

	keys := []string{availableSeatsKey(showID), generationKey(showID)}
	stored, err := fillIfCurrent.Run(ctx, c.client, keys, generation, data, c.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("fill available seats of show %d: %w", showID, err)
	}

	return stored == 1, nil
}

// InvalidateShow drops the cached list and bumps the generation so in-flight fills are discarded.
func (c *SeatCache) InvalidateShow(ctx context.Context, showID int) error {
	keys := []string{availableSeatsKey(showID), generationKey(showID)}
	return invalidateShow.Run(ctx, c.client, keys).Err()
}
