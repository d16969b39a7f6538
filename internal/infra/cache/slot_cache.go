package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
)

const keyPrefix = "slots"

// SlotCache guarda a grade de horários por restaurante, data e tamanho do grupo.
// Qualquer escrita de reserva na data invalida todas as entradas da data.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{client: client, ttl: ttl}
}

func slotKey(restaurantID uint, date string, partySize int) string {
	return fmt.Sprintf("%s:%d:%s:%d", keyPrefix, restaurantID, date, partySize)
}

func (c *SlotCache) Get(
	ctx context.Context,
	restaurantID uint,
	date string,
	partySize int,
) ([]availability.ShiftSlots, bool, error) {

	raw, err := c.client.Get(ctx, slotKey(restaurantID, date, partySize)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "slot cache get")
	}

	var out []availability.ShiftSlots
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, errs.Wrap(err, "slot cache decode")
	}
	return out, true, nil
}

func (c *SlotCache) Set(
	ctx context.Context,
	restaurantID uint,
	date string,
	partySize int,
	value []availability.ShiftSlots,
) error {
	if c.ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(err, "slot cache encode")
	}
	return errs.Wrap(
		c.client.Set(ctx, slotKey(restaurantID, date, partySize), raw, c.ttl).Err(),
		"slot cache set",
	)
}

// Invalidate remove as grades da data para todos os tamanhos de grupo.
func (c *SlotCache) Invalidate(ctx context.Context, restaurantID uint, date string) error {
	pattern := fmt.Sprintf("%s:%d:%s:*", keyPrefix, restaurantID, date)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return errs.Wrap(err, "slot cache scan")
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return errs.Wrap(err, "slot cache del")
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
