// Package slots реализует кэш разрешённых слотов дня поверх Redis.
// Кэш ускоряет публичную форму бронирования: чтение доступности -
// самый частый запрос, а его разрешение требует трёх запросов к БД.
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кэш слотов дня. Ошибки Redis не прерывают запрос -
// промах кэша всегда безопаснее отказа.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// New создает кэш слотов с заданным TTL
func New(client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// slotEntry сериализованное представление слота в кэше
type slotEntry struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
	Remaining int    `json:"remaining"`
}

func key(tenantID int64, date time.Time) string {
	return fmt.Sprintf("slots:%d:%s", tenantID, date.Format(domain.DateFormat))
}

// Get возвращает закэшированные слоты дня.
// Второй результат false означает промах кэша.
func (c *Cache) Get(ctx context.Context, tenantID int64, date time.Time) ([]domain.TimeSlot, bool) {
	data, err := c.client.Get(ctx, key(tenantID, date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("slots cache: get failed for tenant=%d, date=%s: %v",
				tenantID, date.Format(domain.DateFormat), err)
		}
		return nil, false
	}

	var entries []slotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("slots cache: corrupt entry for tenant=%d, date=%s: %v",
			tenantID, date.Format(domain.DateFormat), err)
		return nil, false
	}

	slots := make([]domain.TimeSlot, len(entries))
	for i, e := range entries {
		slots[i] = domain.TimeSlot{
			StartTime: types.TimeString(e.StartTime),
			EndTime:   types.TimeString(e.EndTime),
			Capacity:  e.Capacity,
			Remaining: e.Remaining,
		}
	}
	return slots, true
}

// Set кладёт слоты дня в кэш
func (c *Cache) Set(ctx context.Context, tenantID int64, date time.Time, slots []domain.TimeSlot) {
	entries := make([]slotEntry, len(slots))
	for i, s := range slots {
		entries[i] = slotEntry{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Capacity:  s.Capacity,
			Remaining: s.Remaining,
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("slots cache: marshal failed for tenant=%d: %v", tenantID, err)
		return
	}

	if err := c.client.Set(ctx, key(tenantID, date), data, c.ttl).Err(); err != nil {
		c.logger.Warn("slots cache: set failed for tenant=%d, date=%s: %v",
			tenantID, date.Format(domain.DateFormat), err)
	}
}

// Invalidate сбрасывает кэш слотов даты после изменения бронирований
// или расписания
func (c *Cache) Invalidate(ctx context.Context, tenantID int64, date time.Time) {
	if err := c.client.Del(ctx, key(tenantID, date)).Err(); err != nil {
		c.logger.Warn("slots cache: invalidate failed for tenant=%d, date=%s: %v",
			tenantID, date.Format(domain.DateFormat), err)
	}
}

// InvalidateTenant сбрасывает кэш всех дат тенанта.
// Используется после изменения недельного шаблона, которое затрагивает
// неопределённое множество дат.
func (c *Cache) InvalidateTenant(ctx context.Context, tenantID int64) {
	pattern := fmt.Sprintf("slots:%d:*", tenantID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("slots cache: scan failed for tenant=%d: %v", tenantID, err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("slots cache: bulk invalidate failed for tenant=%d: %v", tenantID, err)
	}
}
