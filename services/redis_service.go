package services

import (
	"context"
	"time"

	"hotel/constants"
	"hotel/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Hàm lấy data từ Redis. found = false khi key không tồn tại.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	cachedData, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return false, err
	}
	return true, nil
}

// Hàm lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// Hàm xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}

// RoomCache giữ các danh sách phòng trong Redis. Client nil thì mọi thao tác là no-op.
// Lỗi Redis chỉ được log, không làm hỏng request.
type RoomCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRoomCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RoomCache {
	return &RoomCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *RoomCache) Get(ctx context.Context, key string, target interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	found, err := GetFromRedis(ctx, c.rdb, key, target)
	if err != nil {
		c.logger.Error("Lỗi khi đọc cache %s: %v", key, err)
		return false
	}
	return found
}

func (c *RoomCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := SetToRedis(ctx, c.rdb, key, value, c.ttl); err != nil {
		c.logger.Error("Lỗi khi lưu cache %s: %v", key, err)
	}
}

// Invalidate xóa mọi danh sách phòng đã cache.
func (c *RoomCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := DeleteFromRedis(ctx, c.rdb, constants.CacheKeyRoomsAll, constants.CacheKeyRoomsAvailable, constants.CacheKeyRoomsUnavailable); err != nil {
		c.logger.Error("Lỗi khi xóa cache phòng: %v", err)
	}
}
