package repository

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const settingsCacheKey = "settings:widget"

// CacheRepository : кэш агрегата настроек виджета в Redis.
// Настройки читаются каждым открытием виджета, а меняются редко.
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetSettings(ctx context.Context, settings *model.WidgetSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return util.LogError("ошибка сериализации настроек", err)
	}

	cmd := r.client.Client.Set(ctx, settingsCacheKey, data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetSettings(ctx context.Context) (*model.WidgetSettings, error) {
	val, err := r.client.Client.Get(ctx, settingsCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения настроек из Redis", err)
	}

	var settings model.WidgetSettings
	if err := json.Unmarshal([]byte(val), &settings); err != nil {
		return nil, util.LogError("ошибка десериализации настроек из кэша", err)
	}
	return &settings, nil
}

func (r *CacheRepository) Invalidate(ctx context.Context) error {
	if err := r.client.Client.Del(ctx, settingsCacheKey).Err(); err != nil {
		return util.LogError("ошибка удаления настроек из Redis", err)
	}
	return nil
}
