package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
)

// DivisionCacheRepository caches administrative-division listings in Redis
type DivisionCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

func NewDivisionCacheRepository(client *redis.Client, expiration time.Duration) *DivisionCacheRepository {
	return &DivisionCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func divisionKey(kind, parentCode string) string {
	if parentCode == "" {
		return fmt.Sprintf("psgc:%s", kind)
	}
	return fmt.Sprintf("psgc:%s:%s", kind, parentCode)
}

// Get reports ok=false on a cache miss.
func (r *DivisionCacheRepository) Get(ctx context.Context, kind, parentCode string) ([]models.Division, bool, error) {
	key := divisionKey(kind, parentCode)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Log.Infow("key", key, "result", "miss")
		return nil, false, nil
	}
	if err != nil {
		logger.Log.Infow("key", key, "error", err)
		return nil, false, err
	}

	var divisions []models.Division
	err = json.Unmarshal([]byte(val), &divisions)

	logger.Log.Infow(
		"key", key,
		"result", len(divisions),
		"error", err,
	)

	if err != nil {
		return nil, false, err
	}
	return divisions, true, nil
}

func (r *DivisionCacheRepository) Set(ctx context.Context, kind, parentCode string, divisions []models.Division) error {
	key := divisionKey(kind, parentCode)

	payload, err := json.Marshal(divisions)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, string(payload), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"count", len(divisions),
		"error", err,
	)

	return err
}
