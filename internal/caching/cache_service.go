package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"labdesk/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Test catalog caching
	GetLabTest(ctx context.Context, testID uuid.UUID) (*models.LabTest, error)
	SetLabTest(ctx context.Context, test *models.LabTest, ttl time.Duration) error
	DeleteLabTest(ctx context.Context, testID uuid.UUID) error

	// Analytics snapshot caching; payloads are marshalled by the caller
	GetAnalyticsSnapshot(ctx context.Context, key string) ([]byte, error)
	SetAnalyticsSnapshot(ctx context.Context, key string, data []byte, ttl time.Duration) error
	DeleteAnalyticsSnapshot(ctx context.Context, key string) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetLabTest(ctx context.Context, testID uuid.UUID) (*models.LabTest, error) {
	key := fmt.Sprintf("labdesk:test:%s", testID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var test models.LabTest
	if err := json.Unmarshal(data, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *redisCacheService) SetLabTest(ctx context.Context, test *models.LabTest, ttl time.Duration) error {
	key := fmt.Sprintf("labdesk:test:%s", test.ID.String())
	data, err := json.Marshal(test)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteLabTest(ctx context.Context, testID uuid.UUID) error {
	key := fmt.Sprintf("labdesk:test:%s", testID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetAnalyticsSnapshot(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, fmt.Sprintf("labdesk:analytics:%s", key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return data, nil
}

func (r *redisCacheService) SetAnalyticsSnapshot(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return r.client.Set(ctx, fmt.Sprintf("labdesk:analytics:%s", key), data, ttl).Err()
}

func (r *redisCacheService) DeleteAnalyticsSnapshot(ctx context.Context, key string) error {
	return r.client.Del(ctx, fmt.Sprintf("labdesk:analytics:%s", key)).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
