package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

var ErrStatusNotFound = errors.New("subject status not found")

const statusKeyPrefix = "driverguard:subject:"

type IRedis interface {
	SetSubjectStatus(ctx context.Context, subjectID string, payload []byte, expiration time.Duration) error
	GetSubjectStatus(ctx context.Context, subjectID string) ([]byte, error)
	DeleteSubjectStatus(ctx context.Context, subjectID string) error
	Ping(ctx context.Context) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func statusKey(subjectID string) string {
	return statusKeyPrefix + subjectID + ":status"
}

func (r *redisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisClient) SetSubjectStatus(ctx context.Context, subjectID string, payload []byte, expiration time.Duration) error {
	key := statusKey(subjectID)
	if err := r.client.Set(ctx, key, payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting status for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetSubjectStatus(ctx context.Context, subjectID string) ([]byte, error) {
	key := statusKey(subjectID)
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("Status not found for key %s", key))
		return nil, ErrStatusNotFound
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting status for key %s: %v", key, err))
		return nil, err
	}
	return val, nil
}

func (r *redisClient) DeleteSubjectStatus(ctx context.Context, subjectID string) error {
	key := statusKey(subjectID)
	result, err := r.client.Del(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting status for key %s: %v", key, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Status key %s not found for deletion", key))
	}

	return nil
}
