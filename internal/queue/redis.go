package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultKey is the Redis list the server pushes to and workers pop from.
const defaultKey = "interview_agent:tasks"

// blockTimeout bounds each BRPOP so workers notice context cancellation.
const blockTimeout = 5 * time.Second

// RedisQueue is a Redis-list backed Queue shared by the API server and the
// worker process.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue connects to Redis and verifies the connection.
func NewRedisQueue(ctx context.Context, redisURL string) (*RedisQueue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisQueue{client: client, key: defaultKey}, nil
}

func (q *RedisQueue) Enqueue(ctx context.Context, task Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Task, error) {
	for {
		vals, err := q.client.BRPop(ctx, blockTimeout, q.key).Result()
		if err == redis.Nil {
			if ctx.Err() != nil {
				return Task{}, ctx.Err()
			}
			continue
		}
		if err != nil {
			return Task{}, fmt.Errorf("failed to dequeue task: %w", err)
		}
		// BRPOP returns [key, value].
		var task Task
		if err := json.Unmarshal([]byte(vals[1]), &task); err != nil {
			return Task{}, fmt.Errorf("failed to decode task: %w", err)
		}
		return task, nil
	}
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
