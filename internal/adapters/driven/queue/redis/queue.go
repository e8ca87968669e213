// Package redis implements the task queue on Redis Streams. Consumer
// groups give acknowledgment tracking, so a worker crash mid-ingest leaves
// the task pending rather than lost.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

const (
	taskStream = "nutrimed:tasks"
	taskGroup  = "nutrimed:workers"

	taskKeyPrefix = "nutrimed:task:"

	consumerPrefix = "worker-"

	// Task records outlive the stream entry so Status stays answerable
	taskTTL = 24 * time.Hour
)

// Verify interface compliance
var _ driven.TaskQueue = (*Queue)(nil)

// Queue implements TaskQueue using Redis Streams
type Queue struct {
	client       *redis.Client
	consumerName string
}

// NewQueue creates a new Redis-backed task queue.
// The consumerName should be unique per worker instance.
func NewQueue(client *redis.Client, consumerName string) (*Queue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if consumerName == "" {
		consumerName = fmt.Sprintf("%s%d", consumerPrefix, time.Now().UnixNano())
	}

	q := &Queue{
		client:       client,
		consumerName: consumerName,
	}

	err := q.client.XGroupCreateMkStream(context.Background(), taskStream, taskGroup, "0").Err()
	if err != nil && !isGroupExistsError(err) {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return q, nil
}

// Enqueue adds a task to the queue for processing
func (q *Queue) Enqueue(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return errors.New("task is required")
	}

	taskData, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	pipe := q.client.Pipeline()
	pipe.Set(ctx, taskKeyPrefix+task.ID, taskData, taskTTL)
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: taskStream,
		Values: map[string]interface{}{
			"task_id": task.ID,
			"type":    string(task.Type),
		},
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// DequeueWithTimeout retrieves the next available task, waiting up to
// timeout seconds. Returns nil, nil if nothing arrives in time.
func (q *Queue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	blockDuration := time.Duration(timeout) * time.Second

	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    taskGroup,
		Consumer: q.consumerName,
		Streams:  []string{taskStream, ">"},
		Count:    1,
		Block:    blockDuration,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, nil
	}

	msg := streams[0].Messages[0]
	taskID, ok := msg.Values["task_id"].(string)
	if !ok {
		// Invalid message, acknowledge and skip
		q.client.XAck(ctx, taskStream, taskGroup, msg.ID)
		return nil, nil
	}

	task, err := q.GetTask(ctx, taskID)
	if errors.Is(err, domain.ErrNotFound) {
		// Task record expired, acknowledge and skip
		q.client.XAck(ctx, taskStream, taskGroup, msg.ID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task data: %w", err)
	}

	task.Status = domain.TaskStatusProcessing
	task.UpdatedAt = time.Now()
	q.saveTask(ctx, task)

	// Remember the stream message for ack/nack
	q.client.Set(ctx, taskKeyPrefix+task.ID+":msg", msg.ID, taskTTL)

	return task, nil
}

// Ack acknowledges successful completion of a task
func (q *Queue) Ack(ctx context.Context, taskID string) error {
	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	msgID, err := q.client.Get(ctx, taskKeyPrefix+taskID+":msg").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to get message ID: %w", err)
	}

	task.Status = domain.TaskStatusCompleted
	task.UpdatedAt = time.Now()
	taskData, _ := json.Marshal(task)

	pipe := q.client.Pipeline()
	if msgID != "" {
		pipe.XAck(ctx, taskStream, taskGroup, msgID)
		pipe.XDel(ctx, taskStream, msgID)
	}
	pipe.Set(ctx, taskKeyPrefix+taskID, taskData, taskTTL)
	pipe.Del(ctx, taskKeyPrefix+taskID+":msg")

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to ack task: %w", err)
	}
	return nil
}

// Nack records a failure. The task goes back on the stream until
// MaxRetries is exceeded, then it is marked failed.
func (q *Queue) Nack(ctx context.Context, taskID string, reason string) error {
	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	msgID, _ := q.client.Get(ctx, taskKeyPrefix+taskID+":msg").Result()

	task.Retries++
	task.LastError = reason
	task.UpdatedAt = time.Now()

	pipe := q.client.Pipeline()
	if msgID != "" {
		pipe.XAck(ctx, taskStream, taskGroup, msgID)
		pipe.XDel(ctx, taskStream, msgID)
	}

	if task.Retries <= task.MaxRetries {
		task.Status = domain.TaskStatusPending
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: taskStream,
			Values: map[string]interface{}{
				"task_id": task.ID,
				"type":    string(task.Type),
			},
		})
	} else {
		task.Status = domain.TaskStatusFailed
	}

	taskData, _ := json.Marshal(task)
	pipe.Set(ctx, taskKeyPrefix+taskID, taskData, taskTTL)
	pipe.Del(ctx, taskKeyPrefix+taskID+":msg")

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to nack task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (q *Queue) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	data, err := q.client.Get(ctx, taskKeyPrefix+taskID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &task, nil
}

// Ping checks if the queue backend is healthy
func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close cleans up resources
func (q *Queue) Close() error {
	return q.client.Close()
}

func (q *Queue) saveTask(ctx context.Context, task *domain.Task) {
	taskData, err := json.Marshal(task)
	if err != nil {
		return
	}
	q.client.Set(ctx, taskKeyPrefix+task.ID, taskData, taskTTL)
}

func isGroupExistsError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "BUSYGROUP")
}
