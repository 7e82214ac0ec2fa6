package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/shared"
)

// Client wraps asynq.Client for enqueueing notification tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueReviewSubmitted queues the moderation notification for a new review.
func (c *Client) EnqueueReviewSubmitted(ctx context.Context, payload shared.ReviewSubmittedPayload) error {
	return c.enqueue(ctx, shared.TypeReviewSubmittedEmail, payload)
}

// EnqueueReviewApproved queues the owner notification for an approved review.
func (c *Client) EnqueueReviewApproved(ctx context.Context, payload shared.ReviewApprovedPayload) error {
	return c.enqueue(ctx, shared.TypeReviewApprovedEmail, payload)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue("default"),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	return nil
}
