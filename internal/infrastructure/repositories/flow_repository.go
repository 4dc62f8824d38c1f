package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/otpflow"
)

// FlowRepositoryImpl implements otpflow.Store using Redis
type FlowRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewFlowRepository creates a flow store whose records expire after ttl of inactivity
func NewFlowRepository(client *redis.Client, ttl time.Duration) otpflow.Store {
	return &FlowRepositoryImpl{
		client: client,
		prefix: "otpflow:",
		ttl:    ttl,
	}
}

// Save writes the flow and refreshes its TTL
func (r *FlowRepositoryImpl) Save(ctx context.Context, flow *otpflow.Flow) error {
	data, err := json.Marshal(otpflow.ToRecord(flow))
	if err != nil {
		return fmt.Errorf("failed to marshal otp flow: %w", err)
	}
	return r.client.Set(ctx, r.prefix+flow.ID, data, r.ttl).Err()
}

func (r *FlowRepositoryImpl) Find(ctx context.Context, id string) (*otpflow.Flow, error) {
	data, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrFlowNotFound
		}
		return nil, err
	}

	var record otpflow.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp flow: %w", err)
	}
	return otpflow.FromRecord(record)
}

func (r *FlowRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.prefix+id).Err()
}
