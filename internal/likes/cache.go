// Package likes configures the generic engine for project likes and keeps
// the hot like counters in redis, folded back into projects.likes_count by
// a periodic reconciler.
package likes

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	deltaKeyPrefix = "likes:delta:" // pending counter delta per project: likes:delta:{project_id}
	dirtySetKey    = "likes:dirty"  // set of project ids with a pending delta
	deltaTTL       = 24 * time.Hour
)

// Counter accumulates like-count deltas in redis so bursts of likes do not
// turn into row updates on the hot path.
type Counter struct {
	client *redis.Client
}

func NewCounter(client *redis.Client) *Counter {
	return &Counter{client: client}
}

func deltaKey(projectID int64) string {
	return deltaKeyPrefix + strconv.FormatInt(projectID, 10)
}

func (c *Counter) bump(ctx context.Context, projectID, by int64) error {
	pipe := c.client.Pipeline()
	pipe.IncrBy(ctx, deltaKey(projectID), by)
	pipe.Expire(ctx, deltaKey(projectID), deltaTTL)
	pipe.SAdd(ctx, dirtySetKey, projectID)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *Counter) Incr(ctx context.Context, projectID int64) error {
	return c.bump(ctx, projectID, 1)
}

func (c *Counter) Decr(ctx context.Context, projectID int64) error {
	return c.bump(ctx, projectID, -1)
}

// PendingDelta reports the not-yet-reconciled delta for a project.
func (c *Counter) PendingDelta(ctx context.Context, projectID int64) (int64, error) {
	v, err := c.client.Get(ctx, deltaKey(projectID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// TakeDelta atomically reads and clears a project's pending delta.
func (c *Counter) TakeDelta(ctx context.Context, projectID int64) (int64, error) {
	v, err := c.client.GetDel(ctx, deltaKey(projectID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// TakeDirty atomically drains the set of project ids with pending deltas.
func (c *Counter) TakeDirty(ctx context.Context) ([]int64, error) {
	members, err := c.client.SMembers(ctx, dirtySetKey).Result()
	if err != nil {
		return nil, err
	}
	if len(members) > 0 {
		if err := c.client.SRem(ctx, dirtySetKey, toAny(members)...).Err(); err != nil {
			return nil, err
		}
	}

	out := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
