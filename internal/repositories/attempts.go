package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/bankcore/internal/logger"
)

// PIN-protected flows with separate attempt counters
const (
	FlowTransfer = "transfer"
	FlowDeposit  = "deposit"
	FlowManager  = "manager"
)

// AttemptRepository stores failed PIN attempt counters per session and flow in Redis
type AttemptRepository struct {
	client *redis.Client
	exp    time.Duration // counters vanish after this much inactivity
}

func NewAttemptRepository(client *redis.Client, expiration time.Duration) *AttemptRepository {
	return &AttemptRepository{
		client: client,
		exp:    expiration,
	}
}

func attemptKey(session, flow string) string {
	return fmt.Sprintf("pin_attempts:%s:%s", session, flow)
}

// incrAttemptSource bumps the counter and refreshes its expiry in one step.
const incrAttemptSource = `
local n = redis.call("INCR", KEYS[1])
redis.call("PEXPIRE", KEYS[1], ARGV[1])
return n
`

var incrAttemptScript = redis.NewScript(incrAttemptSource)

// Incr counts one PIN attempt and returns the counter including it.
func (r *AttemptRepository) Incr(ctx context.Context, session, flow string) (int, error) {
	key := attemptKey(session, flow)

	n, err := incrAttemptScript.Run(ctx, r.client, []string{key}, r.exp.Milliseconds()).Int()

	logger.Log.Infow("incr PIN attempts",
		"key", key,
		"result", n,
		"error", err,
	)

	return n, err
}

// Reset drops the counter.
func (r *AttemptRepository) Reset(ctx context.Context, session, flow string) error {
	key := attemptKey(session, flow)

	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("reset PIN attempts",
		"key", key,
		"error", err,
	)

	return err
}
