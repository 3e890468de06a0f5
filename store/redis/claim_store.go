package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-paywebhooks/inbound"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "paywebhooks:claims"

	statusProcessing = "processing"
	statusRetryReady = "retry_ready"
	statusComplete   = "complete"

	claimSeparator = "#"
	defaultLease   = 10 * time.Minute
)

// claimScript creates the claim hash only when no claim for the key exists.
var claimScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'status', 'processing', 'claim_id', ARGV[1], 'ttl_ms', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return 1
`)

// settleScript moves a processing claim to ARGV[2]. An empty ARGV[3] keeps
// the ttl stored at claim time; a non-positive ttl releases the key.
var settleScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'claim_id') ~= ARGV[1] then
	return 0
end
if redis.call('HGET', KEYS[1], 'status') ~= 'processing' then
	return 0
end
local ttl
if ARGV[3] == '' then
	ttl = tonumber(redis.call('HGET', KEYS[1], 'ttl_ms'))
else
	ttl = tonumber(ARGV[3])
end
if ttl == nil or ttl <= 0 then
	redis.call('DEL', KEYS[1])
	return 1
end
redis.call('HSET', KEYS[1], 'status', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ttl)
return 1
`)

// ClaimStore keeps one redis hash per idempotency key. The hash expires with
// the lease while processing, with the claim ttl once complete, and at the
// retry time after a failure, so an absent key is always claimable.
type ClaimStore struct {
	Prefix string
	Now    func() time.Time

	client redis.UniversalClient
}

func NewClaimStore(client redis.UniversalClient) (*ClaimStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redisstore: redis client is required")
	}
	return &ClaimStore{Prefix: DefaultPrefix, client: client}, nil
}

// NewClaimStoreFromURL parses a redis:// or rediss:// url.
func NewClaimStoreFromURL(rawURL string) (*ClaimStore, error) {
	options, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("redisstore: parse url: %w", err)
	}
	return NewClaimStore(redis.NewClient(options))
}

func (s *ClaimStore) Claim(ctx context.Context, key string, lease time.Duration) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, fmt.Errorf("redisstore: claim store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, fmt.Errorf("redisstore: idempotency key is required")
	}
	if lease <= 0 {
		lease = defaultLease
	}

	claimID := key + claimSeparator + uuid.NewString()
	created, err := claimScript.Run(ctx, s.client, []string{s.redisKey(key)}, claimID, lease.Milliseconds()).Int()
	if err != nil {
		return "", false, fmt.Errorf("redisstore: claim %q: %w", key, err)
	}
	if created != 1 {
		return "", false, nil
	}
	return claimID, true, nil
}

func (s *ClaimStore) Complete(ctx context.Context, claimID string) error {
	return s.settle(ctx, claimID, statusComplete, "")
}

func (s *ClaimStore) Fail(ctx context.Context, claimID string, _ error, retryAt time.Time) error {
	if retryAt.IsZero() {
		return s.settle(ctx, claimID, statusRetryReady, "0")
	}
	wait := retryAt.Sub(s.now())
	return s.settle(ctx, claimID, statusRetryReady, strconv.FormatInt(wait.Milliseconds(), 10))
}

// Status returns the stored status of key, or "" when it is claimable.
func (s *ClaimStore) Status(ctx context.Context, key string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("redisstore: claim store is not configured")
	}
	status, err := s.client.HGet(ctx, s.redisKey(strings.TrimSpace(key)), "status").Result()
	if err == redis.Nil {
		return "", nil
	}
	return status, err
}

func (s *ClaimStore) settle(ctx context.Context, claimID string, status string, ttlMillis string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redisstore: claim store is not configured")
	}
	claimID = strings.TrimSpace(claimID)
	idx := strings.LastIndex(claimID, claimSeparator)
	if idx <= 0 {
		return fmt.Errorf("redisstore: invalid claim id %q", claimID)
	}
	key := claimID[:idx]
	if err := settleScript.Run(ctx, s.client, []string{s.redisKey(key)}, claimID, status, ttlMillis).Err(); err != nil {
		return fmt.Errorf("redisstore: settle %q: %w", key, err)
	}
	return nil
}

func (s *ClaimStore) redisKey(key string) string {
	prefix := strings.TrimSpace(s.Prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + ":" + key
}

func (s *ClaimStore) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

var _ inbound.ClaimStore = (*ClaimStore)(nil)
