package util

import (
	"context"
	"fmt"
	"time"

	"github.com/carelog/hospital-admin/config"
	"github.com/redis/go-redis/v9"
)

// removeSessionScript removes one token from a user's session set and deletes
// the set when it becomes empty, in a single round trip.
const removeSessionScript = `
	local removed = redis.call('SREM', KEYS[1], ARGV[1])
	if removed > 0 then
		local count = redis.call('SCARD', KEYS[1])
		if count == 0 then
			redis.call('DEL', KEYS[1])
		end
	end
	return removed
`

// SessionKey builds the Redis key holding a cached session.
func SessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func userSetKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}

// CacheSession stores the resolved identity under the session key as
// "<userID>:<role>", the format SessionAuth parses on cache hits.
func CacheSession(token, userID, role string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	val := fmt.Sprintf("%s:%s", userID, role)
	return rdb.Set(context.Background(), SessionKey(token), val, ttl).Err()
}

// AddSessionToUserSet adds the session token to the per-user Redis set so all
// of a user's sessions can be invalidated together. The set lives as long as
// the longest session in it.
func AddSessionToUserSet(userID, token string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	key := userSetKey(userID)
	if err := rdb.SAdd(ctx, key, token).Err(); err != nil {
		return err
	}
	return rdb.Expire(ctx, key, ttl).Err()
}

// RemoveSessionTokenFromUserSet removes a single session token from the
// per-user set. If the set becomes empty after removal, it is deleted.
func RemoveSessionTokenFromUserSet(userID, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Eval(context.Background(), removeSessionScript, []string{userSetKey(userID)}, token).Err()
}

// InvalidateUserSessions deletes every cached session for the given user and
// removes the per-user set. Best-effort: callers may ignore the error.
func InvalidateUserSessions(userID string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	key := userSetKey(userID)
	members, err := rdb.SMembers(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	for _, tok := range members {
		_ = rdb.Del(ctx, SessionKey(tok)).Err()
	}
	return rdb.Del(ctx, key).Err()
}
