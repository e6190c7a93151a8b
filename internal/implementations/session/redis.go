package session

import (
	"context"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/user"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v9"
)

// RedisRepository stores "session::<token>" -> user ID with the session TTL
// and keeps the tokens of every user in the "user-sessions::<user ID>" set.
type RedisRepository struct {
	redisClient    *redis.Client
	userRepository user.UserRepository
	ttl            time.Duration
}

func NewRedisRepository(
	redisClient *redis.Client,
	userRepository user.UserRepository,
	ttl time.Duration,
) *RedisRepository {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &RedisRepository{
		redisClient:    redisClient,
		userRepository: userRepository,
		ttl:            ttl,
	}
}

func (r *RedisRepository) Create(ctx context.Context, input user.CreateSessionInput) error {
	sessionKey := sessionKey(input.Token)
	userKey := userSessionsKey(input.UserID)
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey, int64(input.UserID), r.ttl)
		pipe.SAdd(ctx, userKey, string(input.Token))
		pipe.Expire(ctx, userKey, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}
	return nil
}

func (r *RedisRepository) GetUserByToken(ctx context.Context, token user.SessionToken) (u user.User, err error) {
	rawUserID, err := r.redisClient.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, fmt.Errorf("could not get session: %w", err)
	}
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return u, fmt.Errorf("session holds invalid user ID %q: %w", rawUserID, err)
	}
	return r.userRepository.GetByID(ctx, user.ID(userID))
}

func (r *RedisRepository) Delete(ctx context.Context, token user.SessionToken) (userID user.ID, err error) {
	rawUserID, err := r.redisClient.GetDel(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return userID, user.ErrSessionDoesNotExist
	}
	if err != nil {
		return userID, fmt.Errorf("could not delete session: %w", err)
	}
	id, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return userID, fmt.Errorf("session holds invalid user ID %q: %w", rawUserID, err)
	}
	userID = user.ID(id)
	if err := r.redisClient.SRem(ctx, userSessionsKey(userID), string(token)).Err(); err != nil {
		return userID, fmt.Errorf("could not update user sessions: %w", err)
	}
	return userID, nil
}

func (r *RedisRepository) DeleteAllForUser(ctx context.Context, userID user.ID) error {
	userKey := userSessionsKey(userID)
	tokens, err := r.redisClient.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("could not list user sessions: %w", err)
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKey(user.SessionToken(token)))
	}
	keys = append(keys, userKey)
	if err := r.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("could not delete user sessions: %w", err)
	}
	return nil
}

func sessionKey(token user.SessionToken) string {
	return "session::" + string(token)
}

func userSessionsKey(userID user.ID) string {
	return fmt.Sprintf("user-sessions::%d", userID)
}
