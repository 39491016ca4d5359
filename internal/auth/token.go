package auth

import (
	"context" // Context for Redis operations
	"errors"
	"strconv" // String conversion for user IDs
	"strings"

	"github.com/google/uuid"       // Token generation
	"github.com/redis/go-redis/v9" // Redis client
)

// ErrUnknownToken is returned when a presented token maps to no user
var ErrUnknownToken = errors.New("unknown token")

// Redis key prefixes for the two directions of the token table
const (
	tokenKeyPrefix = "auth:token:" // token -> user ID
	userKeyPrefix  = "auth:user:"  // user ID -> token
)

// TokenStore keeps the opaque bearer tokens in Redis. Each user holds at
// most one token; logins reuse the existing token instead of rotating it.
type TokenStore struct {
	rdb *redis.Client // Redis client
}

// NewTokenStore creates a TokenStore backed by the given Redis client
func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

// userKey builds the user ID -> token key
func userKey(userID uint) string {
	return userKeyPrefix + strconv.Itoa(int(userID))
}

// Issue returns the user's existing token, or mints and stores a new one.
// Tokens have no TTL; they stay valid until the user is deleted.
func (s *TokenStore) Issue(ctx context.Context, userID uint) (string, error) {
	tok, err := s.rdb.Get(ctx, userKey(userID)).Result() // Look for an existing token
	if err == nil {
		return tok, nil // Reuse the stable token
	}
	if err != redis.Nil {
		return "", err // Redis failure
	}
	tok = strings.ReplaceAll(uuid.NewString(), "-", "") // Opaque 32-char token
	// Store both directions atomically
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, tokenKeyPrefix+tok, int64(userID), 0)
	pipe.Set(ctx, userKey(userID), tok, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return tok, nil
}

// Resolve maps a presented token back to a user ID
func (s *TokenStore) Resolve(ctx context.Context, token string) (uint, error) {
	v, err := s.rdb.Get(ctx, tokenKeyPrefix+token).Int64() // Look up the token
	if err == redis.Nil {
		return 0, ErrUnknownToken // No such token
	}
	if err != nil {
		return 0, err // Redis failure
	}
	return uint(v), nil
}

// Revoke removes the user's token, if any. Used when the account is deleted.
func (s *TokenStore) Revoke(ctx context.Context, userID uint) error {
	tok, err := s.rdb.Get(ctx, userKey(userID)).Result() // Find the user's token
	if err == redis.Nil {
		return nil // Nothing to revoke
	}
	if err != nil {
		return err
	}
	// Delete both directions
	return s.rdb.Del(ctx, tokenKeyPrefix+tok, userKey(userID)).Err()
}
