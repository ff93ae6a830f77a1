package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

const TTL = 10 * time.Minute

// Store keeps one-time reset codes in redis with a 10 minute expiry.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(userID uint) string {
	return fmt.Sprintf("otp:reset:%d", userID)
}

func Generate(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}

func (s *Store) Save(ctx context.Context, userID uint, code string) error {
	return s.client.Set(ctx, key(userID), code, TTL).Err()
}

// Verify checks the code and consumes it on success.
func (s *Store) Verify(ctx context.Context, userID uint, code string) (bool, error) {
	stored, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if stored != code {
		return false, nil
	}

	s.client.Del(ctx, key(userID))
	return true, nil
}
