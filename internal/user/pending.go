package user

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingTTL = 30 * time.Minute

// PendingStore keeps registrations that have not been verified yet. Nothing
// touches the users table until the emailed code comes back.
type PendingStore interface {
	Save(ctx context.Context, reg PendingRegistration, code string) error
	Consume(ctx context.Context, email, code string) (*PendingRegistration, error)
}

type PendingRegistration struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Phone        string    `json:"phone"`
	Created      time.Time `json:"created"`
}

type pendingEntry struct {
	Code         string              `json:"code"`
	Registration PendingRegistration `json:"registration"`
}

type redisPendingStore struct {
	redis *redis.Client
}

func NewPendingStore(rdb *redis.Client) PendingStore {
	return &redisPendingStore{redis: rdb}
}

func pendingKey(email string) string {
	return "pending_registration:" + email
}

func (s *redisPendingStore) Save(ctx context.Context, reg PendingRegistration, code string) error {
	data, err := json.Marshal(pendingEntry{Code: code, Registration: reg})
	if err != nil {
		return err
	}

	return s.redis.Set(ctx, pendingKey(reg.Email), data, pendingTTL).Err()
}

func (s *redisPendingStore) Consume(ctx context.Context, email, code string) (*PendingRegistration, error) {
	data, err := s.redis.Get(ctx, pendingKey(email)).Bytes()
	if err != nil {
		return nil, err
	}

	var entry pendingEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	if entry.Code != code {
		return nil, fmt.Errorf("verification code mismatch")
	}

	// One-shot: a consumed code cannot be replayed.
	if err := s.redis.Del(ctx, pendingKey(email)).Err(); err != nil {
		return nil, err
	}

	return &entry.Registration, nil
}

// GenerateCode returns a 6-digit numeric verification code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
