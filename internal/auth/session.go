package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

// SessionManager persists the server-side session records in Redis. The
// cookie only carries a signed token binding the session id to the user; the
// Redis record is the source of truth, so deleting it ends the session no
// matter what cookies a client still holds.
type SessionManager struct {
	rdb *redis.Client
}

func NewSessionManager(rdb *redis.Client) *SessionManager {
	return &SessionManager{rdb: rdb}
}

// Create allocates a fresh session id for the user and stores it with the
// given lifetime. A longer ttl is what "remember me" amounts to.
func (s *SessionManager) Create(userID uint64, ttl time.Duration) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	sid := hex.EncodeToString(buf)
	key := fmt.Sprintf("nk:sess:%s", sid)
	if err := s.rdb.Set(ctx, key, userID, ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

// Lookup resolves a session id back to the owning user id. A missing or
// expired record returns redis.Nil.
func (s *SessionManager) Lookup(sid string) (uint64, error) {
	key := fmt.Sprintf("nk:sess:%s", sid)
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(val, 10, 64)
}

// Destroy removes the session record, used during logout.
func (s *SessionManager) Destroy(sid string) error {
	key := fmt.Sprintf("nk:sess:%s", sid)
	return s.rdb.Del(ctx, key).Err()
}
