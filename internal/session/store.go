package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Data is the server-side state held for one session.
type Data struct {
	UserID    int64
	UserName  string
	LoggedIn  bool
	CSRFToken string
}

// Store manages server-side session state keyed by an opaque session id.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the session state, or nil when the id is unknown or expired.
	Get(ctx context.Context, sid string) (*Data, error)
	// Token returns the session's anti-forgery token, creating the session
	// and/or the token as needed. The returned sid replaces the caller's
	// (it differs when a fresh session had to be created).
	Token(ctx context.Context, sid string) (token, newSID string, err error)
	// VerifyToken compares a submitted anti-forgery token against the stored
	// one in constant time. Fails closed when either side is empty.
	VerifyToken(ctx context.Context, sid, submitted string) bool
	// Login regenerates the session id and records the authenticated
	// identity, invalidating the old id. Returns the new session id.
	Login(ctx context.Context, oldSID string, userID int64, userName string) (string, error)
	// Destroy removes all session state.
	Destroy(ctx context.Context, sid string) error
}

// RedisStore keeps sessions in Redis hashes with a bounded TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(sid string) string {
	return "session:" + sid
}

// GenerateToken produces a 32-byte cryptographically random anti-forgery
// token, hex-encoded.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// TokenEqual compares two anti-forgery tokens in constant time. It fails
// closed: an empty token on either side never matches.
func TokenEqual(stored, submitted string) bool {
	if stored == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

func (s *RedisStore) Get(ctx context.Context, sid string) (*Data, error) {
	if sid == "" {
		return nil, nil
	}
	fields, err := s.rdb.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	d := &Data{
		UserName:  fields["user_name"],
		CSRFToken: fields["csrf_token"],
	}
	d.UserID, _ = strconv.ParseInt(fields["user_id"], 10, 64)
	d.LoggedIn = fields["logged_in"] == "1"
	return d, nil
}

func (s *RedisStore) Token(ctx context.Context, sid string) (string, string, error) {
	if sid != "" {
		token, err := s.rdb.HGet(ctx, sessionKey(sid), "csrf_token").Result()
		if err != nil && err != redis.Nil {
			return "", "", err
		}
		if token != "" {
			return token, sid, nil
		}
	}
	if sid == "" {
		sid = uuid.NewString()
	}
	token, err := GenerateToken()
	if err != nil {
		return "", "", err
	}
	key := sessionKey(sid)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, "csrf_token", token)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", "", err
	}
	return token, sid, nil
}

func (s *RedisStore) VerifyToken(ctx context.Context, sid, submitted string) bool {
	if sid == "" || submitted == "" {
		return false
	}
	stored, err := s.rdb.HGet(ctx, sessionKey(sid), "csrf_token").Result()
	if err != nil {
		return false
	}
	return TokenEqual(stored, submitted)
}

func (s *RedisStore) Login(ctx context.Context, oldSID string, userID int64, userName string) (string, error) {
	// Carry the anti-forgery token over from the anonymous session so forms
	// rendered before login keep working, then drop the old id entirely.
	var token string
	if oldSID != "" {
		token, _ = s.rdb.HGet(ctx, sessionKey(oldSID), "csrf_token").Result()
	}
	if token == "" {
		var err error
		if token, err = GenerateToken(); err != nil {
			return "", err
		}
	}

	sid := uuid.NewString()
	key := sessionKey(sid)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    strconv.FormatInt(userID, 10),
		"user_name":  userName,
		"logged_in":  "1",
		"csrf_token": token,
	})
	pipe.Expire(ctx, key, s.ttl)
	if oldSID != "" {
		pipe.Del(ctx, sessionKey(oldSID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.rdb.Del(ctx, sessionKey(sid)).Err()
}

var _ Store = (*RedisStore)(nil)
