package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrInvalidToken = errors.New("invalid session token")

type cookieClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// Store persists sessions as JSON records in redis, keyed by a random session
// id. The id travels in an HS256-signed token so a tampered cookie is simply
// treated as no session.
type Store struct {
	redis  *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewStore(rdb *redis.Client, secret string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{redis: rdb, secret: []byte(secret), ttl: ttl}
}

func (s *Store) key(id string) string {
	return "ratnabot:session:" + id
}

// New creates an empty anonymous session. It is not persisted until Save.
func (s *Store) New() *Session {
	return &Session{ID: uuid.NewString(), Identity: Anonymous()}
}

// Load resolves a cookie token to its stored session. A missing, expired or
// tampered token yields a fresh session rather than an error.
func (s *Store) Load(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return s.New(), nil
	}
	id, err := s.parseToken(token)
	if err != nil {
		return s.New(), nil
	}

	raw, err := s.redis.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return s.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return s.New(), nil
	}
	if sess.ID == "" {
		sess.ID = id
	}
	return &sess, nil
}

// Save writes the session record and returns the signed cookie token for it.
func (s *Store) Save(ctx context.Context, sess *Session) (string, error) {
	b, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(sess.ID), string(b), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return s.signToken(sess.ID)
}

func (s *Store) Destroy(ctx context.Context, sess *Session) error {
	if err := s.redis.Del(ctx, s.key(sess.ID)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) signToken(id string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
		SessionID: id,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *Store) parseToken(token string) (string, error) {
	claims := &cookieClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
