package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"FacultyManager/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the payload of the session cookie. The subject carries the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id encoded in the subject.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Session is the authenticated caller attached to a request context.
type Session struct {
	UserID   int64
	Username string
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From returns the session stored in ctx, if any.
func From(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// Manager signs and verifies session tokens with an HMAC key.
type Manager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewManager(cfg *config.SessionConfig) *Manager {
	return &Manager{key: cfg.Key, ttl: cfg.TTL, now: time.Now}
}

func (m *Manager) Key() []byte {
	return m.key
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Issue(userID int64, username string) (string, error) {
	now := m.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// FromClaims converts verified claims into a Session.
func FromClaims(claims *Claims) (Session, error) {
	id, err := claims.UserID()
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	return Session{UserID: id, Username: claims.Username}, nil
}
