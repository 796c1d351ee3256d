package config

import (
	"errors"
	"time"

	"FacultyManager/internal/bootstrap"
)

const SessionCookieName = "session"

type SessionConfig struct {
	Key          []byte
	TTL          time.Duration
	SecureCookie bool
}

func NewSessionConfig() (*SessionConfig, error) {
	key := bootstrap.Getenv("SESSION_KEY", "")
	if key == "" {
		return nil, errors.New("SESSION_KEY not set")
	}
	ttl, err := bootstrap.GetenvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	secure, err := bootstrap.GetenvBool("SESSION_SECURE_COOKIE", false)
	if err != nil {
		return nil, err
	}
	return &SessionConfig{Key: []byte(key), TTL: ttl, SecureCookie: secure}, nil
}

type ServerConfig struct {
	Addr string
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{Addr: bootstrap.Getenv("HTTP_ADDR", ":8080")}
}

type NotificationConfig struct {
	AdminEmail string
}

func NewNotificationConfig() *NotificationConfig {
	return &NotificationConfig{AdminEmail: bootstrap.Getenv("ADMIN_EMAIL", "admin_email@example.com")}
}
