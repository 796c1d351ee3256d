package config

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"FacultyManager/internal/bootstrap"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
)

// EmailSender delivers a single plain text message to one recipient.
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

type MailConfig struct {
	Transport    string
	Host         string
	Port         int
	UseTLS       bool
	Username     string
	Password     string
	From         string
	ResendAPIKey string
}

func NewMailConfig() (*MailConfig, error) {
	port, err := bootstrap.GetenvInt("MAIL_PORT", 587)
	if err != nil {
		return nil, err
	}
	useTLS, err := bootstrap.GetenvBool("MAIL_USE_TLS", true)
	if err != nil {
		return nil, err
	}
	cfg := &MailConfig{
		Transport:    strings.ToLower(bootstrap.Getenv("MAIL_TRANSPORT", TransportSMTP)),
		Host:         bootstrap.Getenv("MAIL_SERVER", "smtp.gmail.com"),
		Port:         port,
		UseTLS:       useTLS,
		Username:     bootstrap.Getenv("MAIL_USERNAME", ""),
		Password:     bootstrap.Getenv("MAIL_PASSWORD", ""),
		ResendAPIKey: bootstrap.Getenv("RESEND_API_KEY", ""),
	}
	cfg.From = bootstrap.Getenv("MAIL_DEFAULT_SENDER", cfg.Username)

	switch cfg.Transport {
	case TransportSMTP:
		if cfg.Host == "" {
			return nil, errors.New("MAIL_SERVER not set")
		}
	case TransportResend:
		if cfg.ResendAPIKey == "" {
			return nil, errors.New("RESEND_API_KEY not set")
		}
	default:
		return nil, fmt.Errorf("unknown MAIL_TRANSPORT %q", cfg.Transport)
	}
	if cfg.From == "" {
		return nil, errors.New("MAIL_DEFAULT_SENDER not set")
	}
	return cfg, nil
}

func NewEmailService(lc fx.Lifecycle, config *MailConfig, log *zap.Logger) EmailSender {
	var sender EmailSender
	switch config.Transport {
	case TransportResend:
		sender = NewResendEmailService(config)
	default:
		sender = NewSMTPEmailService(config)
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Email Service initialized", zap.String("transport", config.Transport))
			return nil
		},
	})
	return sender
}

// SMTPEmailService sends through an authenticated SMTP relay. STARTTLS is
// negotiated when UseTLS is set; port 465 uses implicit TLS.
type SMTPEmailService struct {
	Config *MailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config *MailConfig) *SMTPEmailService {
	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: config.Host, MinVersion: tls.VersionTLS12}
		d.SSL = config.Port == 465
	}
	return &SMTPEmailService{Config: config, dialer: d}
}

func (e *SMTPEmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.Config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// ResendEmailService sends through the Resend HTTP API.
type ResendEmailService struct {
	Config *MailConfig
	client *resend.Client
}

func NewResendEmailService(config *MailConfig) *ResendEmailService {
	return &ResendEmailService{Config: config, client: resend.NewClient(config.ResendAPIKey)}
}

func (e *ResendEmailService) SendEmail(to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    e.Config.From,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
	if _, err := e.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send to %s: %w", to, err)
	}
	return nil
}
