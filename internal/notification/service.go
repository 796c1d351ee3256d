package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FacultyManager/internal/config"

	"go.uber.org/zap"
)

const FacultyAddedSubject = "New Faculty Added"

// storeTimeout bounds each store call made during a dispatch.
const storeTimeout = 10 * time.Second

// ErrDeliveryFailed wraps every transport error raised during a dispatch.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// Recipients lists the addresses of users opted in to notifications.
type Recipients interface {
	FindOptedInEmails(ctx context.Context) ([]string, error)
}

// RecordStore is the append-only notification log.
type RecordStore interface {
	Append(ctx context.Context, rec *Record) error
	ListRecent(ctx context.Context) ([]*Record, error)
}

// NotificationService composes faculty notifications, fans them out and keeps
// the audit log.
type NotificationService struct {
	sender     config.EmailSender
	recipients Recipients
	records    RecordStore
	adminEmail string
	log        *zap.Logger
}

func NewNotificationService(sender config.EmailSender, recipients Recipients, records RecordStore, cfg *config.NotificationConfig, log *zap.Logger) *NotificationService {
	return &NotificationService{
		sender:     sender,
		recipients: recipients,
		records:    records,
		adminEmail: cfg.AdminEmail,
		log:        log.With(zap.String("component", "notifications")),
	}
}

func FacultyAddedBody(name, department, email string) string {
	return fmt.Sprintf(`Hello Admin,

A new faculty member has been added to the system:

Name: %s
Department: %s
Email: %s

Regards,
Faculty Management System
`, name, department, email)
}

// NotifyFacultyAdded sends the faculty notification to the admin address and
// every opted-in user, then appends one audit record addressed to the admin.
// Delivery is best effort: failures are logged and never returned.
//
// The faculty row is already written when this runs, so the dispatch ignores
// cancellation of ctx. A caller that goes away mid-send still gets its
// recipients and audit record.
func (s *NotificationService) NotifyFacultyAdded(ctx context.Context, name, department, email string) DispatchReport {
	ctx = context.WithoutCancel(ctx)
	subject := FacultyAddedSubject
	body := FacultyAddedBody(name, department, email)
	var report DispatchReport

	s.deliver(&report, s.adminEmail, subject, body)

	users, err := s.optedIn(ctx)
	if err != nil {
		s.log.Error("Failed to load opted-in users", zap.Error(err))
	}
	for _, to := range users {
		s.deliver(&report, to, subject, body)
	}

	rec := &Record{Subject: subject, Body: body, RecipientEmail: s.adminEmail}
	if err := s.appendRecord(ctx, rec); err != nil {
		s.log.Error("Failed to record notification", zap.Error(err))
	} else {
		report.Recorded = true
	}

	s.log.Info("Faculty notification dispatched",
		zap.String("faculty_email", email),
		zap.Int("attempted", len(report.Attempted)),
		zap.Int("delivered", len(report.Delivered)),
		zap.Int("failed", len(report.Failed)),
	)
	return report
}

func (s *NotificationService) optedIn(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.recipients.FindOptedInEmails(ctx)
}

func (s *NotificationService) appendRecord(ctx context.Context, rec *Record) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.records.Append(ctx, rec)
}

func (s *NotificationService) deliver(report *DispatchReport, to, subject, body string) {
	report.Attempted = append(report.Attempted, to)
	if err := s.sender.SendEmail(to, subject, body); err != nil {
		err = fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
		s.log.Warn("Notification email not delivered", zap.String("to", to), zap.Error(err))
		report.Failed = append(report.Failed, to)
		return
	}
	report.Delivered = append(report.Delivered, to)
}

// ListNotifications returns the audit log, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context) ([]*Record, error) {
	return s.records.ListRecent(ctx)
}
