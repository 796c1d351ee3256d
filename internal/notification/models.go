package notification

import "time"

// Record is the append-only audit entry written once per faculty add event.
type Record struct {
	ID             int64     `bson:"_id"`
	Subject        string    `bson:"subject"`
	Body           string    `bson:"body"`
	RecipientEmail string    `bson:"recipient_email"`
	DateSent       time.Time `bson:"date_sent"`
}

// DispatchReport summarizes one best-effort fan-out.
type DispatchReport struct {
	Attempted []string
	Delivered []string
	Failed    []string
	Recorded  bool
}
