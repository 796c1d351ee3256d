package notification

import (
	"context"
	"testing"
	"time"

	"FacultyManager/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestNotificationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("append stamps id and time", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB, config.NewSequencer(mt.DB))
		fixed := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
		repo.now = func() time.Time { return fixed }
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: "notifications"}, {Key: "seq", Value: int64(12)}}}),
			mtest.CreateSuccessResponse(),
		)

		rec := &Record{Subject: FacultyAddedSubject, Body: "body", RecipientEmail: "admin@example.com"}
		if err := repo.Append(context.Background(), rec); err != nil {
			mt.Fatalf("Append: %v", err)
		}
		if rec.ID != 12 || !rec.DateSent.Equal(fixed) {
			mt.Fatalf("unexpected record: %+v", rec)
		}
	})

	mt.Run("list recent decodes records", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB, config.NewSequencer(mt.DB))
		newer := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".notifications", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int64(2)}, {Key: "subject", Value: FacultyAddedSubject}, {Key: "recipient_email", Value: "admin@example.com"}, {Key: "date_sent", Value: newer}},
			bson.D{{Key: "_id", Value: int64(1)}, {Key: "subject", Value: FacultyAddedSubject}, {Key: "recipient_email", Value: "admin@example.com"}, {Key: "date_sent", Value: older}},
		))

		records, err := repo.ListRecent(context.Background())
		if err != nil {
			mt.Fatalf("ListRecent: %v", err)
		}
		if len(records) != 2 || records[0].ID != 2 || !records[0].DateSent.Equal(newer) {
			mt.Fatalf("unexpected records: %+v", records)
		}
	})
}
