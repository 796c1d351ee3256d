package notification

import (
	"context"
	"fmt"
	"time"

	"FacultyManager/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository handles DB operations for the notification log.
type NotificationRepository struct {
	collection *mongo.Collection
	ids        *config.Sequencer
	now        func() time.Time
}

func NewNotificationRepository(db *mongo.Database, ids *config.Sequencer) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection(config.NotificationsCollection),
		ids:        ids,
		now:        time.Now,
	}
}

// Append inserts r with the next id. DateSent defaults to the insertion time.
func (r *NotificationRepository) Append(ctx context.Context, rec *Record) error {
	id, err := r.ids.Next(ctx, config.NotificationsCollection)
	if err != nil {
		return err
	}
	rec.ID = id
	if rec.DateSent.IsZero() {
		rec.DateSent = r.now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListRecent returns every record, newest first.
func (r *NotificationRepository) ListRecent(ctx context.Context) ([]*Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_sent", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	records := []*Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
