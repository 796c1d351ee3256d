package auth

import (
	"context"
	"errors"
	"fmt"

	"FacultyManager/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAccountExists = errors.New("username or email already registered")
)

type UserRepository struct {
	collection *mongo.Collection
	ids        *config.Sequencer
}

func NewUserRepository(db *mongo.Database, ids *config.Sequencer) *UserRepository {
	return &UserRepository{collection: db.Collection(config.UsersCollection), ids: ids}
}

// CreateUser assigns the next user id and inserts the account. The unique
// indexes on username and email reject duplicates atomically.
func (r *UserRepository) CreateUser(ctx context.Context, user *User) error {
	id, err := r.ids.Next(ctx, config.UsersCollection)
	if err != nil {
		return err
	}
	user.ID = id
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAccountExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindOptedInEmails returns the addresses of every user currently opted in to
// notifications.
func (r *UserRepository) FindOptedInEmails(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"email": 1}).SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"receive_notifications": true}, opts)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		emails = append(emails, row.Email)
	}
	return emails, nil
}

func (r *UserRepository) UpdateNotificationPreference(ctx context.Context, id int64, enabled bool) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"receive_notifications": enabled}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
