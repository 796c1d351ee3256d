package faculty

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"FacultyManager/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound   = errors.New("faculty not found")
	ErrEmailTaken = errors.New("another faculty member already uses this email")
)

// upsertAttempts bounds the update/insert loop. A lost insert race leaves a
// row behind, so the second update always finds it.
const upsertAttempts = 3

type FacultyRepository struct {
	collection *mongo.Collection
	ids        *config.Sequencer
}

func NewFacultyRepository(db *mongo.Database, ids *config.Sequencer) *FacultyRepository {
	return &FacultyRepository{collection: db.Collection(config.FacultyCollection), ids: ids}
}

// UpsertByEmail replaces name and department of the row owning f.Email, or
// inserts a new row when there is none. The unique email index turns a
// concurrent insert of the same email into a duplicate key error, after which
// the update path is retried. Reports whether a new row was created.
func (r *FacultyRepository) UpsertByEmail(ctx context.Context, f *Faculty) (*Faculty, bool, error) {
	for attempt := 0; attempt < upsertAttempts; attempt++ {
		var existing Faculty
		err := r.collection.FindOneAndUpdate(ctx,
			bson.M{"email": f.Email},
			bson.M{"$set": bson.M{"name": f.Name, "department": f.Department}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&existing)
		if err == nil {
			return &existing, false, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, fmt.Errorf("update faculty by email: %w", err)
		}

		id, err := r.ids.Next(ctx, config.FacultyCollection)
		if err != nil {
			return nil, false, err
		}
		created := &Faculty{ID: id, Name: f.Name, Department: f.Department, Email: f.Email}
		_, err = r.collection.InsertOne(ctx, created)
		if err == nil {
			return created, true, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, false, fmt.Errorf("insert faculty: %w", err)
		}
	}
	return nil, false, fmt.Errorf("upsert faculty %s: %w", f.Email, ErrEmailTaken)
}

// Update overwrites every field of the row with f.ID.
func (r *FacultyRepository) Update(ctx context.Context, f *Faculty) error {
	res, err := r.collection.UpdateByID(ctx, f.ID, bson.M{"$set": bson.M{
		"name":       f.Name,
		"department": f.Department,
		"email":      f.Email,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row with id. Deleting a missing id is not an error.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *FacultyRepository) FindByID(ctx context.Context, id int64) (*Faculty, error) {
	var f Faculty
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FacultyRepository) FindAll(ctx context.Context) ([]*Faculty, error) {
	return r.find(ctx, bson.M{})
}

func (r *FacultyRepository) FindByDepartment(ctx context.Context, department string) ([]*Faculty, error) {
	return r.find(ctx, bson.M{"department": department})
}

func (r *FacultyRepository) find(ctx context.Context, filter bson.M) ([]*Faculty, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	faculties := []*Faculty{}
	if err := cursor.All(ctx, &faculties); err != nil {
		return nil, err
	}
	return faculties, nil
}

// Departments returns the distinct department names, sorted.
func (r *FacultyRepository) Departments(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "department", bson.M{})
	if err != nil {
		return nil, err
	}
	departments := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			departments = append(departments, s)
		}
	}
	sort.Strings(departments)
	return departments, nil
}

func (r *FacultyRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
