package faculty

import (
	"context"
	"errors"
	"testing"

	"FacultyManager/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func facultyDoc(id int64, name, department, email string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "department", Value: department},
		{Key: "email", Value: email},
	}
}

func noMatch() bson.D {
	return mtest.CreateSuccessResponse()
}

func matched(doc bson.D) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc})
}

func nextID(seq int64) bson.D {
	return matched(bson.D{{Key: "_id", Value: "faculty"}, {Key: "seq", Value: seq}})
}

func duplicateKey() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: faculty index: faculty_email_unique"})
}

func TestFacultyRepository_UpsertByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("existing email is replaced in place", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(matched(facultyDoc(5, "B", "Math", "e@u.edu")))

		got, created, err := repo.UpsertByEmail(context.Background(), &Faculty{Name: "B", Department: "Math", Email: "e@u.edu"})
		if err != nil {
			mt.Fatalf("UpsertByEmail: %v", err)
		}
		if created || got.ID != 5 || got.Name != "B" {
			mt.Fatalf("expected in-place replace of id 5, got %+v created=%v", got, created)
		}
	})

	mt.Run("new email is inserted with the next id", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(noMatch(), nextID(8), mtest.CreateSuccessResponse())

		got, created, err := repo.UpsertByEmail(context.Background(), &Faculty{Name: "X", Department: "CS", Email: "x@u.edu"})
		if err != nil {
			mt.Fatalf("UpsertByEmail: %v", err)
		}
		if !created || got.ID != 8 || got.Email != "x@u.edu" {
			mt.Fatalf("expected new row 8, got %+v created=%v", got, created)
		}
	})

	mt.Run("lost insert race falls back to replace", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(
			noMatch(),
			nextID(9),
			duplicateKey(),
			matched(facultyDoc(7, "X", "CS", "x@u.edu")),
		)

		got, created, err := repo.UpsertByEmail(context.Background(), &Faculty{Name: "X", Department: "CS", Email: "x@u.edu"})
		if err != nil {
			mt.Fatalf("UpsertByEmail: %v", err)
		}
		if created || got.ID != 7 {
			mt.Fatalf("expected the winner's row 7 to be replaced, got %+v created=%v", got, created)
		}
	})
}

func TestFacultyRepository_Writes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delete missing id is a no-op", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := repo.Delete(context.Background(), 404); err != nil {
			mt.Fatalf("expected nil error, got %v", err)
		}
	})

	mt.Run("update missing id", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Update(context.Background(), &Faculty{ID: 404, Name: "A", Department: "CS", Email: "a@u.edu"})
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("update onto another row's email", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(duplicateKey())

		err := repo.Update(context.Background(), &Faculty{ID: 2, Name: "B", Department: "CS", Email: "a@u.edu"})
		if !errors.Is(err, ErrEmailTaken) {
			mt.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestFacultyRepository_Reads(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("departments are distinct and sorted", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "values", Value: bson.A{"Math", "CS", "Physics"}}))

		departments, err := repo.Departments(context.Background())
		if err != nil {
			mt.Fatalf("Departments: %v", err)
		}
		want := []string{"CS", "Math", "Physics"}
		if len(departments) != len(want) {
			mt.Fatalf("expected %v, got %v", want, departments)
		}
		for i := range want {
			if departments[i] != want[i] {
				mt.Fatalf("expected %v, got %v", want, departments)
			}
		}
	})

	mt.Run("by department", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".faculty", mtest.FirstBatch,
			facultyDoc(1, "A", "CS", "a@u.edu"),
			facultyDoc(3, "C", "CS", "c@u.edu"),
		))

		rows, err := repo.FindByDepartment(context.Background(), "CS")
		if err != nil {
			mt.Fatalf("FindByDepartment: %v", err)
		}
		if len(rows) != 2 || rows[1].ID != 3 || rows[1].Email != "c@u.edu" {
			mt.Fatalf("unexpected rows: %+v", rows)
		}
	})

	mt.Run("find missing id", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".faculty", mtest.FirstBatch))

		if _, err := repo.FindByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("count", func(mt *mtest.T) {
		repo := NewFacultyRepository(mt.DB, config.NewSequencer(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".faculty", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		n, err := repo.Count(context.Background())
		if err != nil {
			mt.Fatalf("Count: %v", err)
		}
		if n != 3 {
			mt.Fatalf("expected 3, got %d", n)
		}
	})
}
