package faculty

import (
	"context"
	"errors"
	"strings"

	"FacultyManager/internal/notification"

	"go.uber.org/zap"
)

var ErrInvalidFaculty = errors.New("name, department and email are required")

// Store is the faculty persistence used by FacultyService.
type Store interface {
	UpsertByEmail(ctx context.Context, f *Faculty) (*Faculty, bool, error)
	Update(ctx context.Context, f *Faculty) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Faculty, error)
	FindAll(ctx context.Context) ([]*Faculty, error)
	FindByDepartment(ctx context.Context, department string) ([]*Faculty, error)
	Departments(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// Notifier is told about every faculty add. It must not fail the caller.
type Notifier interface {
	NotifyFacultyAdded(ctx context.Context, name, department, email string) notification.DispatchReport
}

type FacultyService struct {
	repo     Store
	notifier Notifier
	log      *zap.Logger
}

func NewFacultyService(repo Store, notifier Notifier, log *zap.Logger) *FacultyService {
	return &FacultyService{repo: repo, notifier: notifier, log: log.With(zap.String("component", "faculty"))}
}

func normalize(form FacultyForm) (*Faculty, error) {
	f := &Faculty{
		Name:       strings.TrimSpace(form.Name),
		Department: strings.TrimSpace(form.Department),
		Email:      strings.TrimSpace(form.Email),
	}
	if f.Name == "" || f.Department == "" || f.Email == "" {
		return nil, ErrInvalidFaculty
	}
	return f, nil
}

// Add creates the faculty member, or replaces name and department of the one
// already holding the email, then dispatches the notification.
func (s *FacultyService) Add(ctx context.Context, form FacultyForm) (*Faculty, error) {
	f, err := normalize(form)
	if err != nil {
		return nil, err
	}
	saved, created, err := s.repo.UpsertByEmail(ctx, f)
	if err != nil {
		return nil, err
	}
	s.log.Info("Faculty saved",
		zap.Int64("faculty_id", saved.ID),
		zap.String("email", saved.Email),
		zap.Bool("created", created),
	)

	s.notifier.NotifyFacultyAdded(ctx, saved.Name, saved.Department, saved.Email)
	return saved, nil
}

// Update overwrites the faculty member with id. It fails with ErrNotFound when
// the id is unknown and ErrEmailTaken when the email belongs to another row.
func (s *FacultyService) Update(ctx context.Context, id int64, form FacultyForm) (*Faculty, error) {
	f, err := normalize(form)
	if err != nil {
		return nil, err
	}
	f.ID = id
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	s.log.Info("Faculty updated", zap.Int64("faculty_id", id))
	return f, nil
}

func (s *FacultyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Faculty deleted", zap.Int64("faculty_id", id))
	return nil
}

func (s *FacultyService) Get(ctx context.Context, id int64) (*Faculty, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *FacultyService) List(ctx context.Context) ([]*Faculty, error) {
	return s.repo.FindAll(ctx)
}

func (s *FacultyService) ListByDepartment(ctx context.Context, department string) ([]*Faculty, error) {
	return s.repo.FindByDepartment(ctx, department)
}

func (s *FacultyService) Overview(ctx context.Context) (*Overview, error) {
	faculties, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.repo.Departments(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{Faculties: faculties, Departments: departments, Count: count}, nil
}
