package faculty

import (
	"context"
	"sort"
	"sync"

	"FacultyManager/internal/notification"
)

// memStore keeps faculty rows in memory and enforces the unique email key the
// way the real collection index does.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*Faculty
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]*Faculty{}}
}

func (m *memStore) byEmail(email string) *Faculty {
	for _, f := range m.rows {
		if f.Email == email {
			return f
		}
	}
	return nil
}

func (m *memStore) UpsertByEmail(_ context.Context, f *Faculty) (*Faculty, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing := m.byEmail(f.Email); existing != nil {
		existing.Name = f.Name
		existing.Department = f.Department
		cp := *existing
		return &cp, false, nil
	}
	m.nextID++
	row := &Faculty{ID: m.nextID, Name: f.Name, Department: f.Department, Email: f.Email}
	m.rows[row.ID] = row
	cp := *row
	return &cp, true, nil
}

func (m *memStore) Update(_ context.Context, f *Faculty) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[f.ID]
	if !ok {
		return ErrNotFound
	}
	if other := m.byEmail(f.Email); other != nil && other.ID != f.ID {
		return ErrEmailTaken
	}
	*row = *f
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (*Faculty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *memStore) FindAll(context.Context) ([]*Faculty, error) {
	return m.filter(func(*Faculty) bool { return true }), nil
}

func (m *memStore) FindByDepartment(_ context.Context, department string) ([]*Faculty, error) {
	return m.filter(func(f *Faculty) bool { return f.Department == department }), nil
}

func (m *memStore) filter(keep func(*Faculty) bool) []*Faculty {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Faculty{}
	for _, f := range m.rows {
		if keep(f) {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) Departments(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, f := range m.filter(func(*Faculty) bool { return true }) {
		if !seen[f.Department] {
			seen[f.Department] = true
			out = append(out, f.Department)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rows)), nil
}

type notifyCall struct {
	Name, Department, Email string
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (r *recordingNotifier) NotifyFacultyAdded(_ context.Context, name, department, email string) notification.DispatchReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notifyCall{Name: name, Department: department, Email: email})
	return notification.DispatchReport{Recorded: true}
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
