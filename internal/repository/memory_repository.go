package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemoryStore keeps both collections in process. It backs STORAGE_BACKEND=memory
// and behaves like the Postgres schema: ids are assigned in insertion order,
// students.group_id must reference an existing group and is nulled when that
// group is deleted.
type MemoryStore struct {
	mu            sync.Mutex
	nextGroupID   int64
	nextStudentID int64
	groups        []model.Group
	students      []model.Student
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Groups() GroupRepository {
	return &memoryGroupRepository{m: m}
}

func (m *MemoryStore) Students() StudentRepository {
	return &memoryStudentRepository{m: m}
}

func groupField(g *model.Group, column string) interface{} {
	switch column {
	case "id":
		return derefID(g.ID)
	case "name":
		return g.Name
	case "status":
		return g.Status
	}
	return nil
}

func studentField(s *model.Student, column string) interface{} {
	switch column {
	case "id":
		return derefID(s.ID)
	case "fullname":
		return s.Fullname
	case "age":
		return s.Age
	case "group_id":
		return derefID(s.GroupID)
	case "status":
		return s.Status
	}
	return nil
}

func derefID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func matches(columns model.Columns, filters []model.Filter, field func(string) interface{}) (bool, error) {
	for _, f := range filters {
		if _, ok := columns[f.Column]; !ok {
			return false, fmt.Errorf("%w: %s", model.ErrUnknownColumn, f.Column)
		}
		if f.NoMatch {
			return false, nil
		}
		if v := field(f.Column); v == nil || v != f.Value {
			return false, nil
		}
	}
	return true, nil
}

func cloneGroup(g model.Group) *model.Group {
	if g.ID != nil {
		g.ID = model.Int64(*g.ID)
	}
	return &g
}

func cloneStudent(s model.Student) *model.Student {
	if s.ID != nil {
		s.ID = model.Int64(*s.ID)
	}
	if s.GroupID != nil {
		s.GroupID = model.Int64(*s.GroupID)
	}
	return &s
}

// groupExists harus dipanggil dengan m.mu terkunci
func (m *MemoryStore) groupExists(id *int64) bool {
	if id == nil {
		return true
	}
	for _, g := range m.groups {
		if *g.ID == *id {
			return true
		}
	}
	return false
}

func foreignKeyError(groupID int64) error {
	return &pgconn.PgError{
		Code:    "23503",
		Message: fmt.Sprintf("group %d is not present in table groups", groupID),
	}
}

type memoryGroupRepository struct {
	m *MemoryStore
}

func (r *memoryGroupRepository) FindAll(ctx context.Context, filters []model.Filter) ([]*model.Group, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	result := []*model.Group{}
	for i := range r.m.groups {
		g := &r.m.groups[i]
		ok, err := matches(model.GroupColumns, filters, func(c string) interface{} { return groupField(g, c) })
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, cloneGroup(*g))
		}
	}
	return result, nil
}

func (r *memoryGroupRepository) Create(ctx context.Context, groups ...*model.Group) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, group := range groups {
		r.m.nextGroupID++
		group.ID = model.Int64(r.m.nextGroupID)
		r.m.groups = append(r.m.groups, *cloneGroup(*group))
	}
	return nil
}

func (r *memoryGroupRepository) UpdateWhere(ctx context.Context, group *model.Group, filters []model.Filter) ([]*model.Group, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	result := []*model.Group{}
	for i := range r.m.groups {
		g := &r.m.groups[i]
		ok, err := matches(model.GroupColumns, filters, func(c string) interface{} { return groupField(g, c) })
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		g.Name = group.Name
		g.Status = group.Status
		result = append(result, cloneGroup(*g))
	}
	return result, nil
}

func (r *memoryGroupRepository) DeleteWhere(ctx context.Context, filters []model.Filter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	kept := r.m.groups[:0]
	var deleted []int64
	for i := range r.m.groups {
		g := r.m.groups[i]
		ok, err := matches(model.GroupColumns, filters, func(c string) interface{} { return groupField(&g, c) })
		if err != nil {
			return 0, err
		}
		if ok {
			deleted = append(deleted, *g.ID)
			continue
		}
		kept = append(kept, g)
	}
	r.m.groups = kept

	// ON DELETE SET NULL
	for _, id := range deleted {
		for i := range r.m.students {
			if gid := r.m.students[i].GroupID; gid != nil && *gid == id {
				r.m.students[i].GroupID = nil
			}
		}
	}
	return int64(len(deleted)), nil
}

type memoryStudentRepository struct {
	m *MemoryStore
}

func (r *memoryStudentRepository) FindAll(ctx context.Context, filters []model.Filter) ([]*model.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	result := []*model.Student{}
	for i := range r.m.students {
		s := &r.m.students[i]
		ok, err := matches(model.StudentColumns, filters, func(c string) interface{} { return studentField(s, c) })
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, cloneStudent(*s))
		}
	}
	return result, nil
}

// Create checks every group reference before storing anything, so a batch is
// all-or-nothing like the Postgres transaction.
func (r *memoryStudentRepository) Create(ctx context.Context, students ...*model.Student) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, student := range students {
		if !r.m.groupExists(student.GroupID) {
			return foreignKeyError(*student.GroupID)
		}
	}

	for _, student := range students {
		r.m.nextStudentID++
		student.ID = model.Int64(r.m.nextStudentID)
		r.m.students = append(r.m.students, *cloneStudent(*student))
	}
	return nil
}

func (r *memoryStudentRepository) UpdateWhere(ctx context.Context, student *model.Student, filters []model.Filter) ([]*model.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if !r.m.groupExists(student.GroupID) {
		return nil, foreignKeyError(*student.GroupID)
	}

	result := []*model.Student{}
	for i := range r.m.students {
		s := &r.m.students[i]
		ok, err := matches(model.StudentColumns, filters, func(c string) interface{} { return studentField(s, c) })
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		s.Fullname = student.Fullname
		s.Age = student.Age
		s.GroupID = nil
		if student.GroupID != nil {
			s.GroupID = model.Int64(*student.GroupID)
		}
		s.Status = student.Status
		result = append(result, cloneStudent(*s))
	}
	return result, nil
}

func (r *memoryStudentRepository) DeleteWhere(ctx context.Context, filters []model.Filter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	kept := r.m.students[:0]
	var n int64
	for i := range r.m.students {
		s := r.m.students[i]
		ok, err := matches(model.StudentColumns, filters, func(c string) interface{} { return studentField(&s, c) })
		if err != nil {
			return 0, err
		}
		if ok {
			n++
			continue
		}
		kept = append(kept, s)
	}
	r.m.students = kept
	return n, nil
}

var (
	_ GroupRepository   = (*memoryGroupRepository)(nil)
	_ StudentRepository = (*memoryStudentRepository)(nil)
)
