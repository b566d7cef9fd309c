// Package viewstate holds the console's view state: the last fetched snapshot
// of each collection, the two form drafts, the edit target and the modal flags.
// All mutation goes through the setters below; opening and closing a form
// changes its modal flag, draft and edit target in one step.
package viewstate

import (
	"sync"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
)

// StudentMode is the state of the student form.
type StudentMode int

const (
	Idle StudentMode = iota
	CreateDraft
	EditDraft
)

func (m StudentMode) String() string {
	switch m {
	case CreateDraft:
		return "create"
	case EditDraft:
		return "edit"
	default:
		return "idle"
	}
}

// View is a copy of the store taken under one lock.
type View struct {
	Groups           []model.Group
	Students         []model.Student
	GroupDraft       model.Group
	StudentDraft     model.Student
	EditTargetID     *int64
	GroupModalOpen   bool
	StudentModalOpen bool
	StudentMode      StudentMode
	Notice           string
	GroupFormSeq     uint64
	StudentFormSeq   uint64
}

type Store struct {
	mu sync.Mutex

	groups           []model.Group
	students         []model.Student
	groupDraft       model.Group
	studentDraft     model.Student
	editTargetID     *int64
	groupModalOpen   bool
	studentModalOpen bool
	notice           string

	// bumped on every open/close so a submit can tell its form apart
	groupFormSeq   uint64
	studentFormSeq uint64

	// latest fetch token issued per collection
	issued map[string]uint64
}

func New() *Store {
	return &Store{issued: make(map[string]uint64)}
}

// BeginFetch issues a token for a fetch of collection. Only the response carrying
// the most recently issued token may replace the snapshot.
func (s *Store) BeginFetch(collection string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued[collection]++
	return s.issued[collection]
}

func (s *Store) isLatest(collection string, token uint64) bool {
	return s.issued[collection] == token
}

// SetGroups replaces the groups snapshot. It returns false, leaving the snapshot
// untouched, when token is stale.
func (s *Store) SetGroups(token uint64, groups []model.Group) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isLatest(model.CollectionGroups, token) {
		return false
	}
	s.groups = cloneGroups(groups)
	return true
}

// SetStudents replaces the students snapshot. It returns false, leaving the
// snapshot untouched, when token is stale.
func (s *Store) SetStudents(token uint64, students []model.Student) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isLatest(model.CollectionStudents, token) {
		return false
	}
	s.students = cloneStudents(students)
	return true
}

// OpenGroupForm opens the group modal with an empty draft.
func (s *Store) OpenGroupForm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groupDraft = model.Group{}
	s.groupModalOpen = true
	s.groupFormSeq++
}

// CloseGroupForm closes the group modal and discards the draft.
func (s *Store) CloseGroupForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeGroupForm()
}

// CloseGroupFormIf closes the group modal only if it is still the form
// identified by seq, so a submit never closes a form reopened meanwhile.
func (s *Store) CloseGroupFormIf(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.groupModalOpen || s.groupFormSeq != seq {
		return false
	}
	s.closeGroupForm()
	return true
}

func (s *Store) closeGroupForm() {
	s.groupDraft = model.Group{}
	s.groupModalOpen = false
	s.groupFormSeq++
}

// SetGroupDraftIfOpen writes the draft only while the group modal is open.
func (s *Store) SetGroupDraftIfOpen(g model.Group) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.groupModalOpen {
		return false
	}
	s.groupDraft = cloneGroup(g)
	return true
}

// OpenStudentCreate opens the student modal in create mode with an empty draft.
func (s *Store) OpenStudentCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editTargetID = nil
	s.studentDraft = model.Student{}
	s.studentModalOpen = true
	s.studentFormSeq++
}

// OpenStudentEdit opens the student modal in edit mode for id. The draft becomes
// a copy of the matching row; without a match the previous draft is kept.
func (s *Store) OpenStudentEdit(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editTargetID = &id
	for _, st := range s.students {
		if st.ID != nil && *st.ID == id {
			s.studentDraft = cloneStudent(st)
			break
		}
	}
	s.studentModalOpen = true
	s.studentFormSeq++
}

// CloseStudentForm closes the student modal, discards the draft and clears
// the edit target.
func (s *Store) CloseStudentForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeStudentForm()
}

// CloseStudentFormIf closes the student modal only if it is still the form
// identified by seq.
func (s *Store) CloseStudentFormIf(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.studentModalOpen || s.studentFormSeq != seq {
		return false
	}
	s.closeStudentForm()
	return true
}

func (s *Store) closeStudentForm() {
	s.studentDraft = model.Student{}
	s.editTargetID = nil
	s.studentModalOpen = false
	s.studentFormSeq++
}

// SetStudentDraftIfOpen writes the draft only while the student modal is open.
func (s *Store) SetStudentDraftIfOpen(st model.Student) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.studentModalOpen {
		return false
	}
	s.studentDraft = cloneStudent(st)
	return true
}

func (s *Store) SetNotice(notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = notice
}

func (s *Store) studentMode() StudentMode {
	switch {
	case !s.studentModalOpen:
		return Idle
	case s.editTargetID != nil:
		return EditDraft
	default:
		return CreateDraft
	}
}

func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		Groups:           cloneGroups(s.groups),
		Students:         cloneStudents(s.students),
		GroupDraft:       cloneGroup(s.groupDraft),
		StudentDraft:     cloneStudent(s.studentDraft),
		EditTargetID:     cloneID(s.editTargetID),
		GroupModalOpen:   s.groupModalOpen,
		StudentModalOpen: s.studentModalOpen,
		StudentMode:      s.studentMode(),
		Notice:           s.notice,
		GroupFormSeq:     s.groupFormSeq,
		StudentFormSeq:   s.studentFormSeq,
	}
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneGroup(g model.Group) model.Group {
	g.ID = cloneID(g.ID)
	return g
}

func cloneStudent(st model.Student) model.Student {
	st.ID = cloneID(st.ID)
	st.GroupID = cloneID(st.GroupID)
	return st
}

func cloneGroups(in []model.Group) []model.Group {
	out := make([]model.Group, len(in))
	for i, g := range in {
		out[i] = cloneGroup(g)
	}
	return out
}

func cloneStudents(in []model.Student) []model.Student {
	out := make([]model.Student, len(in))
	for i, st := range in {
		out[i] = cloneStudent(st)
	}
	return out
}
