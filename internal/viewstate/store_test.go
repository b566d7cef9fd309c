package viewstate

import (
	"testing"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
)

func student(id int64, name string) model.Student {
	return model.Student{ID: model.Int64(id), Fullname: name, GroupID: model.Int64(1)}
}

func TestStore_StaleFetchIsDiscarded(t *testing.T) {
	s := New()

	older := s.BeginFetch(model.CollectionStudents)
	newer := s.BeginFetch(model.CollectionStudents)

	if !s.SetStudents(newer, []model.Student{student(1, "Bob")}) {
		t.Fatal("latest fetch must be applied")
	}
	if s.SetStudents(older, []model.Student{student(1, "Bob"), student(2, "Eve")}) {
		t.Fatal("older fetch resolving late must be discarded")
	}

	v := s.View()
	if len(v.Students) != 1 || v.Students[0].Fullname != "Bob" {
		t.Errorf("snapshot overwritten by stale data: %+v", v.Students)
	}
}

func TestStore_TokensAreIndependentPerCollection(t *testing.T) {
	s := New()

	groupsToken := s.BeginFetch(model.CollectionGroups)
	s.BeginFetch(model.CollectionStudents)

	if !s.SetGroups(groupsToken, []model.Group{{ID: model.Int64(1), Name: "A"}}) {
		t.Fatal("a students fetch must not invalidate a groups fetch")
	}
}

func TestStore_EmptyResponseReplacesSnapshot(t *testing.T) {
	s := New()
	s.SetStudents(s.BeginFetch(model.CollectionStudents), []model.Student{student(1, "Bob")})

	s.SetStudents(s.BeginFetch(model.CollectionStudents), nil)

	if v := s.View(); len(v.Students) != 0 {
		t.Errorf("expected empty snapshot, got %+v", v.Students)
	}
}

func TestStore_StudentMode(t *testing.T) {
	s := New()
	if m := s.View().StudentMode; m != Idle {
		t.Fatalf("expected Idle, got %v", m)
	}

	s.OpenStudentCreate()
	if m := s.View().StudentMode; m != CreateDraft {
		t.Fatalf("expected CreateDraft, got %v", m)
	}

	s.OpenStudentEdit(7)
	if m := s.View().StudentMode; m != EditDraft {
		t.Fatalf("expected EditDraft, got %v", m)
	}

	s.CloseStudentForm()
	v := s.View()
	if v.StudentMode != Idle || v.EditTargetID != nil {
		t.Fatalf("closed modal must be Idle without a target, got %v %v", v.StudentMode, v.EditTargetID)
	}
}

func TestStore_OpenStudentEditCopiesRow(t *testing.T) {
	s := New()
	s.SetStudents(s.BeginFetch(model.CollectionStudents), []model.Student{student(3, "Ann"), student(7, "Bob")})

	s.OpenStudentEdit(7)
	if d := s.View().StudentDraft; d.Fullname != "Bob" {
		t.Fatalf("expected Bob in the draft, got %+v", d)
	}

	s.SetStudentDraftIfOpen(model.Student{Fullname: "kept"})
	s.OpenStudentEdit(8)
	if d := s.View().StudentDraft; d.Fullname != "kept" {
		t.Errorf("missing row must keep the draft, got %+v", d)
	}
}

func TestStore_ViewIsACopy(t *testing.T) {
	s := New()
	s.SetStudents(s.BeginFetch(model.CollectionStudents), []model.Student{student(1, "Bob")})
	s.OpenStudentEdit(1)

	v := s.View()
	v.Students[0].Fullname = "Mallory"
	*v.Students[0].GroupID = 5
	*v.EditTargetID = 9
	*v.StudentDraft.GroupID = 6

	again := s.View()
	if again.Students[0].Fullname != "Bob" || *again.Students[0].GroupID != 1 || *again.EditTargetID != 1 || *again.StudentDraft.GroupID != 1 {
		t.Errorf("store mutated through view: %+v edit=%d", again.Students[0], *again.EditTargetID)
	}
}

func TestStore_DraftsOnlyExistWhileOpen(t *testing.T) {
	s := New()

	if s.SetGroupDraftIfOpen(model.Group{Name: "ghost", Status: true}) {
		t.Fatal("group draft written while the modal is closed")
	}
	if s.SetStudentDraftIfOpen(model.Student{Fullname: "ghost"}) {
		t.Fatal("student draft written while the modal is closed")
	}

	s.OpenGroupForm()
	s.OpenStudentEdit(99)
	v := s.View()
	if v.GroupDraft.Name != "" || v.GroupDraft.Status {
		t.Errorf("group form must open empty, got %+v", v.GroupDraft)
	}
	if v.StudentDraft.Fullname != "" {
		t.Errorf("student form must not inherit a closed draft, got %+v", v.StudentDraft)
	}
}

func TestStore_GroupFormReopenResetsDraft(t *testing.T) {
	s := New()
	s.OpenGroupForm()
	s.SetGroupDraftIfOpen(model.Group{Name: "A", Status: true})
	s.CloseGroupForm()
	s.OpenGroupForm()

	if d := s.View().GroupDraft; d.Name != "" || d.Status {
		t.Errorf("group draft not reset: %+v", d)
	}
}

func TestStore_CloseFormIfSameForm(t *testing.T) {
	s := New()

	s.OpenStudentEdit(7)
	submitted := s.View().StudentFormSeq

	// another tab closes and reopens the form before the submit completes
	s.CloseStudentForm()
	s.OpenStudentCreate()
	s.SetStudentDraftIfOpen(model.Student{Fullname: "new tab"})

	if s.CloseStudentFormIf(submitted) {
		t.Fatal("completion must not close a form opened after the submit")
	}
	if v := s.View(); !v.StudentModalOpen || v.StudentDraft.Fullname != "new tab" {
		t.Errorf("reopened form was wiped: %+v", v)
	}

	if !s.CloseStudentFormIf(s.View().StudentFormSeq) {
		t.Fatal("current form must close")
	}

	s.OpenGroupForm()
	seq := s.View().GroupFormSeq
	if !s.CloseGroupFormIf(seq) || s.View().GroupModalOpen {
		t.Error("group form must close for its own seq")
	}
	if s.CloseGroupFormIf(seq) {
		t.Error("closing twice must be refused")
	}
}
