// Package console is the single-page groups and students console. A Console
// drives one view state store through a DataSource: it fetches both
// collections on mount and re-fetches after every mutation.
package console

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/MadinaDev2107/Group-Manager/internal/metrics"
	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/MadinaDev2107/Group-Manager/internal/viewstate"
)

// ErrFormClosed is returned when a form is edited or submitted while its modal
// is closed.
var ErrFormClosed = errors.New("form is not open")

// DataSource is the select/insert/update/delete-by-equality surface of the
// backend, implemented by client.Client.
type DataSource interface {
	ListAll(ctx context.Context, collection string, dst interface{}) error
	ListWhere(ctx context.Context, collection, field string, value interface{}, dst interface{}) error
	Insert(ctx context.Context, collection string, record interface{}) error
	Update(ctx context.Context, collection string, record interface{}, field string, value interface{}) error
	Remove(ctx context.Context, collection, field string, value interface{}) error
}

type Console struct {
	ds    DataSource
	store *viewstate.Store
}

func New(ds DataSource) *Console {
	return &Console{ds: ds, store: viewstate.New()}
}

// Mount loads both collections.
func (c *Console) Mount(ctx context.Context) error {
	c.store.SetNotice("")
	return c.report(errors.Join(c.refreshGroups(ctx), c.refreshStudents(ctx, nil)))
}

func (c *Console) View() viewstate.View {
	return c.store.View()
}

// Notify replaces the notice banner text.
func (c *Console) Notify(msg string) {
	c.store.SetNotice(msg)
}

// ─────────────────────────────────────────
// GROUP FORM
// ─────────────────────────────────────────

func (c *Console) OpenGroupModal() {
	c.store.SetNotice("")
	c.store.OpenGroupForm()
}

// EditGroupDraft replaces the group draft; it fails with ErrFormClosed when
// the modal is not open.
func (c *Console) EditGroupDraft(g model.Group) error {
	g.ID = nil
	if !c.store.SetGroupDraftIfOpen(g) {
		return c.report(ErrFormClosed)
	}
	return nil
}

func (c *Console) CloseGroupModal() {
	c.store.SetNotice("")
	c.store.CloseGroupForm()
}

// SubmitGroup inserts the group draft. On failure the modal stays open with the
// draft intact.
func (c *Console) SubmitGroup(ctx context.Context) error {
	c.store.SetNotice("")

	v := c.store.View()
	if !v.GroupModalOpen {
		return c.report(ErrFormClosed)
	}

	draft := v.GroupDraft
	draft.ID = nil
	if err := c.ds.Insert(ctx, model.CollectionGroups, draft); err != nil {
		return c.report(fmt.Errorf("add group: %w", err))
	}

	c.store.CloseGroupFormIf(v.GroupFormSeq)
	return c.report(c.refreshGroups(ctx))
}

// ─────────────────────────────────────────
// STUDENT FORM
// ─────────────────────────────────────────

// OpenAddStudent opens the student form in create mode.
func (c *Console) OpenAddStudent() {
	c.store.SetNotice("")
	c.store.OpenStudentCreate()
}

// OpenEditStudent opens the student form in edit mode for id. The draft is a
// copy of the matching row; when no row matches, the previous draft is kept.
func (c *Console) OpenEditStudent(id int64) {
	c.store.SetNotice("")
	c.store.OpenStudentEdit(id)
}

// EditStudentDraft replaces the student draft; it fails with ErrFormClosed
// when the modal is not open.
func (c *Console) EditStudentDraft(st model.Student) error {
	st.ID = nil
	if !c.store.SetStudentDraftIfOpen(st) {
		return c.report(ErrFormClosed)
	}
	return nil
}

// CloseStudentModal discards the draft without persisting it.
func (c *Console) CloseStudentModal() {
	c.store.SetNotice("")
	c.store.CloseStudentForm()
}

// SubmitStudent updates the row matching the edit target in edit mode and
// inserts the draft in create mode. Mode, draft and target come from one
// snapshot of the store.
func (c *Console) SubmitStudent(ctx context.Context) error {
	c.store.SetNotice("")

	v := c.store.View()
	draft := v.StudentDraft
	draft.ID = nil

	var err error
	switch v.StudentMode {
	case viewstate.EditDraft:
		if v.EditTargetID == nil {
			return c.report(ErrFormClosed)
		}
		target := *v.EditTargetID
		if err = c.ds.Update(ctx, model.CollectionStudents, draft, "id", target); err != nil {
			err = fmt.Errorf("update student %d: %w", target, err)
		}
	case viewstate.CreateDraft:
		if err = c.ds.Insert(ctx, model.CollectionStudents, draft); err != nil {
			err = fmt.Errorf("add student: %w", err)
		}
	default:
		return c.report(ErrFormClosed)
	}
	if err != nil {
		return c.report(err)
	}

	c.store.CloseStudentFormIf(v.StudentFormSeq)
	return c.report(c.refreshStudents(ctx, nil))
}

func (c *Console) DeleteStudent(ctx context.Context, id int64) error {
	c.store.SetNotice("")
	if err := c.ds.Remove(ctx, model.CollectionStudents, "id", id); err != nil {
		return c.report(fmt.Errorf("delete student %d: %w", id, err))
	}
	return c.report(c.refreshStudents(ctx, nil))
}

// FilterByGroup replaces the students snapshot with the rows of one group.
func (c *Console) FilterByGroup(ctx context.Context, groupID int64) error {
	c.store.SetNotice("")
	return c.report(c.refreshStudents(ctx, &groupID))
}

// ─────────────────────────────────────────
// FETCH
// ─────────────────────────────────────────

func (c *Console) refreshGroups(ctx context.Context) error {
	token := c.store.BeginFetch(model.CollectionGroups)

	var rows []model.Group
	if err := c.ds.ListAll(ctx, model.CollectionGroups, &rows); err != nil {
		return fmt.Errorf("load groups: %w", err)
	}
	// data kosong (null) -> snapshot tidak diubah
	if rows == nil {
		return nil
	}
	if !c.store.SetGroups(token, rows) {
		c.discarded(model.CollectionGroups, token)
	}
	return nil
}

func (c *Console) refreshStudents(ctx context.Context, groupID *int64) error {
	token := c.store.BeginFetch(model.CollectionStudents)

	var (
		rows []model.Student
		err  error
	)
	if groupID != nil {
		err = c.ds.ListWhere(ctx, model.CollectionStudents, "group_id", *groupID, &rows)
	} else {
		err = c.ds.ListAll(ctx, model.CollectionStudents, &rows)
	}
	if err != nil {
		return fmt.Errorf("load students: %w", err)
	}
	if rows == nil {
		return nil
	}
	if !c.store.SetStudents(token, rows) {
		c.discarded(model.CollectionStudents, token)
	}
	return nil
}

func (c *Console) discarded(collection string, token uint64) {
	metrics.StaleResponses.WithLabelValues(collection).Inc()
	log.Printf("console: discarded stale %s response (fetch #%d)", collection, token)
}

// report puts err on the notice banner and returns it unchanged.
func (c *Console) report(err error) error {
	if err == nil {
		return nil
	}
	log.Printf("console: %v", err)
	c.store.SetNotice(err.Error())
	return err
}
