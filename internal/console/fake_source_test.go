package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
)

type call struct {
	op         string
	collection string
	field      string
	value      interface{}
}

// fakeSource is an in-memory DataSource that records every call.
type fakeSource struct {
	mu       sync.Mutex
	groups   []model.Group
	students []model.Student
	nextID   map[string]int64
	calls    []call
	failOn   map[string]error // op -> error

	// listHook runs before ListAll returns, outside the lock.
	listHook func(collection string)
	// writeHook runs before Insert or Update is applied, outside the lock.
	writeHook func(op string)
}

func newFakeSource() *fakeSource {
	return &fakeSource{nextID: map[string]int64{}, failOn: map[string]error{}}
}

func (f *fakeSource) record(c call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.failOn[c.op]
}

func (f *fakeSource) count(op, collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.op == op && c.collection == collection {
			n++
		}
	}
	return n
}

func (f *fakeSource) lastCall(op string) (call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].op == op {
			return f.calls[i], true
		}
	}
	return call{}, false
}

func copyInto(src, dst interface{}) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func (f *fakeSource) rows(collection string, match func(model.Student) bool) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	if collection == model.CollectionGroups {
		return append([]model.Group{}, f.groups...)
	}
	out := []model.Student{}
	for _, st := range f.students {
		if match == nil || match(st) {
			out = append(out, st)
		}
	}
	return out
}

func (f *fakeSource) ListAll(ctx context.Context, collection string, dst interface{}) error {
	if err := f.record(call{op: "select", collection: collection}); err != nil {
		return err
	}
	rows := f.rows(collection, nil)
	if f.listHook != nil {
		f.listHook(collection)
	}
	return copyInto(rows, dst)
}

func (f *fakeSource) ListWhere(ctx context.Context, collection, field string, value interface{}, dst interface{}) error {
	if err := f.record(call{op: "select", collection: collection, field: field, value: value}); err != nil {
		return err
	}
	if collection != model.CollectionStudents || field != "group_id" {
		return fmt.Errorf("fake: unsupported filter %s.%s", collection, field)
	}
	want, _ := value.(int64)
	return copyInto(f.rows(collection, func(st model.Student) bool {
		return st.GroupID != nil && *st.GroupID == want
	}), dst)
}

func (f *fakeSource) Insert(ctx context.Context, collection string, record interface{}) error {
	if err := f.record(call{op: "insert", collection: collection}); err != nil {
		return err
	}
	if f.writeHook != nil {
		f.writeHook("insert")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID[collection]++
	id := f.nextID[collection]

	switch rec := record.(type) {
	case model.Group:
		rec.ID = &id
		f.groups = append(f.groups, rec)
	case model.Student:
		rec.ID = &id
		f.students = append(f.students, rec)
	default:
		return fmt.Errorf("fake: unexpected record %T", record)
	}
	return nil
}

func (f *fakeSource) Update(ctx context.Context, collection string, record interface{}, field string, value interface{}) error {
	if err := f.record(call{op: "update", collection: collection, field: field, value: value}); err != nil {
		return err
	}
	if f.writeHook != nil {
		f.writeHook("update")
	}

	st, ok := record.(model.Student)
	if !ok || field != "id" {
		return errors.New("fake: only students can be updated by id")
	}
	want, _ := value.(int64)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.students {
		if *f.students[i].ID == want {
			st.ID = f.students[i].ID
			f.students[i] = st
		}
	}
	return nil
}

func (f *fakeSource) Remove(ctx context.Context, collection, field string, value interface{}) error {
	if err := f.record(call{op: "delete", collection: collection, field: field, value: value}); err != nil {
		return err
	}
	want, _ := value.(int64)

	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.students[:0]
	for _, st := range f.students {
		if *st.ID != want {
			kept = append(kept, st)
		}
	}
	f.students = kept
	return nil
}

// seedStudents adds rows directly, bypassing the call log.
func (f *fakeSource) seedStudents(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		f.nextID[model.CollectionStudents]++
		id := f.nextID[model.CollectionStudents]
		f.students = append(f.students, model.Student{ID: &id, Fullname: n, Age: "20", GroupID: model.Int64(1)})
	}
}
