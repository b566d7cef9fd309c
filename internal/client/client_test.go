package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MadinaDev2107/Group-Manager/internal/handler"
	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/MadinaDev2107/Group-Manager/internal/repository"
	"github.com/MadinaDev2107/Group-Manager/internal/service"
	"github.com/MadinaDev2107/Group-Manager/internal/utils"
)

const secret = "client-secret"

func newBackend(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	store := repository.NewMemoryStore()
	h := handler.NewCollectionHandler(
		service.NewGroupService(store.Groups()),
		service.NewStudentService(store.Students()),
	)
	srv := httptest.NewServer(handler.NewRouter(h, secret).Setup())
	t.Cleanup(srv.Close)

	key, err := utils.GenerateAPIKey(model.APIKeyClaims{Role: model.RoleEditor}, secret, 0)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return srv, New(srv.URL+"/api/v1/", key, srv.Client())
}

func TestClient_RoundTrip(t *testing.T) {
	_, c := newBackend(t)
	ctx := context.Background()

	if err := c.Insert(ctx, model.CollectionGroups, model.Group{Name: "A"}); err != nil {
		t.Fatalf("insert group: %v", err)
	}
	bob := model.Student{Fullname: "Bob", Age: "20", GroupID: model.Int64(1), Status: true}
	if err := c.Insert(ctx, model.CollectionStudents, bob); err != nil {
		t.Fatalf("insert student: %v", err)
	}

	var groups []model.Group
	if err := c.ListAll(ctx, model.CollectionGroups, &groups); err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 1 || *groups[0].ID != 1 || groups[0].Name != "A" || groups[0].Status {
		t.Fatalf("unexpected groups: %+v", groups)
	}

	bob.Fullname = "Bobby"
	if err := c.Update(ctx, model.CollectionStudents, bob, "id", int64(1)); err != nil {
		t.Fatalf("update: %v", err)
	}

	var students []model.Student
	if err := c.ListWhere(ctx, model.CollectionStudents, "group_id", int64(1), &students); err != nil {
		t.Fatalf("list where: %v", err)
	}
	if len(students) != 1 || students[0].Fullname != "Bobby" {
		t.Fatalf("unexpected students: %+v", students)
	}

	if err := c.Remove(ctx, model.CollectionStudents, "id", int64(1)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := c.ListAll(ctx, model.CollectionStudents, &students); err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("expected no students, got %+v", students)
	}
}

func TestClient_BackendErrorIsReturned(t *testing.T) {
	_, c := newBackend(t)

	err := c.Insert(context.Background(), model.CollectionStudents, model.Student{Fullname: "X", GroupID: model.Int64(9)})

	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if ce.StatusCode != http.StatusBadRequest || ce.Op != "insert" || ce.Collection != model.CollectionStudents {
		t.Errorf("unexpected error: %+v", ce)
	}
	if StatusCode(err) != http.StatusBadRequest {
		t.Errorf("StatusCode() = %d", StatusCode(err))
	}
}

func TestClient_RequestShape(t *testing.T) {
	var gotMethod, gotQuery, gotKey, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("apikey")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok","data":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", srv.Client())
	err := c.Update(context.Background(), "students", map[string]string{"fullname": "Bob"}, "id", int64(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPatch || gotQuery != "id=eq.7" || gotKey != "k" {
		t.Errorf("unexpected request: method=%s query=%s key=%s", gotMethod, gotQuery, gotKey)
	}
	if !strings.Contains(gotBody, `"fullname":"Bob"`) {
		t.Errorf("unexpected body: %s", gotBody)
	}
}

func TestClient_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	var rows []model.Group
	err := New(srv.URL, "", srv.Client()).ListAll(context.Background(), "groups", &rows)

	if StatusCode(err) != http.StatusBadGateway {
		t.Fatalf("expected 502 error, got %v", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, "", nil).Remove(context.Background(), "students", "id", 1)

	var ce *Error
	if !errors.As(err, &ce) || ce.Err == nil || ce.StatusCode != 0 {
		t.Fatalf("expected transport error, got %v", err)
	}
}
