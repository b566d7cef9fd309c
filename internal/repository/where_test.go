package repository

import (
	"errors"
	"testing"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
)

func TestBuildWhere_NoFilters(t *testing.T) {
	where, args, err := buildWhere(model.StudentColumns, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if where != "1=1" {
		t.Errorf("expected 1=1, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildWhere_PlaceholdersStartAtOffset(t *testing.T) {
	filters := []model.Filter{
		{Column: "group_id", Value: int64(2)},
		{Column: "status", Value: true},
	}

	where, args, err := buildWhere(model.StudentColumns, filters, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if where != "1=1 AND group_id = $5 AND status = $6" {
		t.Errorf("unexpected where clause: %q", where)
	}
	if len(args) != 2 || args[0] != int64(2) || args[1] != true {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildWhere_RejectsUnknownColumn(t *testing.T) {
	filters := []model.Filter{{Column: "name; DROP TABLE students", Value: "x"}}

	_, _, err := buildWhere(model.StudentColumns, filters, 1)
	if !errors.Is(err, model.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}
