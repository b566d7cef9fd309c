package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MadinaDev2107/Group-Manager/internal/metrics"
	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/MadinaDev2107/Group-Manager/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFilterRequired = errors.New("update and delete require at least one eq filter")
	ErrInvalidRecord  = errors.New("invalid record")
	ErrGroupNotFound  = errors.New("referenced group does not exist")
)

// pgForeignKeyViolation adalah SQLSTATE untuk pelanggaran foreign key
const pgForeignKeyViolation = "23503"

// Collection is the generic select/insert/update/delete-by-equality contract
// one named collection exposes over HTTP.
type Collection interface {
	Name() string
	Columns() model.Columns
	List(ctx context.Context, filters []model.Filter) (interface{}, error)
	Insert(ctx context.Context, body []byte) (interface{}, error)
	Update(ctx context.Context, body []byte, filters []model.Filter) (interface{}, error)
	Delete(ctx context.Context, filters []model.Filter) (int64, error)
}

type recordStore[T any] interface {
	FindAll(ctx context.Context, filters []model.Filter) ([]*T, error)
	Create(ctx context.Context, records ...*T) error
	UpdateWhere(ctx context.Context, record *T, filters []model.Filter) ([]*T, error)
	DeleteWhere(ctx context.Context, filters []model.Filter) (int64, error)
}

type collection[T any] struct {
	name    string
	columns model.Columns
	repo    recordStore[T]
	clearID func(*T)
}

func NewGroupService(repo repository.GroupRepository) Collection {
	return &collection[model.Group]{
		name:    model.CollectionGroups,
		columns: model.GroupColumns,
		repo:    repo,
		clearID: func(g *model.Group) { g.ID = nil },
	}
}

func NewStudentService(repo repository.StudentRepository) Collection {
	return &collection[model.Student]{
		name:    model.CollectionStudents,
		columns: model.StudentColumns,
		repo:    repo,
		clearID: func(s *model.Student) { s.ID = nil },
	}
}

func (c *collection[T]) Name() string           { return c.name }
func (c *collection[T]) Columns() model.Columns { return c.columns }

func (c *collection[T]) List(ctx context.Context, filters []model.Filter) (interface{}, error) {
	rows, err := c.repo.FindAll(ctx, filters)
	metrics.ObserveOperation(c.name, "select", err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert menerima satu record atau array record; id dari klien diabaikan.
// Array diproses all-or-nothing.
func (c *collection[T]) Insert(ctx context.Context, body []byte) (interface{}, error) {
	records, err := decodeRecords[T](body)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		c.clearID(rec)
	}

	// satu transaksi: semua record masuk atau tidak sama sekali
	err = mapDBError(c.repo.Create(ctx, records...))
	metrics.ObserveOperation(c.name, "insert", err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *collection[T]) Update(ctx context.Context, body []byte, filters []model.Filter) (interface{}, error) {
	if len(filters) == 0 {
		return nil, ErrFilterRequired
	}

	var rec T
	if err := decodeStrict(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	c.clearID(&rec)

	rows, err := c.repo.UpdateWhere(ctx, &rec, filters)
	err = mapDBError(err)
	metrics.ObserveOperation(c.name, "update", err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *collection[T]) Delete(ctx context.Context, filters []model.Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, ErrFilterRequired
	}

	n, err := c.repo.DeleteWhere(ctx, filters)
	metrics.ObserveOperation(c.name, "delete", err)
	return n, err
}

func decodeRecords[T any](body []byte) ([]*T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidRecord)
	}

	if trimmed[0] == '[' {
		var records []*T
		if err := decodeStrict(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: no records", ErrInvalidRecord)
		}
		for _, r := range records {
			if r == nil {
				return nil, fmt.Errorf("%w: null record", ErrInvalidRecord)
			}
		}
		return records, nil
	}

	rec := new(T)
	if err := decodeStrict(trimmed, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return []*T{rec}, nil
}

func decodeStrict(body []byte, dst interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func mapDBError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrGroupNotFound
	}
	return err
}
