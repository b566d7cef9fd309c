package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownColumn = errors.New("column does not exist")

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindBool
)

type Columns map[string]ColumnKind

// Filter is one equality predicate: Column = Value.
// NoMatch marks a value that cannot be represented in the column's type;
// such a filter matches no rows.
type Filter struct {
	Column  string
	Value   interface{}
	NoMatch bool
}

// ParseFilter converts a raw value into the column's type. Unknown columns are an
// error, values of the wrong shape are not.
func (c Columns) ParseFilter(column, raw string) (Filter, error) {
	kind, ok := c[column]
	if !ok {
		return Filter{}, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	f := Filter{Column: column}
	switch kind {
	case KindInt:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			f.NoMatch = true
			return f, nil
		}
		f.Value = v
	case KindBool:
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			f.NoMatch = true
			return f, nil
		}
		f.Value = v
	default:
		f.Value = raw
	}
	return f, nil
}

// AnyNoMatch reports whether the conjunction of filters can never match.
func AnyNoMatch(filters []Filter) bool {
	for _, f := range filters {
		if f.NoMatch {
			return true
		}
	}
	return false
}
