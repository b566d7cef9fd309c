package repository

import (
	"fmt"
	"strings"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
)

// buildWhere menyusun klausa WHERE dari filter kesamaan. Nama kolom hanya diambil
// dari whitelist, nilai selalu lewat placeholder.
func buildWhere(columns model.Columns, filters []model.Filter, argIdx int) (string, []interface{}, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	for _, f := range filters {
		if _, ok := columns[f.Column]; !ok {
			return "", nil, fmt.Errorf("%w: %s", model.ErrUnknownColumn, f.Column)
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", f.Column, argIdx))
		args = append(args, f.Value)
		argIdx++
	}

	return strings.Join(conditions, " AND "), args, nil
}
