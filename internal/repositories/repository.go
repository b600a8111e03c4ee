package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"assay-backend/internal/db"
	"assay-backend/internal/models"
)

// scanFunc reads one row; pgx.Rows satisfies pgx.Row.
type scanFunc[T any] func(row pgx.Row) (T, error)

// listPage runs a COUNT and a windowed SELECT sharing the same filter
// arguments. listSQL must leave room for LIMIT and OFFSET as the next two
// placeholders.
func listPage[T any](ctx context.Context, q db.Querier, countSQL, listSQL string, args []any, p models.PageRequest, scan scanFunc[T]) ([]T, int64, error) {
	var total int64
	if err := q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	rows, err := q.Query(ctx, fmt.Sprintf("%s LIMIT $%d OFFSET $%d", listSQL, n+1, n+2),
		append(append([]any{}, args...), p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]T, 0, p.Limit)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// softDelete marks a live row deleted and reports whether one changed.
func softDelete(ctx context.Context, q db.Querier, table, keyCol string, key string) (bool, error) {
	tag, err := q.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET deleted_at = NOW() WHERE %s = $1 AND deleted_at IS NULL`, table, keyCol),
		key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// setList builds the SET clause of a partial update.
type setList struct {
	cols []string
	args []any
}

func (s *setList) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setList) empty() bool { return len(s.cols) == 0 }

// update renders UPDATE ... SET ... WHERE keyCol = key on a live row,
// returning the given columns.
func (s *setList) update(table, keyCol string, key any, returning string) (string, []any) {
	args := append(append([]any{}, s.args...), key)
	cols := append(append([]string{}, s.cols...), "last_modified_date = NOW()")
	return fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d AND deleted_at IS NULL RETURNING %s`,
		table, strings.Join(cols, ", "), keyCol, len(args), returning), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
