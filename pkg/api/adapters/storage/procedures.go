package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// RequiredProcedures lists the stored procedures the blogs pipeline calls.
func RequiredProcedures() []string {
	return []string{
		"sp_bulk_insert_blogs",
		"sp_bulk_delete_blogs",
		"sp_bulk_update_blogs",
		"sp_update_blog_content",
		"sp_delete_blog",
	}
}

const selectRoutinesQuery = `SELECT ROUTINE_NAME
FROM INFORMATION_SCHEMA.ROUTINES
WHERE ROUTINE_SCHEMA = DATABASE()
  AND ROUTINE_TYPE = 'PROCEDURE'
  AND ROUTINE_NAME IN (%s)`

// VerifyProcedures returns the names of required procedures missing from the
// current schema. Missing procedures are logged as errors but serving is not
// prevented: enqueue still works and flushes retry until the schema is fixed.
func (r *Repository) VerifyProcedures(ctx context.Context) ([]string, error) {
	names := RequiredProcedures()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	query := fmt.Sprintf(selectRoutinesQuery, placeholders)

	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}

	rows, err := r.queries.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQueryBlogs, err)
	}

	defer rows.Close() //nolint:errcheck

	present := make(map[string]bool, len(names))

	for rows.Next() {
		var name string

		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToQueryBlogs, err)
		}

		present[name] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQueryBlogs, err)
	}

	missing := make([]string, 0)

	for _, name := range names {
		if !present[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		r.logger.ErrorContext(
			ctx,
			"missing stored procedures",
			slog.Any("procedures", missing),
		)
	}

	return missing, nil
}
