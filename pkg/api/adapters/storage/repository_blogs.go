package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/getblogd/blogd-services/pkg/ajan/lib"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
)

// DateTimeFormat is the DATETIME(6) wire format the store expects, always in
// UTC.
const DateTimeFormat = "2006-01-02 15:04:05.000000"

var (
	ErrFailedToQueryBlogs  = errors.New("failed to query blogs")
	ErrFailedToInsertBlogs = errors.New("failed to insert blogs")
	ErrFailedToMutateBlogs = errors.New("failed to mutate blogs")
	ErrInsertedRowMissing  = errors.New("inserted row not found by client message id")
)

const selectBlogColumns = `id, client_msg_id, author, created_at, updated_at, genre, location, content`

const selectBlogByIDQuery = `SELECT ` + selectBlogColumns + `
FROM blogs
WHERE id = ?`

// The empty-string comparisons let unspecified filters fall away without
// building the query dynamically.
const selectBlogListQuery = `SELECT ` + selectBlogColumns + `
FROM blogs
WHERE (? = '' OR author = ?)
  AND (? = '' OR genre = ?)
  AND (? = '' OR location = ?)
ORDER BY created_at DESC
LIMIT ? OFFSET ?`

const selectIDByClientMsgIDQuery = `SELECT id FROM blogs WHERE client_msg_id = ?`

// blogRowPayload is one element of the rows JSON handed to the bulk insert
// procedure. Field order matches the procedure's JSON_TABLE columns.
type blogRowPayload struct {
	ClientMsgID string `json:"client_msg_id"`
	Author      string `json:"author"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Genre       string `json:"genre"`
	Location    string `json:"location"`
	Content     string `json:"content"`
}

func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

// BuildRowsJSON serializes insert rows into the payload consumed by
// sp_bulk_insert_blogs.
func BuildRowsJSON(rows []*blogs.BlogRow) (string, error) {
	payload := make([]blogRowPayload, len(rows))

	for i, row := range rows {
		payload[i] = blogRowPayload{
			ClientMsgID: row.ClientMsgID,
			Author:      row.Author,
			CreatedAt:   FormatDateTime(row.CreatedAt),
			UpdatedAt:   FormatDateTime(row.UpdatedAt),
			Genre:       row.Genre,
			Location:    row.Location,
			Content:     row.Content,
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding rows: %w", err)
	}

	return string(encoded), nil
}

func buildIDsJSON(ids []uint64) (string, error) {
	encoded, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encoding ids: %w", err)
	}

	return string(encoded), nil
}

func (r *Repository) GetBlogByID(ctx context.Context, id uint64) (*blogs.Blog, error) {
	row := r.queries.db.QueryRowContext(ctx, selectBlogByIDQuery, id)

	record, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil //nolint:nilnil
		}

		return nil, fmt.Errorf("%w (id=%d): %w", ErrFailedToQueryBlogs, id, err)
	}

	return record, nil
}

func (r *Repository) ListBlogs(
	ctx context.Context,
	filters blogs.ListFilters,
) ([]*blogs.Blog, error) {
	rows, err := r.queries.db.QueryContext(
		ctx,
		selectBlogListQuery,
		filters.Author, filters.Author,
		filters.Genre, filters.Genre,
		filters.Location, filters.Location,
		filters.Limit, filters.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQueryBlogs, err)
	}

	defer rows.Close() //nolint:errcheck

	records := make([]*blogs.Blog, 0)

	for rows.Next() {
		record, scanErr := scanBlog(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToQueryBlogs, scanErr)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQueryBlogs, err)
	}

	return records, nil
}

// InsertBlog inserts a single row through the bulk insert procedure and
// resolves the assigned id via the row's client message id.
func (r *Repository) InsertBlog(ctx context.Context, row *blogs.BlogRow) (uint64, error) {
	err := r.BulkInsertBlogs(ctx, []*blogs.BlogRow{row})
	if err != nil {
		return 0, err
	}

	var id uint64

	err = r.queries.db.
		QueryRowContext(ctx, selectIDByClientMsgIDQuery, row.ClientMsgID).
		Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w (client_msg_id=%q)", ErrInsertedRowMissing, row.ClientMsgID)
		}

		return 0, fmt.Errorf("%w: %w", ErrFailedToQueryBlogs, err)
	}

	return id, nil
}

// BulkInsertBlogs inserts all rows in one transaction through
// sp_bulk_insert_blogs. Duplicate client message ids only advance the
// existing row's updated_at.
func (r *Repository) BulkInsertBlogs(ctx context.Context, rows []*blogs.BlogRow) error {
	if len(rows) == 0 {
		return nil
	}

	rowsJSON, err := BuildRowsJSON(rows)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToInsertBlogs, err)
	}

	_, err = r.callProcedureReturningCount(ctx, "CALL sp_bulk_insert_blogs(?)", rowsJSON)
	if err != nil {
		return fmt.Errorf("%w (rows=%d): %w", ErrFailedToInsertBlogs, len(rows), err)
	}

	return nil
}

func (r *Repository) UpdateBlogContent(
	ctx context.Context,
	id uint64,
	content string,
	updatedAt time.Time,
) (int64, error) {
	affected, err := r.callProcedureReturningCount(
		ctx,
		"CALL sp_update_blog_content(?, ?, ?)",
		id,
		content,
		FormatDateTime(updatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("%w (id=%d): %w", ErrFailedToMutateBlogs, id, err)
	}

	return affected, nil
}

func (r *Repository) DeleteBlog(ctx context.Context, id uint64) (int64, error) {
	affected, err := r.callProcedureReturningCount(ctx, "CALL sp_delete_blog(?)", id)
	if err != nil {
		return 0, fmt.Errorf("%w (id=%d): %w", ErrFailedToMutateBlogs, id, err)
	}

	return affected, nil
}

func (r *Repository) BulkDeleteBlogs(ctx context.Context, ids []uint64) (int64, error) {
	idsJSON, err := buildIDsJSON(ids)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToMutateBlogs, err)
	}

	affected, err := r.callProcedureReturningCount(ctx, "CALL sp_bulk_delete_blogs(?)", idsJSON)
	if err != nil {
		return 0, fmt.Errorf("%w (ids=%d): %w", ErrFailedToMutateBlogs, len(ids), err)
	}

	return affected, nil
}

func (r *Repository) BulkUpdateBlogs(
	ctx context.Context,
	ids []uint64,
	set blogs.BulkUpdateSet,
) (int64, error) {
	idsJSON, err := buildIDsJSON(ids)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToMutateBlogs, err)
	}

	affected, err := r.callProcedureReturningCount(
		ctx,
		"CALL sp_bulk_update_blogs(?, ?, ?, ?)",
		idsJSON,
		set.Genre,
		set.Location,
		set.Content,
	)
	if err != nil {
		return 0, fmt.Errorf("%w (ids=%d): %w", ErrFailedToMutateBlogs, len(ids), err)
	}

	return affected, nil
}

// callProcedureReturningCount runs a stored procedure inside one transaction
// and scans the single-column count result set it returns.
func (r *Repository) callProcedureReturningCount(
	ctx context.Context,
	query string,
	args ...any,
) (int64, error) {
	tx, err := r.queries.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}

	defer tx.Rollback() //nolint:errcheck

	var count int64

	err = tx.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("calling procedure: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return count, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanBlog(row scannable) (*blogs.Blog, error) {
	var (
		record      blogs.Blog
		clientMsgID lib.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(
		&record.ID,
		&clientMsgID,
		&record.Author,
		&createdAt,
		&updatedAt,
		&record.Genre,
		&record.Location,
		&record.Content,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	record.CreatedAt = createdAt.UTC()
	record.UpdatedAt = updatedAt.UTC()

	if clientMsgID.Valid {
		value := clientMsgID.String
		record.ClientMsgID = &value
	}

	return &record, nil
}
