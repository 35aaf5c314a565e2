package blogs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
	"github.com/google/uuid"
)

var (
	ErrInvalidRecord        = errors.New("invalid record")
	ErrRecordNotFound       = errors.New("record not found")
	ErrFailedToEnqueue      = errors.New("failed to enqueue record")
	ErrFailedToCreateRecord = errors.New("failed to create record")
	ErrFailedToGetRecord    = errors.New("failed to get record")
	ErrFailedToListRecords  = errors.New("failed to list records")
	ErrFailedToUpdateRecord = errors.New("failed to update record")
	ErrFailedToDeleteRecord = errors.New("failed to delete record")
)

// Repository is the record store port consumed by the service.
type Repository interface {
	GetBlogByID(ctx context.Context, id uint64) (*Blog, error)
	ListBlogs(ctx context.Context, filters ListFilters) ([]*Blog, error)
	InsertBlog(ctx context.Context, row *BlogRow) (uint64, error)
	UpdateBlogContent(ctx context.Context, id uint64, content string, updatedAt time.Time) (int64, error)
	DeleteBlog(ctx context.Context, id uint64) (int64, error)
	BulkDeleteBlogs(ctx context.Context, ids []uint64) (int64, error)
	BulkUpdateBlogs(ctx context.Context, ids []uint64, set BulkUpdateSet) (int64, error)
}

// Publisher is the stream bus port for the asynchronous create path.
type Publisher interface {
	PublishRecord(ctx context.Context, record *StreamRecord) (*EnqueueReceipt, error)
}

type Service struct {
	logger    *logfx.Logger
	repo      Repository
	publisher Publisher
}

func NewService(logger *logfx.Logger, repo Repository, publisher Publisher) *Service {
	return &Service{logger: logger, repo: repo, publisher: publisher}
}

// Enqueue validates the record and appends it to its category stream. The
// record becomes queryable only after the batch consumer flushes it.
func (s *Service) Enqueue(ctx context.Context, attrs *BlogCreateAttrs) (*EnqueueReceipt, error) {
	record, err := buildStreamRecord(attrs)
	if err != nil {
		return nil, err
	}

	receipt, err := s.publisher.PublishRecord(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w (genre: %s): %w", ErrFailedToEnqueue, record.Genre, err)
	}

	s.logger.InfoContext(
		ctx,
		"enqueued blog",
		slog.String("stream", receipt.Stream),
		slog.String("message_id", receipt.MessageID),
	)

	return receipt, nil
}

// CreateSync validates the record and inserts it directly, bypassing the
// stream bus. Callers that need read-after-write use this path.
func (s *Service) CreateSync(ctx context.Context, attrs *BlogCreateAttrs) (uint64, error) {
	record, err := buildStreamRecord(attrs)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	createdAt, ok := ParseTimeISO(record.CreatedAtISO)
	if !ok {
		createdAt = now
	}

	row := &BlogRow{
		ClientMsgID: record.ClientMsgID,
		Author:      record.Author,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
		Genre:       record.Genre,
		Location:    record.Location,
		Content:     record.Content,
	}

	id, err := s.repo.InsertBlog(ctx, row)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToCreateRecord, err)
	}

	return id, nil
}

func (s *Service) GetByID(ctx context.Context, id uint64) (*Blog, error) {
	record, err := s.repo.GetBlogByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w (id: %d): %w", ErrFailedToGetRecord, id, err)
	}

	if record == nil {
		return nil, fmt.Errorf("%w (id: %d)", ErrRecordNotFound, id)
	}

	return record, nil
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]*Blog, error) {
	if filters.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", ErrInvalidRecord)
	}

	if filters.Limit == 0 {
		filters.Limit = ListLimitDefault
	}

	filters.Limit = min(max(filters.Limit, 1), ListLimitMax)

	records, err := s.repo.ListBlogs(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToListRecords, err)
	}

	return records, nil
}

func (s *Service) UpdateContent(
	ctx context.Context,
	id uint64,
	content string,
	updatedAtISO string,
) error {
	if content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidRecord)
	}

	updatedAt, ok := ParseTimeISO(updatedAtISO)
	if !ok {
		updatedAt = time.Now().UTC()
	}

	affected, err := s.repo.UpdateBlogContent(ctx, id, content, updatedAt)
	if err != nil {
		return fmt.Errorf("%w (id: %d): %w", ErrFailedToUpdateRecord, id, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w (id: %d)", ErrRecordNotFound, id)
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	affected, err := s.repo.DeleteBlog(ctx, id)
	if err != nil {
		return fmt.Errorf("%w (id: %d): %w", ErrFailedToDeleteRecord, id, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w (id: %d)", ErrRecordNotFound, id)
	}

	return nil
}

func (s *Service) BulkDelete(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids are required", ErrInvalidRecord)
	}

	deleted, err := s.repo.BulkDeleteBlogs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToDeleteRecord, err)
	}

	return deleted, nil
}

func (s *Service) BulkUpdate(ctx context.Context, ids []uint64, set BulkUpdateSet) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids are required", ErrInvalidRecord)
	}

	if set.Genre == "" && set.Location == "" && set.Content == "" {
		return 0, fmt.Errorf("%w: no fields to update", ErrInvalidRecord)
	}

	updated, err := s.repo.BulkUpdateBlogs(ctx, ids, set)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToUpdateRecord, err)
	}

	return updated, nil
}

// buildStreamRecord normalizes create attributes and fills the defaulted
// fields: a random client message id and the current UTC timestamp.
func buildStreamRecord(attrs *BlogCreateAttrs) (*StreamRecord, error) {
	genre := strings.TrimSpace(attrs.Genre)
	location := strings.TrimSpace(attrs.Location)
	author := strings.TrimSpace(attrs.Author)
	content := attrs.Content

	if genre == "" || location == "" || author == "" || content == "" {
		return nil, fmt.Errorf(
			"%w: author, content, genre, location are required",
			ErrInvalidRecord,
		)
	}

	if utf8.RuneCountInString(author) > AuthorMaxLength {
		return nil, fmt.Errorf("%w: author exceeds %d characters", ErrInvalidRecord, AuthorMaxLength)
	}

	if utf8.RuneCountInString(genre) > GenreMaxLength {
		return nil, fmt.Errorf("%w: genre exceeds %d characters", ErrInvalidRecord, GenreMaxLength)
	}

	if utf8.RuneCountInString(location) > LocationMaxLength {
		return nil, fmt.Errorf(
			"%w: location exceeds %d characters",
			ErrInvalidRecord,
			LocationMaxLength,
		)
	}

	clientMsgID := attrs.ClientMsgID
	if clientMsgID == "" {
		clientMsgID = uuid.NewString()
	}

	createdAtISO := attrs.CreatedAtISO
	if createdAtISO == "" {
		createdAtISO = time.Now().UTC().Format(time.RFC3339Nano)
	}

	return &StreamRecord{
		ClientMsgID:  clientMsgID,
		Author:       author,
		Content:      content,
		Genre:        genre,
		Location:     location,
		CreatedAtISO: createdAtISO,
	}, nil
}
