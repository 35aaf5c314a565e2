package blogs_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusDown = errors.New("bus down")

type fakeRepo struct {
	records map[uint64]*blogs.Blog

	insertedRows []*blogs.BlogRow
	lastFilters  blogs.ListFilters

	nextID         uint64
	updateAffected int64
	deleteAffected int64
	bulkDeleted    int64
	bulkUpdated    int64
}

func (r *fakeRepo) GetBlogByID(ctx context.Context, id uint64) (*blogs.Blog, error) {
	return r.records[id], nil
}

func (r *fakeRepo) ListBlogs(
	ctx context.Context,
	filters blogs.ListFilters,
) ([]*blogs.Blog, error) {
	r.lastFilters = filters

	return []*blogs.Blog{}, nil
}

func (r *fakeRepo) InsertBlog(ctx context.Context, row *blogs.BlogRow) (uint64, error) {
	r.insertedRows = append(r.insertedRows, row)
	r.nextID++

	return r.nextID, nil
}

func (r *fakeRepo) UpdateBlogContent(
	ctx context.Context,
	id uint64,
	content string,
	updatedAt time.Time,
) (int64, error) {
	return r.updateAffected, nil
}

func (r *fakeRepo) DeleteBlog(ctx context.Context, id uint64) (int64, error) {
	return r.deleteAffected, nil
}

func (r *fakeRepo) BulkDeleteBlogs(ctx context.Context, ids []uint64) (int64, error) {
	return r.bulkDeleted, nil
}

func (r *fakeRepo) BulkUpdateBlogs(
	ctx context.Context,
	ids []uint64,
	set blogs.BulkUpdateSet,
) (int64, error) {
	return r.bulkUpdated, nil
}

type fakePublisher struct {
	published []*blogs.StreamRecord
	err       error
}

func (p *fakePublisher) PublishRecord(
	ctx context.Context,
	record *blogs.StreamRecord,
) (*blogs.EnqueueReceipt, error) {
	if p.err != nil {
		return nil, p.err
	}

	p.published = append(p.published, record)

	return &blogs.EnqueueReceipt{
		Stream:    "blogs:genre:" + record.Genre,
		MessageID: "1-0",
	}, nil
}

func newTestService(
	repo *fakeRepo,
	publisher *fakePublisher,
) *blogs.Service {
	logger := logfx.NewLogger(
		logfx.WithWriter(&strings.Builder{}),
		logfx.WithConfig(&logfx.Config{Level: "ERROR", PrettyMode: false}), //nolint:exhaustruct
	)

	return blogs.NewService(logger, repo, publisher)
}

func TestService_Enqueue(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}           //nolint:exhaustruct
	publisher := &fakePublisher{} //nolint:exhaustruct
	service := newTestService(repo, publisher)

	receipt, err := service.Enqueue(t.Context(), &blogs.BlogCreateAttrs{ //nolint:exhaustruct
		Author:   "  alice  ",
		Content:  "hello",
		Genre:    " tech ",
		Location: " berlin ",
	})

	require.NoError(t, err)
	assert.Equal(t, "blogs:genre:tech", receipt.Stream)
	assert.Equal(t, "1-0", receipt.MessageID)

	require.Len(t, publisher.published, 1)
	record := publisher.published[0]

	assert.Equal(t, "alice", record.Author)
	assert.Equal(t, "tech", record.Genre)
	assert.Equal(t, "berlin", record.Location)
	assert.Equal(t, "hello", record.Content)

	// absent client_msg_id gets a fresh 36-char identifier
	assert.Len(t, record.ClientMsgID, 36)

	// absent created_at_iso is stamped with a parseable UTC timestamp
	_, parseErr := time.Parse(time.RFC3339Nano, record.CreatedAtISO)
	require.NoError(t, parseErr)
}

func TestService_Enqueue_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		attrs blogs.BlogCreateAttrs
	}{
		{
			name: "missing_author",
			attrs: blogs.BlogCreateAttrs{ //nolint:exhaustruct
				Content: "x", Genre: "g", Location: "l",
			},
		},
		{
			name: "missing_content",
			attrs: blogs.BlogCreateAttrs{ //nolint:exhaustruct
				Author: "a", Genre: "g", Location: "l",
			},
		},
		{
			name: "missing_genre",
			attrs: blogs.BlogCreateAttrs{ //nolint:exhaustruct
				Author: "a", Content: "x", Location: "l",
			},
		},
		{
			name: "missing_location",
			attrs: blogs.BlogCreateAttrs{ //nolint:exhaustruct
				Author: "a", Content: "x", Genre: "g",
			},
		},
		{
			name: "whitespace_genre",
			attrs: blogs.BlogCreateAttrs{ //nolint:exhaustruct
				Author: "a", Content: "x", Genre: "   ", Location: "l",
			},
		},
		{
			name: "genre_too_long",
			attrs: blogs.BlogCreateAttrs{ //nolint:exhaustruct
				Author: "a", Content: "x", Genre: strings.Repeat("g", 65), Location: "l",
			},
		},
		{
			name: "author_too_long",
			attrs: blogs.BlogCreateAttrs{ //nolint:exhaustruct
				Author: strings.Repeat("a", 129), Content: "x", Genre: "g", Location: "l",
			},
		},
	}

	for _, tt := range tests { //nolint:varnamelen
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeRepo{}           //nolint:exhaustruct
			publisher := &fakePublisher{} //nolint:exhaustruct
			service := newTestService(repo, publisher)

			_, err := service.Enqueue(t.Context(), &tt.attrs)
			require.ErrorIs(t, err, blogs.ErrInvalidRecord)
			assert.Empty(t, publisher.published)
		})
	}
}

func TestService_Enqueue_BusErrorSurfaces(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}                         //nolint:exhaustruct
	publisher := &fakePublisher{err: errBusDown} //nolint:exhaustruct
	service := newTestService(repo, publisher)

	_, err := service.Enqueue(t.Context(), &blogs.BlogCreateAttrs{ //nolint:exhaustruct
		Author: "a", Content: "x", Genre: "g", Location: "l",
	})

	require.ErrorIs(t, err, blogs.ErrFailedToEnqueue)
	require.ErrorIs(t, err, errBusDown)
}

func TestService_CreateSync(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}           //nolint:exhaustruct
	publisher := &fakePublisher{} //nolint:exhaustruct
	service := newTestService(repo, publisher)

	id, err := service.CreateSync(t.Context(), &blogs.BlogCreateAttrs{ //nolint:exhaustruct
		Author:       "alice",
		Content:      "hello",
		Genre:        "tech",
		Location:     "berlin",
		CreatedAtISO: "2024-08-01T10:00:00Z",
		ClientMsgID:  "11111111-1111-1111-1111-111111111111",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	// the sync path never touches the bus
	assert.Empty(t, publisher.published)

	require.Len(t, repo.insertedRows, 1)
	row := repo.insertedRows[0]

	assert.Equal(t, "11111111-1111-1111-1111-111111111111", row.ClientMsgID)
	assert.Equal(t, time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC), row.CreatedAt)
	assert.False(t, row.UpdatedAt.Before(row.CreatedAt))
}

func TestService_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{records: map[uint64]*blogs.Blog{}} //nolint:exhaustruct
	service := newTestService(repo, &fakePublisher{})    //nolint:exhaustruct

	_, err := service.GetByID(t.Context(), 42)
	require.ErrorIs(t, err, blogs.ErrRecordNotFound)
}

func TestService_List_LimitClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default", limit: 0, wantLimit: 50},
		{name: "too_large", limit: 9999, wantLimit: 500},
		{name: "too_small", limit: -3, wantLimit: 1},
		{name: "in_range", limit: 120, wantLimit: 120},
	}

	for _, tt := range tests { //nolint:varnamelen
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeRepo{}                            //nolint:exhaustruct
			service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

			_, err := service.List(t.Context(), blogs.ListFilters{Limit: tt.limit}) //nolint:exhaustruct
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, repo.lastFilters.Limit)
		})
	}
}

func TestService_List_NegativeOffsetRejected(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}                            //nolint:exhaustruct
	service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

	_, err := service.List(t.Context(), blogs.ListFilters{Offset: -1}) //nolint:exhaustruct
	require.ErrorIs(t, err, blogs.ErrInvalidRecord)
}

func TestService_UpdateContent(t *testing.T) {
	t.Parallel()

	t.Run("empty_content_rejected", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{updateAffected: 1}              //nolint:exhaustruct
		service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

		err := service.UpdateContent(t.Context(), 1, "", "")
		require.ErrorIs(t, err, blogs.ErrInvalidRecord)
	})

	t.Run("zero_affected_is_not_found", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{updateAffected: 0}              //nolint:exhaustruct
		service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

		err := service.UpdateContent(t.Context(), 1, "new", "")
		require.ErrorIs(t, err, blogs.ErrRecordNotFound)
	})

	t.Run("updated", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{updateAffected: 1}              //nolint:exhaustruct
		service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

		err := service.UpdateContent(t.Context(), 1, "new", "2024-08-01T10:00:00Z")
		require.NoError(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("zero_affected_is_not_found", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{deleteAffected: 0}              //nolint:exhaustruct
		service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

		err := service.Delete(t.Context(), 1)
		require.ErrorIs(t, err, blogs.ErrRecordNotFound)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{deleteAffected: 1}              //nolint:exhaustruct
		service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

		require.NoError(t, service.Delete(t.Context(), 1))
	})
}

func TestService_BulkDelete_Validation(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{bulkDeleted: 2}                 //nolint:exhaustruct
	service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

	_, err := service.BulkDelete(t.Context(), nil)
	require.ErrorIs(t, err, blogs.ErrInvalidRecord)

	deleted, err := service.BulkDelete(t.Context(), []uint64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestService_BulkUpdate_Validation(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{bulkUpdated: 2}                 //nolint:exhaustruct
	service := newTestService(repo, &fakePublisher{}) //nolint:exhaustruct

	_, err := service.BulkUpdate(t.Context(), nil, blogs.BulkUpdateSet{Genre: "n"}) //nolint:exhaustruct
	require.ErrorIs(t, err, blogs.ErrInvalidRecord)

	_, err = service.BulkUpdate(t.Context(), []uint64{1}, blogs.BulkUpdateSet{}) //nolint:exhaustruct
	require.ErrorIs(t, err, blogs.ErrInvalidRecord)

	updated, err := service.BulkUpdate(
		t.Context(),
		[]uint64{1, 2},
		blogs.BulkUpdateSet{Genre: "n"}, //nolint:exhaustruct
	)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
}
