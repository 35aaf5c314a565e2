package batching

import (
	"context"
	"time"

	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
)

// Entry is a single stream entry as delivered by the bus.
type Entry struct {
	Fields map[string]string
	ID     string
}

// Delivery groups the entries received from one stream in a group read.
type Delivery struct {
	Stream  string
	Entries []Entry
}

// StreamBus is the bus port consumed by the batch consumer.
type StreamBus interface {
	// DiscoverStreams returns the stream names for every category ever
	// advertised, sorted for deterministic iteration.
	DiscoverStreams(ctx context.Context) ([]string, error)

	// EnsureGroup creates the consumer group at the beginning of the stream,
	// tolerating groups that already exist.
	EnsureGroup(ctx context.Context, stream string, group string) error

	// ReadGroup performs one blocking group read across all given streams,
	// delivering only entries not yet handed to this consumer name.
	ReadGroup(
		ctx context.Context,
		group string,
		consumer string,
		streams []string,
		count int64,
		block time.Duration,
	) ([]Delivery, error)

	// Ack acknowledges delivered entries on one stream.
	Ack(ctx context.Context, stream string, group string, entryIDs ...string) error

	// DeleteEntries removes acknowledged entries from one stream.
	DeleteEntries(ctx context.Context, stream string, entryIDs ...string) error
}

// RecordStore is the record store port consumed by the batch consumer.
type RecordStore interface {
	// BulkInsertBlogs inserts all rows in one transaction. Duplicate client
	// message ids are absorbed by the store.
	BulkInsertBlogs(ctx context.Context, rows []*blogs.BlogRow) error
}

type Config struct {
	ConsumerGroup string `conf:"consumer_group" default:"blog_group"`

	// ConsumerName defaults to host-pid identity when left empty.
	ConsumerName string `conf:"consumer_name"`

	BatchMaxCount int           `conf:"batch_max_count" default:"1000"`
	BatchMaxAge   time.Duration `conf:"batch_max_age"   default:"300ms"`
	BatchMaxBytes int           `conf:"batch_max_bytes" default:"2097152"`
}
