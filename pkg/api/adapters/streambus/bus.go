package streambus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/getblogd/blogd-services/pkg/ajan/connfx"
	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
	"github.com/getblogd/blogd-services/pkg/api/business/batching"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
	"github.com/redis/go-redis/v9"
)

const (
	// GenresSetKey is the registry set holding every category ever enqueued.
	GenresSetKey = "blogs:genres"

	// StreamPrefix prefixes the per-category stream names.
	StreamPrefix = "blogs:genre:"

	// GroupStartID makes consumer groups start at the beginning of the
	// stream so entries published before group creation are not lost.
	GroupStartID = "0"
)

var (
	ErrBusOperation     = errors.New("stream bus operation failed")
	ErrQueueNotResolved = errors.New("queue connection not resolved")
)

// Bus adapts Redis streams to the publish and consume ports of the blogs
// pipeline. One category maps to one stream; the registry set advertises
// categories to consumers.
type Bus struct {
	logger *logfx.Logger
	client *redis.Client

	streamMaxLen int64
}

func NewBusFromDefault(
	logger *logfx.Logger,
	registry *connfx.Registry,
	streamMaxLen int64,
) (*Bus, error) {
	return NewBusFromNamed(logger, registry, "queue", streamMaxLen)
}

func NewBusFromNamed(
	logger *logfx.Logger,
	registry *connfx.Registry,
	name string,
	streamMaxLen int64,
) (*Bus, error) {
	client, err := connfx.GetTypedConnection[*redis.Client](registry, name)
	if err != nil {
		return nil, fmt.Errorf("%w (name=%q): %w", ErrQueueNotResolved, name, err)
	}

	return &Bus{
		logger: logger,
		client: client,

		streamMaxLen: streamMaxLen,
	}, nil
}

func StreamForGenre(genre string) string {
	return StreamPrefix + genre
}

// PublishRecord advertises the record's category and appends the record to
// its category stream, capped at the approximate maximum length. The
// category is advertised first on purpose: when the append fails the
// consumer merely creates a group on an empty stream.
func (b *Bus) PublishRecord(
	ctx context.Context,
	record *blogs.StreamRecord,
) (*blogs.EnqueueReceipt, error) {
	stream := StreamForGenre(record.Genre)

	if err := b.client.SAdd(ctx, GenresSetKey, record.Genre).Err(); err != nil {
		return nil, fmt.Errorf(
			"%w (operation=sadd, genre=%q): %w",
			ErrBusOperation,
			record.Genre,
			err,
		)
	}

	args := &redis.XAddArgs{ //nolint:exhaustruct
		Stream: stream,
		MaxLen: b.streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"client_msg_id":  record.ClientMsgID,
			"author":         record.Author,
			"content":        record.Content,
			"genre":          record.Genre,
			"location":       record.Location,
			"created_at_iso": record.CreatedAtISO,
		},
	}

	entryID, err := b.client.XAdd(ctx, args).Result()
	if err != nil {
		return nil, fmt.Errorf("%w (operation=xadd, stream=%q): %w", ErrBusOperation, stream, err)
	}

	return &blogs.EnqueueReceipt{Stream: stream, MessageID: entryID}, nil
}

// DiscoverStreams maps every advertised category to its stream name, sorted
// for deterministic iteration.
func (b *Bus) DiscoverStreams(ctx context.Context) ([]string, error) {
	genres, err := b.client.SMembers(ctx, GenresSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w (operation=smembers): %w", ErrBusOperation, err)
	}

	slices.Sort(genres)

	streams := make([]string, len(genres))
	for i, genre := range genres {
		streams[i] = StreamForGenre(genre)
	}

	return streams, nil
}

// EnsureGroup creates the consumer group at the beginning of the stream,
// creating the stream when missing. A group that already exists is fine.
func (b *Bus) EnsureGroup(ctx context.Context, stream string, group string) error {
	err := b.client.XGroupCreateMkStream(ctx, stream, group, GroupStartID).Err()
	if err != nil && !isBusyGroupError(err) {
		return fmt.Errorf(
			"%w (operation=group_create, stream=%q, group=%q): %w",
			ErrBusOperation,
			stream,
			group,
			err,
		)
	}

	return nil
}

// ReadGroup performs a single blocking group read across all given streams,
// requesting only entries not yet delivered to this consumer name.
func (b *Bus) ReadGroup(
	ctx context.Context,
	group string,
	consumer string,
	streams []string,
	count int64,
	block time.Duration,
) ([]batching.Delivery, error) {
	streamArgs := make([]string, 0, len(streams)*2) //nolint:mnd
	streamArgs = append(streamArgs, streams...)

	for range streams {
		streamArgs = append(streamArgs, ">")
	}

	args := &redis.XReadGroupArgs{ //nolint:exhaustruct
		Group:    group,
		Consumer: consumer,
		Streams:  streamArgs,
		Count:    count,
		Block:    block,
	}

	result, err := b.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Block timeout expired without new entries.
			return nil, nil
		}

		return nil, fmt.Errorf(
			"%w (operation=read_group, group=%q): %w",
			ErrBusOperation,
			group,
			err,
		)
	}

	deliveries := make([]batching.Delivery, 0, len(result))

	for _, stream := range result {
		entries := make([]batching.Entry, 0, len(stream.Messages))

		for _, message := range stream.Messages {
			entries = append(entries, batching.Entry{
				ID:     message.ID,
				Fields: convertValues(message.Values),
			})
		}

		deliveries = append(deliveries, batching.Delivery{
			Stream:  stream.Stream,
			Entries: entries,
		})
	}

	return deliveries, nil
}

func (b *Bus) Ack(ctx context.Context, stream string, group string, entryIDs ...string) error {
	err := b.client.XAck(ctx, stream, group, entryIDs...).Err()
	if err != nil {
		return fmt.Errorf(
			"%w (operation=ack, stream=%q, group=%q): %w",
			ErrBusOperation,
			stream,
			group,
			err,
		)
	}

	return nil
}

func (b *Bus) DeleteEntries(ctx context.Context, stream string, entryIDs ...string) error {
	err := b.client.XDel(ctx, stream, entryIDs...).Err()
	if err != nil {
		return fmt.Errorf("%w (operation=xdel, stream=%q): %w", ErrBusOperation, stream, err)
	}

	return nil
}

func isBusyGroupError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "BUSYGROUP")
}

// convertValues narrows go-redis entry values to the string fields the
// pipeline works with.
func convertValues(values map[string]any) map[string]string {
	fields := make(map[string]string, len(values))

	for key, value := range values {
		if str, ok := value.(string); ok {
			fields[key] = str
		} else {
			fields[key] = fmt.Sprintf("%v", value)
		}
	}

	return fields
}
