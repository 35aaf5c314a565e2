package batching

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getblogd/blogd-services/pkg/ajan/lib"
	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
)

const (
	idleSleep  = 500 * time.Millisecond
	errorSleep = 1000 * time.Millisecond
	readBlock  = 1000 * time.Millisecond

	flushTimeout = 30 * time.Second

	// fixed per-entry overhead added to the byte accumulator on top of the
	// variable-length fields.
	entryOverheadBytes = 64
)

type bufferKey struct {
	genre    string
	location string
}

type bufferedItem struct {
	row     *blogs.BlogRow
	stream  string
	entryID string
}

// buffer accumulates items for one (genre, location) key between flushes.
type buffer struct {
	firstAt time.Time
	items   []bufferedItem
	bytes   int
}

// Consumer reads category streams under a shared consumer group, accumulates
// records into per-key buffers and flushes them as bulk inserts. Entries are
// acknowledged and deleted only after the insert committed, so delivery is
// at-least-once and duplicates are absorbed by the store.
type Consumer struct {
	logger *logfx.Logger
	bus    StreamBus
	store  RecordStore
	config *Config

	buffers map[bufferKey]*buffer

	now func() time.Time
}

func NewConsumer(
	logger *logfx.Logger,
	bus StreamBus,
	store RecordStore,
	config *Config,
) *Consumer {
	return &Consumer{
		logger: logger,
		bus:    bus,
		store:  store,
		config: config,

		buffers: make(map[bufferKey]*buffer),

		now: func() time.Time { return time.Now().UTC() },
	}
}

// DefaultConsumerName derives a consumer name from host and process identity.
// It is stable for the lifetime of the process.
func DefaultConsumerName() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "worker"
	}

	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}

// Run executes the consume loop until the context is cancelled. Iteration
// errors are logged and retried after a pause; buffers survive errors so no
// delivered entry is lost.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.InfoContext(
		ctx,
		"batch consumer starting",
		slog.String("group", c.config.ConsumerGroup),
		slog.String("consumer", c.config.ConsumerName),
		slog.Int("batch_max_count", c.config.BatchMaxCount),
		slog.Duration("batch_max_age", c.config.BatchMaxAge),
		slog.Int("batch_max_bytes", c.config.BatchMaxBytes),
	)

	for {
		if ctx.Err() != nil {
			return nil
		}

		err := c.iterate(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			c.logger.ErrorContext(ctx, "consumer iteration failed", slog.Any("error", err))

			lib.SleepContext(ctx, errorSleep)
		}
	}
}

func (c *Consumer) iterate(ctx context.Context) error {
	streams, err := c.bus.DiscoverStreams(ctx)
	if err != nil {
		return fmt.Errorf("discovering streams: %w", err)
	}

	if len(streams) == 0 {
		lib.SleepContext(ctx, idleSleep)

		return nil
	}

	c.ensureGroups(ctx, streams)

	deliveries, err := c.bus.ReadGroup(
		ctx,
		c.config.ConsumerGroup,
		c.config.ConsumerName,
		streams,
		int64(c.config.BatchMaxCount),
		readBlock,
	)
	if err != nil {
		return fmt.Errorf("reading streams: %w", err)
	}

	for _, delivery := range deliveries {
		for _, entry := range delivery.Entries {
			c.addToBuffer(delivery.Stream, entry)
		}
	}

	// Evaluate every key, not just the ones touched by this read, so that
	// age-driven flushes fire on quiet keys as well.
	for key := range c.buffers {
		if !c.shouldFlush(key) {
			continue
		}

		if err := c.flushKey(ctx, key); err != nil {
			return fmt.Errorf("flushing (genre=%q, location=%q): %w", key.genre, key.location, err)
		}
	}

	return nil
}

func (c *Consumer) ensureGroups(ctx context.Context, streams []string) {
	for _, stream := range streams {
		err := c.bus.EnsureGroup(ctx, stream, c.config.ConsumerGroup)
		if err != nil {
			c.logger.WarnContext(
				ctx,
				"failed to ensure consumer group",
				slog.String("stream", stream),
				slog.Any("error", err),
			)
		}
	}
}

func (c *Consumer) addToBuffer(stream string, entry Entry) {
	now := c.now()

	createdAt, ok := blogs.ParseTimeISO(entry.Fields["created_at_iso"])
	if !ok {
		createdAt = now
	}

	row := &blogs.BlogRow{
		ClientMsgID: entry.Fields["client_msg_id"],
		Author:      entry.Fields["author"],
		CreatedAt:   createdAt,
		UpdatedAt:   now,
		Genre:       entry.Fields["genre"],
		Location:    entry.Fields["location"],
		Content:     entry.Fields["content"],
	}

	key := bufferKey{genre: row.Genre, location: row.Location}

	buf, exists := c.buffers[key]
	if !exists {
		buf = &buffer{firstAt: now, items: nil, bytes: 0}
		c.buffers[key] = buf
	}

	buf.items = append(buf.items, bufferedItem{row: row, stream: stream, entryID: entry.ID})
	buf.bytes += len(row.Content) + len(row.Author) + len(row.Location) + len(row.Genre) +
		entryOverheadBytes
}

func (c *Consumer) shouldFlush(key bufferKey) bool {
	buf, exists := c.buffers[key]
	if !exists || len(buf.items) == 0 {
		return false
	}

	if len(buf.items) >= c.config.BatchMaxCount {
		return true
	}

	if c.now().Sub(buf.firstAt) >= c.config.BatchMaxAge {
		return true
	}

	return buf.bytes >= c.config.BatchMaxBytes
}

// flushKey inserts the key's buffered rows in one transaction, then
// acknowledges and deletes the source entries. On insert failure the buffer
// is left untouched for the next iteration to retry. Ack and delete failures
// are logged only, as the insert has already committed.
func (c *Consumer) flushKey(ctx context.Context, key bufferKey) error {
	buf, exists := c.buffers[key]
	if !exists || len(buf.items) == 0 {
		return nil
	}

	rows := make([]*blogs.BlogRow, len(buf.items))
	for i, item := range buf.items {
		rows[i] = item.row
	}

	// The flush is detached from ctx cancellation so that a stopping consumer
	// completes a started insert and its acks instead of abandoning them.
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()

	if err := c.store.BulkInsertBlogs(flushCtx, rows); err != nil {
		return fmt.Errorf("bulk insert of %d rows: %w", len(rows), err)
	}

	streamOrder := make([]string, 0)
	entryIDs := make(map[string][]string)

	for _, item := range buf.items {
		if _, seen := entryIDs[item.stream]; !seen {
			streamOrder = append(streamOrder, item.stream)
		}

		entryIDs[item.stream] = append(entryIDs[item.stream], item.entryID)
	}

	for _, stream := range streamOrder {
		ids := entryIDs[stream]

		if err := c.bus.Ack(flushCtx, stream, c.config.ConsumerGroup, ids...); err != nil {
			c.logger.WarnContext(
				ctx,
				"failed to ack entries",
				slog.String("stream", stream),
				slog.Int("count", len(ids)),
				slog.Any("error", err),
			)

			continue
		}

		if err := c.bus.DeleteEntries(flushCtx, stream, ids...); err != nil {
			c.logger.WarnContext(
				ctx,
				"failed to delete entries",
				slog.String("stream", stream),
				slog.Int("count", len(ids)),
				slog.Any("error", err),
			)
		}
	}

	c.logger.InfoContext(
		ctx,
		"flushed batch",
		slog.String("genre", key.genre),
		slog.String("location", key.location),
		slog.Int("rows", len(rows)),
		slog.Int("bytes", buf.bytes),
	)

	delete(c.buffers, key)

	return nil
}
