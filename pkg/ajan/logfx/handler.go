package logfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// 38 is the max length of the time string + level string + space including color codes.
	PrettyModeMessageStartIndex = 38

	// 25 is the max length of the key string.
	PrettyModeKeyMaxLength = 25
)

var (
	ErrFailedToParseLogLevel = errors.New("failed to parse log level")
	ErrFailedToWriteLog      = errors.New("failed to write log")
)

type Handler struct {
	InitError error

	InnerHandler slog.Handler

	InnerWriter io.Writer
	InnerConfig *Config

	ScopeName string
}

var _ slog.Handler = (*Handler)(nil)

func NewHandler(scopeName string, w io.Writer, config *Config) *Handler {
	var initError error

	var level slog.Leveler

	level, err := ParseLevel(config.Level, false)
	if err != nil {
		initError = fmt.Errorf(
			"%w (level=%q): %w",
			ErrFailedToParseLogLevel,
			config.Level,
			err,
		)

		level = slog.Level(0)
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: ReplacerGenerator(config.PrettyMode),
		AddSource:   config.AddSource,
	}

	innerHandler := slog.NewJSONHandler(w, opts)

	return &Handler{
		InitError: initError,

		InnerHandler: innerHandler,
		InnerWriter:  w,
		InnerConfig:  config,

		ScopeName: scopeName,
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.InnerHandler.Enabled(ctx, level)
}

func (h *Handler) PrettifyMessage(rec slog.Record) string {
	out := strings.Builder{}

	timeStr := rec.Time.Format("15:04:05.000")

	out.WriteString(Colored(ColorDimGray, timeStr))
	out.WriteRune(' ')

	out.WriteString(LevelEncoderColored(rec.Level))

	currentLength := out.Len()
	if currentLength < PrettyModeMessageStartIndex {
		out.WriteString(strings.Repeat(" ", PrettyModeMessageStartIndex-currentLength))
	}

	out.WriteRune(' ')
	out.WriteString(rec.Message)

	rec.Attrs(func(attr slog.Attr) bool {
		keyLen := min(len(attr.Key), PrettyModeKeyMaxLength)

		out.WriteRune('\n')
		out.WriteRune('\t')
		out.WriteString(attr.Key)
		out.WriteString(strings.Repeat(" ", PrettyModeKeyMaxLength-keyLen))
		out.WriteRune('=')
		out.WriteRune(' ')

		out.WriteString(attr.Value.String())

		return true
	})

	out.WriteRune('\n')
	out.WriteRune('\n')

	return out.String()
}

func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	var err error

	if h.InnerConfig.PrettyMode {
		out := h.PrettifyMessage(rec)

		_, err = io.WriteString(h.InnerWriter, out)
	} else {
		err = h.InnerHandler.Handle(ctx, rec)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToWriteLog, err)
	}

	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		InitError: h.InitError,

		InnerHandler: h.InnerHandler.WithAttrs(attrs),

		InnerWriter: h.InnerWriter,
		InnerConfig: h.InnerConfig,

		ScopeName: h.ScopeName,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		InitError: h.InitError,

		InnerHandler: h.InnerHandler.WithGroup(name),

		InnerWriter: h.InnerWriter,
		InnerConfig: h.InnerConfig,

		ScopeName: h.ScopeName,
	}
}

// ReplacerGenerator renames extended levels so that the JSON output carries
// TRACE/FATAL/PANIC labels instead of slog's numeric offsets.
func ReplacerGenerator(prettyMode bool) func(groups []string, attr slog.Attr) slog.Attr {
	return func(groups []string, attr slog.Attr) slog.Attr {
		if attr.Key != slog.LevelKey {
			return attr
		}

		level, levelOk := attr.Value.Any().(slog.Level)
		if !levelOk {
			return attr
		}

		attr.Value = slog.StringValue(LevelEncoder(level))

		return attr
	}
}
