package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Encoding string `envconfig:"ENCODING" default:"console"`
	Level    string `envconfig:"LEVEL" default:"info"`
}

type ctxKey struct{}

// WithRequestID кладёт идентификатор запроса в контекст, логгер добавит его в каждую запись
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestIDFromContext пустая строка, если идентификатора нет
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func New(app string, cfg *Config) *slog.Logger {
	return NewWithWriter(app, cfg, nil)
}

// NewWithWriter как New, но пишет в w (nil - stdout для json, stderr для console)
func NewWithWriter(app string, cfg *Config, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "console"
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler

	switch encoding {
	case "json":
		if w == nil {
			w = os.Stdout
		}
		handler = slog.NewJSONHandler(w, opts)
	case "console":
		if w == nil {
			w = os.Stderr
		}
		handler = slog.NewTextHandler(w, opts)
	default:
		panic(fmt.Errorf("invalid logger config: encoding %s is not supported", encoding))
	}

	return slog.New(&ContextHandler{handler: handler}).With(
		"app", app,
	)
}

// parseLevel парсит строковый уровень в slog.Level
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Errorf("invalid logger config: level %s is not supported", level))
	}
}

// ContextHandler дописывает request_id из контекста
type ContextHandler struct {
	handler slog.Handler
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		record.AddAttrs(slog.String("request_id", id))
	}
	return h.handler.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		handler: h.handler.WithAttrs(attrs),
	}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{
		handler: h.handler.WithGroup(name),
	}
}

// Discard логгер для тестов
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
