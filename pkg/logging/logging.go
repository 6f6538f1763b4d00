package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to INFO for unknown
	}
}

// truncatedIDLength is the number of identifier characters kept in log output.
const truncatedIDLength = 8

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// Init initializes the package logger with a text handler writing to output.
// This should be called once at application startup; calling it again
// replaces the previous logger.
func Init(level LogLevel, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level: level.SlogLevel(),
	}
	logger := slog.New(slog.NewTextHandler(output, opts))

	mu.Lock()
	defaultLogger = logger
	mu.Unlock()

	slog.SetDefault(logger)
}

// Logger returns the underlying slog logger, initializing a default INFO
// logger on stderr if Init was never called.
func Logger() *slog.Logger {
	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()
	if logger != nil {
		return logger
	}
	Init(LevelInfo, os.Stderr)
	return Logger()
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	logger := Logger()
	if !logger.Enabled(context.Background(), level.SlogLevel()) {
		return
	}

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	logger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}

// Request logs one completed HTTP request with structured attributes.
func Request(requestID, method, path string, status int, latency time.Duration, clientIP string) {
	Logger().LogAttrs(context.Background(), slog.LevelInfo, "HTTP request",
		slog.String("subsystem", "HTTP"),
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("latency", latency.String()),
		slog.String("client_ip", clientIP),
	)
}

// TruncateID shortens an identifier for log output, so full user or session
// identifiers never appear in logs.
func TruncateID(id string) string {
	if len(id) <= truncatedIDLength {
		return id
	}
	return id[:truncatedIDLength] + "..."
}

// AuditEvent describes a security-relevant operation such as a token
// exchange or refresh.
type AuditEvent struct {
	Action  string
	Outcome string
	UserID  string
	Target  string
	Details string
}

// Audit logs an AuditEvent at INFO level with an [AUDIT] prefix.
// UserID is truncated before logging.
func Audit(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("subsystem", "Audit"),
		slog.String("action", event.Action),
		slog.String("outcome", event.Outcome),
	}
	if event.UserID != "" {
		attrs = append(attrs, slog.String("user", TruncateID(event.UserID)))
	}
	if event.Target != "" {
		attrs = append(attrs, slog.String("target", event.Target))
	}
	if event.Details != "" {
		attrs = append(attrs, slog.String("details", event.Details))
	}
	Logger().LogAttrs(context.Background(), slog.LevelInfo, "[AUDIT] "+event.Action, attrs...)
}
