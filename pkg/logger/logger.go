package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	log         = zap.NewNop()
	serviceName = "edupay"
)

// Init builds the process-wide logger. Until it is called every helper is a no-op.
func Init(level, format, service string) error {
	var logLevel zapcore.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = zap.DebugLevel
	case "info":
		logLevel = zap.InfoLevel
	case "warn":
		logLevel = zap.WarnLevel
	case "error":
		logLevel = zap.ErrorLevel
	default:
		logLevel = zap.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(logLevel)
	config.Encoding = "json"
	if format == "console" {
		config.Encoding = "console"
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "log_level"
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.TimeKey = "timestamp"
	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig.StacktraceKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	built, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	log = built
	if service != "" {
		serviceName = service
	}
	return nil
}

// Sync flushes buffered entries.
func Sync() {
	_ = log.Sync()
}

// WithRequestID stores a request id that every log line made with ctx will carry.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	logMessage(ctx, zap.InfoLevel, msg, fields...)
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	logMessage(ctx, zap.DebugLevel, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	logMessage(ctx, zap.WarnLevel, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	logMessage(ctx, zap.ErrorLevel, msg, fields...)
}

// Infof formats like fmt.Sprintf; used by the CLI and scheduler where there is no request.
func Infof(format string, args ...interface{}) {
	logMessage(context.Background(), zap.InfoLevel, fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...interface{}) {
	logMessage(context.Background(), zap.ErrorLevel, fmt.Sprintf(format, args...))
}

func logMessage(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	fields = append(fields, essentialFields(ctx)...)

	switch level {
	case zap.DebugLevel:
		log.Debug(msg, fields...)
	case zap.InfoLevel:
		log.Info(msg, fields...)
	case zap.WarnLevel:
		log.Warn(msg, fields...)
	case zap.ErrorLevel:
		log.Error(msg, fields...)
	}
}

func essentialFields(ctx context.Context) []zap.Field {
	fields := []zap.Field{zap.String("service_name", serviceName)}
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return fields
}
