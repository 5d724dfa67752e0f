package logger

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"backoffice/infrastructure/persistence"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// GormLoggerConfig tunes the GORM adapter. Repositories translate
// gorm.ErrRecordNotFound into domain errors, so those traces are noise by
// default.
type GormLoggerConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
	AddCaller                 bool
}

func DefaultGormLoggerConfig() *GormLoggerConfig {
	return &GormLoggerConfig{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
		AddCaller:                 true,
	}
}

// GormLoggerAdapter implements gorm's logger.Interface on top of zap and
// tags every line with the request id carried by the statement context.
type GormLoggerAdapter struct {
	logLevel logger.LogLevel
	logger   *zap.Logger
	config   *GormLoggerConfig
}

func NewGormLoggerAdapter(logLevel logger.LogLevel) *GormLoggerAdapter {
	return NewGormLoggerAdapterWithConfig(logLevel, DefaultGormLoggerConfig())
}

func NewGormLoggerAdapterWithConfig(logLevel logger.LogLevel, config *GormLoggerConfig) *GormLoggerAdapter {
	if config == nil {
		config = DefaultGormLoggerConfig()
	}
	baseLogger := log
	if baseLogger == nil {
		baseLogger = zap.NewNop()
	}
	return &GormLoggerAdapter{logLevel: logLevel, logger: baseLogger, config: config}
}

func (l *GormLoggerAdapter) LogMode(logLevel logger.LogLevel) logger.Interface {
	return &GormLoggerAdapter{logLevel: logLevel, logger: l.logger, config: l.config}
}

func (l *GormLoggerAdapter) extractContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 1)
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	return fields
}

func (l *GormLoggerAdapter) getLoggerWithFields(ctx context.Context) *zap.Logger {
	loggerInstance := l.logger
	if loggerInstance == nil {
		loggerInstance = zap.NewNop()
	}
	if ctxFields := l.extractContextFields(ctx); len(ctxFields) > 0 {
		loggerInstance = loggerInstance.With(ctxFields...)
	}
	if l.config.AddCaller {
		loggerInstance = loggerInstance.WithOptions(zap.AddCaller())
	}
	return loggerInstance
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, args ...any) {
	if l.logLevel >= logger.Info {
		l.getLoggerWithFields(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, args ...any) {
	if l.logLevel >= logger.Warn {
		l.getLoggerWithFields(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, args ...any) {
	if l.logLevel >= logger.Error {
		l.getLoggerWithFields(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

// tablePattern finds the first table a statement reads or writes.
var tablePattern = regexp.MustCompile("(?i)\\b(?:from|into|update|join)\\s+[`\"]?([a-z_]+)")

// aggregateOf names the aggregate each table belongs to. Item and payment
// rows are written through their owning document.
var aggregateOf = map[string]string{
	"clients":       "client",
	"products":      "product",
	"orders":        "order",
	"order_items":   "order",
	"payments":      "order",
	"quotes":        "quote",
	"quote_items":   "quote",
	"followups":     "followup",
	"outbox_events": "outbox",
}

// statementFields tags a statement with its verb, table and aggregate so
// slow or failing queries can be grouped per repository.
func statementFields(sql string) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if verb, _, ok := strings.Cut(strings.TrimSpace(sql), " "); ok {
		fields = append(fields, zap.String("op", strings.ToLower(verb)))
	}
	m := tablePattern.FindStringSubmatch(sql)
	if m == nil {
		return fields
	}
	table := strings.ToLower(m[1])
	fields = append(fields, zap.String("table", table))
	if aggregate, ok := aggregateOf[table]; ok {
		fields = append(fields, zap.String("aggregate", aggregate))
	}
	return fields
}

func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}
	if err != nil && errors.Is(err, logger.ErrRecordNotFound) && l.config.IgnoreRecordNotFoundError {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && l.logLevel >= logger.Error
	slow := l.config.SlowThreshold != 0 && elapsed > l.config.SlowThreshold && l.logLevel >= logger.Warn
	if !failed && !slow && l.logLevel < logger.Info {
		return
	}

	sql, rows := fc()
	fields := append(statementFields(sql),
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	)
	log := l.getLoggerWithFields(ctx)

	switch {
	case failed:
		log.Error("Database operation failed", append(fields, zap.Error(err))...)
	case slow:
		log.Warn("Slow SQL query", fields...)
	default:
		log.Info("SQL query executed", fields...)
	}
}
