package logger

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"backoffice/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func messages(logs *observer.ObservedLogs) []string {
	out := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		out = append(out, entry.Message)
	}
	return out
}

func TestGormLoggerAdapter_Levels(t *testing.T) {
	testCases := []struct {
		name      string
		logLevel  logger.LogLevel
		wantInfo  bool
		wantTrace bool
	}{
		{"warn level", logger.Warn, false, false},
		{"info level", logger.Info, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			restore := Replace(zap.New(core))
			defer restore()

			adapter := NewGormLoggerAdapter(tc.logLevel)
			require.NotNil(t, adapter.LogMode(logger.Info))

			ctx := context.Background()
			adapter.Info(ctx, "info %d", 1)
			adapter.Warn(ctx, "warn %d", 2)
			adapter.Error(ctx, "error %d", 3)
			adapter.Trace(ctx, time.Now(), func() (string, int64) {
				return "SELECT * FROM orders", 1
			}, nil)

			got := messages(logs)
			assert.Equal(t, tc.wantInfo, slices.Contains(got, "info 1"))
			assert.Contains(t, got, "warn 2")
			assert.Contains(t, got, "error 3")
			assert.Equal(t, tc.wantTrace, slices.Contains(got, "SQL query executed"))
		})
	}
}

func TestGormLoggerAdapter_TraceFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	adapter := NewGormLoggerAdapterWithConfig(logger.Info, &GormLoggerConfig{
		SlowThreshold:             10 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	})
	ctx := persistence.ContextWithRequestID(context.Background(), "req-123")

	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		time.Sleep(15 * time.Millisecond)
		return "SELECT * FROM quotes", 1
	}, nil)
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM clients WHERE id = 'x'", 0
	}, logger.ErrRecordNotFound)
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "INSERT INTO `payments` (`id`,`order_id`) VALUES (?,?)", 0
	}, errors.New("disk full"))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "Slow SQL query", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "SELECT * FROM quotes", fields["sql"])
	assert.Equal(t, "select", fields["op"])
	assert.Equal(t, "quotes", fields["table"])
	assert.Equal(t, "quote", fields["aggregate"])

	assert.Equal(t, "Database operation failed", entries[1].Message)
	fields = entries[1].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "insert", fields["op"])
	assert.Equal(t, "payments", fields["table"])
	assert.Equal(t, "order", fields["aggregate"])
	assert.Equal(t, "disk full", fields["error"])
}

func TestStatementFields(t *testing.T) {
	testCases := []struct {
		sql       string
		table     string
		aggregate string
	}{
		{`UPDATE "order_items" SET "quantity"=1`, "order_items", "order"},
		{"DELETE FROM followups WHERE order_id = 'o-1'", "followups", "followup"},
		{"SELECT * FROM quotes JOIN clients ON clients.id = quotes.client_id", "quotes", "quote"},
		{"SELECT count(*) FROM sqlite_master", "sqlite_master", ""},
		{"PRAGMA foreign_keys = ON", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.sql, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			zap.New(core).Info("stmt", statementFields(tc.sql)...)
			fields := logs.All()[0].ContextMap()

			if tc.table == "" {
				assert.NotContains(t, fields, "table")
			} else {
				assert.Equal(t, tc.table, fields["table"])
			}
			if tc.aggregate == "" {
				assert.NotContains(t, fields, "aggregate")
			} else {
				assert.Equal(t, tc.aggregate, fields["aggregate"])
			}
		})
	}
}
