package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backoffice/domain/order"
	"backoffice/domain/shared"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	cfg := DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.JitterEnabled = false
	return cfg
}

func TestIsRetryableError(t *testing.T) {
	cfg := DefaultConfig

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"lost optimistic lock", shared.NewConcurrentModificationError("order", "o-1"), true},
		{"wrapped lost lock", fmt.Errorf("save: %w", shared.NewConcurrentModificationError("quote", "q-1")), true},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"mysql lock wait", &mysqlDriver.MySQLError{Number: 1205}, true},
		{"mysql duplicate", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"postgres deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"postgres serialization", &pgconn.PgError{Code: "40001"}, true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, false},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"validation", shared.NewValidationError("order", "client_id", "client is required"), false},
		{"invalid amount", order.NewInvalidAmountError(shared.Zero()), false},
		{"not found", order.NewOrderNotFoundError("o-1"), false},
		{"duplicate key", shared.NewDuplicateKeyError("client", "email", "a@b.co"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err, cfg))
		})
	}
}

func TestIsRetryableError_RespectsFlags(t *testing.T) {
	cfg := DefaultConfig
	cfg.RetryOnConcurrentModification = false
	cfg.RetryOnDeadlock = false

	assert.False(t, IsRetryableError(shared.NewConcurrentModificationError("order", "o-1"), cfg))
	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, cfg))
	assert.True(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1205}, cfg))
}

func TestExecuteWithRetry_RetriesUntilSuccess(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return shared.NewConcurrentModificationError("order", "o-1")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetry_StopsOnBusinessError(t *testing.T) {
	attempts := 0
	want := order.NewInvalidAmountError(shared.Zero())
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return want
	})
	assert.Same(t, want, err)
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetry_GivesUp(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return shared.NewConcurrentModificationError("order", "o-1")
	})
	assert.True(t, errors.Is(err, shared.ErrConcurrentModification))
	assert.Equal(t, DefaultConfig.MaxAttempts, attempts)
}

func TestExecuteWithRetry_Disabled(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false
	attempts := 0
	_ = ExecuteWithRetry(context.Background(), cfg, func(ctx context.Context) error {
		attempts++
		return shared.NewConcurrentModificationError("order", "o-1")
	})
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ExecuteWithRetry(ctx, fastConfig(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, BackoffFactor: 2}
	assert.Equal(t, time.Duration(0), ExponentialBackoffWithJitter(0, cfg))
	assert.Equal(t, 100*time.Millisecond, ExponentialBackoffWithJitter(1, cfg))
	assert.Equal(t, 200*time.Millisecond, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, 300*time.Millisecond, ExponentialBackoffWithJitter(5, cfg))

	cfg.JitterEnabled = true
	d := ExponentialBackoffWithJitter(1, cfg)
	assert.GreaterOrEqual(t, d, 80*time.Millisecond)
	assert.LessOrEqual(t, d, 120*time.Millisecond)
}
