package localstate

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: true},
		{name: "connection exception", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: false},
		{name: "refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "other", err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestWithRetry(t *testing.T) {
	s := &PostgresStore{delays: []time.Duration{time.Millisecond, time.Millisecond}}

	attempts := 0
	err := s.withRetry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	attempts = 0
	err = s.withRetry(context.Background(), func() error {
		attempts++
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

// Тест против настоящей базы запускается, если задан TEST_DATABASE_URI.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	s, err := NewPostgresStore(dsn)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	owner := "pg-test-" + time.Now().Format("150405.000000")

	require.NoError(t, s.Save(ctx, owner, KeyCart, []byte(`{"items":[]}`)))
	require.NoError(t, s.Save(ctx, owner, KeyCart, []byte(`{"items":[{"itemKey":"k"}]}`)))
	require.NoError(t, s.Save(ctx, owner, KeyProfile, []byte(`{}`)))

	raw, err := s.Load(ctx, owner, KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"itemKey":"k"}]}`, string(raw))

	keys, err := s.Keys(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyCart, KeyProfile}, keys)

	require.NoError(t, s.Delete(ctx, owner, KeyCart))
	_, err = s.Load(ctx, owner, KeyCart)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, owner, KeyProfile))
}
