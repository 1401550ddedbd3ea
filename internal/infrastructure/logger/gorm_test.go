package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFunc(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Options(t *testing.T) {
	l, _ := observed()
	gl := NewGormLogger(l, gormlogger.Info, WithSlowThreshold(time.Second), WithIgnoreRecordNotFoundError(false))

	assert.Equal(t, time.Second, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)

	warn, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, warn.logLevel)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
}

func TestGormLogger_Messages(t *testing.T) {
	l, recorded := observed()
	gl := NewGormLogger(l, gormlogger.Warn)

	gl.Info(context.Background(), "hidden %d", 1)
	gl.Warn(context.Background(), "pool at %d%%", 90)
	gl.Error(context.Background(), "lost connection")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "pool at 90%", entries[0].Message)
	assert.Equal(t, "gorm", entries[0].LoggerName)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-7")

	t.Run("error", func(t *testing.T) {
		l, recorded := observed()
		gl := NewGormLogger(l, gormlogger.Info)

		gl.Trace(ctx, time.Now(), sqlFunc("INSERT INTO orders", 0), errors.New("duplicate key"))

		entries := recorded.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "INSERT INTO orders", entries[0].ContextMap()["sql"])
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, recorded := observed()
		gl := NewGormLogger(l, gormlogger.Info)

		gl.Trace(ctx, time.Now(), sqlFunc("SELECT", 0), gormlogger.ErrRecordNotFound)

		assert.Zero(t, recorded.Len())
	})

	t.Run("slow query", func(t *testing.T) {
		l, recorded := observed()
		gl := NewGormLogger(l, gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		gl.Trace(ctx, time.Now().Add(-time.Second), sqlFunc("SELECT * FROM order_items", 12), nil)

		entries := recorded.FilterMessage("Slow SQL").All()
		require.Len(t, entries, 1)
		assert.EqualValues(t, 12, entries[0].ContextMap()["rows"])
	})

	t.Run("regular query at info", func(t *testing.T) {
		l, recorded := observed()
		gl := NewGormLogger(l, gormlogger.Info, WithSlowThreshold(0))

		gl.Trace(ctx, time.Now().Add(-time.Second), sqlFunc("SELECT 1", 1), nil)

		assert.Equal(t, 1, recorded.FilterMessage("SQL Query").Len())
	})

	t.Run("row lock is tagged", func(t *testing.T) {
		l, recorded := observed()
		gl := NewGormLogger(l, gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		gl.Trace(ctx, time.Now().Add(-time.Second), sqlFunc(`SELECT * FROM "accounts" WHERE id = $1 FOR UPDATE`, 1), nil)
		gl.Trace(ctx, time.Now().Add(-time.Second), sqlFunc(`SELECT * FROM "menu_items"`, 3), nil)

		entries := recorded.FilterMessage("Slow SQL").All()
		require.Len(t, entries, 2)
		assert.Equal(t, true, entries[0].ContextMap()["row_lock"])
		assert.NotContains(t, entries[1].ContextMap(), "row_lock")
	})

	t.Run("silent", func(t *testing.T) {
		l, recorded := observed()
		gl := NewGormLogger(l, gormlogger.Silent)

		gl.Trace(ctx, time.Now(), sqlFunc("SELECT 1", 1), errors.New("x"))

		assert.Zero(t, recorded.Len())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
