package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kitchencloud/backend/internal/infrastructure/telemetry"
)

type probe struct {
	ID   uint
	Name string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&probe{}))
	return db
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := openSQLite(t)
	plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{}, zaptest.NewLogger(t))
	require.NoError(t, plugin.Register(db))

	_, registered := db.Plugins["otelgorm"]
	assert.False(t, registered)
}

func TestDBTracingPlugin_DoubleRegistration(t *testing.T) {
	db := openSQLite(t)
	plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{Enabled: true}, zaptest.NewLogger(t))
	require.NoError(t, plugin.Register(db))
	assert.Error(t, plugin.Register(db))
}

func TestDBTracingPlugin_AnnotatesSpans(t *testing.T) {
	sr := setupTestTracer(t)
	db := openSQLite(t)
	plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Nanosecond,
		DBSystem:        "sqlite",
	}, zaptest.NewLogger(t))
	require.NoError(t, plugin.Register(db))

	ctx, parent := telemetry.StartSpan(context.Background(), "request")
	require.NoError(t, db.WithContext(ctx).Create(&probe{Name: "dosa"}).Error)
	var found []probe
	require.NoError(t, db.WithContext(ctx).Find(&found).Error)
	parent.End()

	var dbSpans int
	var slow bool
	for _, s := range sr.Ended() {
		if s.Parent().SpanID() != parent.SpanContext().SpanID() {
			continue
		}
		dbSpans++
		attrs := attrMap(s.Attributes())
		assert.Equal(t, "probes", attrs["db.sql.table"].AsString())
		if attrs["db.slow_query"].AsBool() {
			slow = true
		}
	}
	assert.Equal(t, 2, dbSpans)
	assert.True(t, slow)
}
