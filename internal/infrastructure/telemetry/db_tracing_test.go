package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func recordingContext(t *testing.T) (context.Context, *tracetest.SpanRecorder, func()) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "parent")
	return ctx, sr, func() { span.End() }
}

func findAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestNewDBTracingPlugin_DefaultsThreshold(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
}

func TestRegisterOtelGorm_Disabled(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop()).RegisterOtelGorm(db))
	assert.Nil(t, db.Callback().Query().Get("otel_slow_query:query"))
}

func TestRegisterOtelGorm_Enabled(t *testing.T) {
	db := setupTestDB(t)
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"

	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).RegisterOtelGorm(db))
	assert.NotNil(t, db.Callback().Query().Get("otel_slow_query:query"))
	assert.NotNil(t, db.Callback().Create().Get("otel_timing:before_create"))

	require.NoError(t, db.Create(&tracedRow{Name: "a"}).Error)
}

func TestSlowQueryCallback_AnnotatesSpan(t *testing.T) {
	db := setupTestDB(t)
	core, logs := observer.New(zap.WarnLevel)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Millisecond}, zap.New(core))

	ctx, sr, end := recordingContext(t)
	ctx = context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second))
	stmt := db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
	stmt.Statement.Table = "outward_entries"
	stmt.Statement.RowsAffected = 3
	stmt.Error = errors.New("boom")

	p.slowQueryCallback(stmt)
	end()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	attrs := spans[0].Attributes()
	v, ok := findAttr(attrs, "db.rows_affected")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.AsInt64())
	v, ok = findAttr(attrs, "db.sql.table")
	require.True(t, ok)
	assert.Equal(t, "outward_entries", v.AsString())
	v, ok = findAttr(attrs, "db.slow_query")
	require.True(t, ok)
	assert.True(t, v.AsBool())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, 1, logs.FilterMessage("Slow query").Len())
}

func TestSlowQueryCallback_IgnoresRecordNotFound(t *testing.T) {
	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())

	ctx, sr, end := recordingContext(t)
	stmt := db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
	stmt.Error = gorm.ErrRecordNotFound

	p.slowQueryCallback(stmt)
	end()

	assert.NotEqual(t, codes.Error, sr.Ended()[0].Status().Code)
}

func TestSlowQueryCallback_NonRecordingSpan(t *testing.T) {
	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	stmt := db.WithContext(context.Background())
	assert.NotPanics(t, func() { p.slowQueryCallback(stmt) })
}
