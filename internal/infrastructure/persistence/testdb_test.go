package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a migrated in-memory sqlite database.
// One connection keeps every statement on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

// newMockDB opens gorm over sqlmock with the postgres dialector, for
// asserting the exact SQL a repository issues
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

// seedReference inserts an active master data record and returns its id
func seedReference(t *testing.T, db *gorm.DB, tenantID uuid.UUID, kind reference.Kind) uuid.UUID {
	t.Helper()
	rec := ReferenceRecord{ID: uuid.New(), TenantID: tenantID, Name: string(kind), IsActive: true}
	require.NoError(t, db.Table(ReferenceTables[kind]).Create(&rec).Error)
	return rec.ID
}

// seedVariant inserts an active variant of productID and returns its id
func seedVariant(t *testing.T, db *gorm.DB, tenantID, productID uuid.UUID) uuid.UUID {
	t.Helper()
	rec := ReferenceRecord{ID: uuid.New(), TenantID: tenantID, ProductID: &productID, Name: "variant", IsActive: true}
	require.NoError(t, db.Table(ReferenceTables[reference.KindVariant]).Create(&rec).Error)
	return rec.ID
}
