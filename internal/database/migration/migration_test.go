package migration

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/database"
	"marketplace/internal/logging"
	"marketplace/internal/model"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "migrate.db"), logging.Discard(), 0)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestEnsureMigrated(t *testing.T) {
	db := openDB(t)
	var buf bytes.Buffer
	log := logrus.NewEntry(logging.NewWithWriter(&buf, "info", time.UTC))

	require.NoError(t, EnsureMigrated(context.Background(), db, log))

	for _, m := range []any{
		&model.User{}, &model.Species{}, &model.Animal{}, &model.Accessory{},
		&model.Doctor{}, &model.Pharmacy{}, &model.Product{}, &model.Order{},
		&model.OrderItem{}, &model.Post{}, &model.Comment{}, &model.Message{},
	} {
		assert.True(t, db.Migrator().HasTable(m), "%T table missing", m)
	}
	assert.Contains(t, buf.String(), `"event":"db_migration_success"`)
	assert.Equal(t, len(steps), strings.Count(buf.String(), `"event":"db_migration_step"`))
}

func TestEnsureMigrated_SkipsWhenPresent(t *testing.T) {
	db := openDB(t)
	require.NoError(t, EnsureMigrated(context.Background(), db, logging.Discard()))

	var buf bytes.Buffer
	log := logrus.NewEntry(logging.NewWithWriter(&buf, "info", time.UTC))
	require.NoError(t, EnsureMigrated(context.Background(), db, log))

	assert.Contains(t, buf.String(), `"event":"db_migration_skip"`)
	assert.NotContains(t, buf.String(), `"event":"db_migration_step"`)
}

func TestEnsureMigrated_StockCheckConstraint(t *testing.T) {
	db := openDB(t)
	require.NoError(t, EnsureMigrated(context.Background(), db, logging.Discard()))

	pharmacy := &model.Pharmacy{Name: "Nile"}
	require.NoError(t, db.Create(pharmacy).Error)

	err := db.Create(&model.Product{
		PharmacyID: pharmacy.ID,
		Name:       "Bad",
		Category:   model.ProductMedicine,
		Stock:      -1,
	}).Error
	assert.Error(t, err)
}
