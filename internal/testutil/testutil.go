// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/database"
	"marketplace/internal/database/migration"
	"marketplace/internal/logging"
	"marketplace/internal/model"
)

// OpenDB returns a migrated SQLite database stored under t.TempDir().
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), logging.Discard(), 0)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.EnsureMigrated(context.Background(), db, logging.Discard()))
	return db
}

// Create inserts each value directly, outside any unit of work.
func Create(t *testing.T, db *gorm.DB, values ...any) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, db.Create(v).Error)
	}
}

var seq atomic.Int64

// User inserts a user with a unique email.
func User(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{
		DisplayName: name,
		Email:       fmt.Sprintf("user%d@example.com", seq.Add(1)),
	}
	Create(t, db, u)
	return u
}

// Species inserts a species with an explicit id.
func Species(t *testing.T, db *gorm.DB, id int64, name string) *model.Species {
	t.Helper()
	s := &model.Species{ID: id, Name: name}
	Create(t, db, s)
	return s
}

// Product inserts a pharmacy (when pharmacyID is zero) and a product with the given stock.
func Product(t *testing.T, db *gorm.DB, pharmacyID int64, name string, price float64, stock int) *model.Product {
	t.Helper()
	if pharmacyID == 0 {
		ph := &model.Pharmacy{Name: name + " pharmacy", Governorate: "Cairo", City: "Nasr City"}
		Create(t, db, ph)
		pharmacyID = ph.ID
	}
	p := &model.Product{
		PharmacyID: pharmacyID,
		Name:       name,
		Category:   model.ProductMedicine,
		Price:      price,
		Stock:      stock,
	}
	Create(t, db, p)
	return p
}
