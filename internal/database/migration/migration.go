package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"marketplace/internal/model"
)

type migrationStep struct {
	Name   string
	Models []any
}

// Steps run in order; each step only references tables created by earlier ones.
var steps = []migrationStep{
	{Name: "create_table_users", Models: []any{&model.User{}}},
	{Name: "create_table_species", Models: []any{&model.Species{}}},
	{Name: "create_table_animals", Models: []any{&model.Animal{}}},
	{Name: "create_table_accessories", Models: []any{&model.Accessory{}}},
	{Name: "create_table_doctors", Models: []any{&model.Doctor{}}},
	{Name: "create_tables_pharmacies_products", Models: []any{&model.Pharmacy{}, &model.Product{}}},
	{Name: "create_tables_orders_items", Models: []any{&model.Order{}, &model.OrderItem{}}},
	{Name: "create_tables_posts_comments", Models: []any{&model.Post{}, &model.Comment{}}},
	{Name: "create_table_messages", Models: []any{&model.Message{}}},
}

// sentinel is the table created by the last step; when it exists the schema is
// considered current.
var sentinel = &model.Message{}

// EnsureMigrated creates the schema when the sentinel table is missing.
func EnsureMigrated(ctx context.Context, db *gorm.DB, log *logrus.Entry) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{
		"component": "database",
		"dialect":   db.Dialector.Name(),
	})

	log.WithFields(logrus.Fields{
		"event":  "db_migration_check",
		"status": "starting",
	}).Info("checking schema")

	db = db.WithContext(ctx)
	if db.Migrator().HasTable(sentinel) {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithFields(logrus.Fields{
		"event":  "db_migration_start",
		"status": "in_progress",
	}).Info("migrating schema")

	for _, step := range steps {
		stepStart := time.Now()
		if err := db.AutoMigrate(step.Models...); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")

	return nil
}
