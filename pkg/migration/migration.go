// Package migration runs registered schema migrations in order and tracks
// them in a schema_migrations table, batch-numbered so a rollback undoes
// exactly the last run.
//
// Migrations register themselves from init functions in database/migrations
// with a timestamp-prefixed name, which keeps ordering lexicographic:
//
//	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
//
// The CLI exposes the runner as migrate, migrate:rollback and migrate:status.
package migration

import (
	"fmt"
	"sort"
	"time"

	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"gorm.io/gorm"
)

// Migration applies and reverses one schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "schema_migrations" }

type entry struct {
	name      string
	migration Migration
}

var registry []entry

// Register adds a migration under a timestamp-prefixed name.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, migration: m})
}

// Runner executes registered migrations against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner { return &Runner{db: db} }

func (r *Runner) ensureTable() error {
	return r.db.AutoMigrate(&record{})
}

// applied returns the tracking rows keyed by migration name.
func (r *Runner) applied() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]record, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}
	return byName, nil
}

// Run applies every migration not yet recorded, all under one batch number.
func (r *Runner) Run() error {
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	done, err := r.applied()
	if err != nil {
		return fmt.Errorf("migration: read history: %w", err)
	}

	var pending []entry
	for _, e := range registry {
		if _, ok := done[e.name]; !ok {
			pending = append(pending, e)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].name < pending[j].name })

	if len(pending) == 0 {
		fmt.Println("Nothing to migrate.")
		return nil
	}

	batch := r.lastBatch() + 1
	for _, e := range pending {
		fmt.Printf("  Migrating: %s\n", e.name)
		if err := e.migration.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		if err := r.db.Create(&record{Name: e.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", e.name, err)
		}
		fmt.Printf("  Migrated:  %s\n", e.name)
	}
	logger.Info("migration: applied", "count", len(pending), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	batch := r.lastBatch()
	if batch == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&rows).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, e := range registry {
		byName[e.name] = e.migration
	}

	for _, row := range rows {
		m, ok := byName[row.Name]
		if !ok {
			return fmt.Errorf("migration: cannot rollback %s, not registered", row.Name)
		}
		fmt.Printf("  Rolling back: %s\n", row.Name)
		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		if err := r.db.Delete(&row).Error; err != nil {
			return err
		}
		fmt.Printf("  Rolled back:  %s\n", row.Name)
	}
	logger.Info("migration: rolled back", "count", len(rows), "batch", batch)
	return nil
}

// Status prints each registered migration with its run state and batch.
func (r *Runner) Status() error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	done, err := r.applied()
	if err != nil {
		return err
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	for _, e := range registry {
		if row, ok := done[e.name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", e.name, "Ran", row.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", e.name, "Pending")
		}
	}
	return nil
}

func (r *Runner) lastBatch() int {
	var result struct{ Max int }
	r.db.Model(&record{}).Select("MAX(batch) as max").Scan(&result)
	return result.Max
}
