// Package seeders fills a fresh database with the baseline rows the app
// needs: the admin account, car categories, demo cars and the stock
// email templates. Seed functions register themselves from init and run
// in registration order through `drivehub seed`.
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc inserts one group of rows.
type SeederFunc func(db *gorm.DB) error

type registry struct {
	mu    sync.Mutex
	names []string
	funcs map[string]SeederFunc
}

var reg = registry{funcs: map[string]SeederFunc{}}

// Register queues fn under name for RunAll.
func Register(name string, fn SeederFunc) {
	reg.mu.Lock()
	if _, dup := reg.funcs[name]; !dup {
		reg.names = append(reg.names, name)
	}
	reg.funcs[name] = fn
	reg.mu.Unlock()
}

// RunAll runs every registered seeder and stops at the first failure.
func RunAll(db *gorm.DB) error {
	reg.mu.Lock()
	names := append([]string(nil), reg.names...)
	reg.mu.Unlock()

	if len(names) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, name := range names {
		reg.mu.Lock()
		fn := reg.funcs[name]
		reg.mu.Unlock()

		fmt.Printf("  • Running seeder: %s … ", name)
		if err := fn(db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", name, err)
		}
		fmt.Println("done")
	}
	return nil
}
