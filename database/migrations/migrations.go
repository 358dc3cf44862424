// Package migrations holds the schema migrations for DriveHub. Each
// file registers itself through migration.Register from init, so the
// CLI only needs a blank import of this package to know every
// migration at startup.
package migrations
