package gpkg

import (
	"context"
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

// Create builds a fresh GeoPackage at path. Any existing file is discarded
// unconditionally; the container is never merged into.
func Create(ctx context.Context, path string) (*gorm.DB, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove existing geopackage %s: %w", path, err)
	}

	db, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("create geopackage %s: %w", path, err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("build geopackage schema: %w", err)
	}
	return db, nil
}

// OpenExisting opens an already-built container. The sqlite driver would
// happily create an empty file here, so the existence check is explicit:
// population must never run ahead of schema creation.
func OpenExisting(path string) (*gorm.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("geopackage not found: %s", path)
		}
		return nil, err
	}
	return open(path)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
