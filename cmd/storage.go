package cmd

import (
	"fmt"
	"log/slog"

	"kitchenpos/internal/adapters/out/filestore"
	"kitchenpos/internal/adapters/out/postgres"
	"kitchenpos/internal/core/ports"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// OpenStorage builds the unit of work factory for the configured driver.
// The returned close function releases the database pool, if any.
func OpenStorage(configs Config, logger *slog.Logger) (ports.UnitOfWorkFactory, func() error, error) {
	switch configs.StorageDriver {
	case StoragePostgres:
		db, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err = postgres.AutoMigrate(db); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Storage ready", "driver", StoragePostgres, "host", configs.DBHost, "db", configs.DBName)
		return postgres.NewGormUnitOfWorkFactory(db), sqlDB.Close, nil

	default:
		store, err := filestore.NewStore(configs.DataDir, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Storage ready", "driver", StorageFile, "dir", store.Dir())
		return filestore.NewUnitOfWorkFactory(store), func() error { return nil }, nil
	}
}
