package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"shopsecure/internal/adapters/out/postgres/feedbackrepo"
	"shopsecure/internal/adapters/out/postgres/notificationrepo"
	"shopsecure/internal/adapters/out/postgres/orderrepo"
	"shopsecure/internal/adapters/out/postgres/referenceimagerepo"
	"shopsecure/internal/adapters/out/postgres/returnrepo"
	"shopsecure/internal/adapters/out/postgres/securitylogrepo"
	"shopsecure/internal/adapters/out/postgres/userrepo"

	_ "github.com/lib/pq"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig bounds the database/sql pool behind GORM.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig suits a single API instance.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxOpenConns: 20, MaxIdleConns: 5, ConnMaxLifetime: 30 * time.Minute}
}

// Open connects through lib/pq so driver errors surface as *pq.Error, which the
// user repository inspects for unique violations.
func Open(dsn string, pool PoolConfig) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init gorm: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table the application writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&referenceimagerepo.ReferenceImageDTO{},
		&returnrepo.ReturnRequestDTO{},
		&securitylogrepo.TransactionLogDTO{},
		&feedbackrepo.FeedbackDTO{},
		&notificationrepo.NotificationDTO{},
	)
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
