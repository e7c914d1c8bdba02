package kvstate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/rmedina/stockroom-backend/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type slotRecord struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value []byte `gorm:"column:value;not null"`
}

func (slotRecord) TableName() string {
	return "state_slots"
}

// GormStore keeps slots in a single relational table. SQLite serves the
// one-profile local case; postgres is selectable for shared deployments.
type GormStore struct {
	conn *gorm.DB
}

// OpenGorm boots a GORM-backed slot store and ensures its schema.
func OpenGorm(ctx context.Context, cfg config.StateConfig) (*GormStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("state DSN is required")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.StateDriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	case config.StateDriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("gorm slot store does not support driver %q", cfg.Driver)
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&slotRecord{}); err != nil {
		return nil, fmt.Errorf("migrating state store: %w", err)
	}

	return &GormStore{conn: conn}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var record slotRecord
	err := s.conn.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading slot %q: %w", key, err)
	}
	return record.Value, true, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	record := slotRecord{Key: key, Value: value}
	err := s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.conn.WithContext(ctx).Delete(&slotRecord{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
