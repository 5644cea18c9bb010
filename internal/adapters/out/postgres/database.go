package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warehouse/internal/adapters/out/postgres/billingrepo"
	"warehouse/internal/adapters/out/postgres/rackrepo"
	"warehouse/internal/adapters/out/postgres/sequencerepo"
	"warehouse/internal/adapters/out/postgres/shipmentrepo"
	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/pkg/errs"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for sqlx
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// PoolSettings bounds the connection pool shared by all terminals of one process.
type PoolSettings struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects GORM to dsn and applies the pool settings.
// SQL logging stays silent; failures surface through the returned errors.
func Open(dsn string, pool PoolSettings) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		Logger:                 gorm_logger.Default.LogMode(gorm_logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	return db, nil
}

// OpenReader connects the sqlx handle used by the query side.
func OpenReader(ctx context.Context, dsn string, pool PoolSettings) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect read model: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return db, nil
}

// Models lists every persisted row type in dependency order.
func Models() []any {
	return []any{
		&rackrepo.SectionDTO{},
		&rackrepo.RackDTO{},
		&shipmentrepo.ShipmentDTO{},
		&billingrepo.InvoiceDTO{},
		&billingrepo.PricingDTO{},
		&sequencerepo.SequenceDTO{},
	}
}

// Migrate creates or updates the schema and seeds the default tariff when no
// pricing row exists yet. It is safe to run on every start.
func Migrate(ctx context.Context, db *gorm.DB, logger *zap.Logger, now time.Time) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	pricingRepo := billingrepo.NewGormPricingRepository(db)
	_, err := pricingRepo.Get(ctx)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return fmt.Errorf("failed to read pricing: %w", err)
	}

	defaults, err := billing.NewPricing(billing.DefaultPricingSettings(), now)
	if err != nil {
		return err
	}
	if err = pricingRepo.Save(ctx, defaults); err != nil {
		return fmt.Errorf("failed to seed pricing: %w", err)
	}

	logger.Info("seeded default pricing",
		zap.String("perKgDayRate", defaults.Settings().PerKgDayRate.String()),
		zap.String("handlingFee", defaults.Settings().HandlingFee.String()),
		zap.Int("freeDays", defaults.FreeDays()),
	)
	return nil
}
