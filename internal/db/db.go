package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/servihub/marketplace-api/internal/config"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/models"
)

// Installed after AutoMigrate. scheduled_at is a timestamptz column, so the
// range has to be tstzrange; tsrange has no timestamptz overload and the
// ALTER would fail to resolve.
const bookingsNoOverlapDDL = `
    ALTER TABLE bookings
    ADD CONSTRAINT bookings_vendor_no_overlap
    EXCLUDE USING gist (
        vendor_id WITH =,
        tstzrange(scheduled_at, scheduled_at + duration_mins * interval '1 minute') WITH &&
    )
    WHERE (status IN ('pending', 'accepted'))
`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.VendorDocument{},
		&models.Service{},
		&models.ServiceImage{},
		&models.Booking{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Second line of defence against concurrent overlapping inserts: the
	// locked conflict check in the create transaction cannot lock rows
	// that do not exist yet, so two creates for the same free slot can
	// both count zero. The exclusion constraint serializes those at the
	// database; violations surface as SQLSTATE 23P01 and map to a
	// conflict response. Boot must not proceed without it.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to install btree_gist: %v", err)
	}
	if err := db.Exec(bookingsNoOverlapDDL).Error; err != nil && !httperr.IsDuplicateObject(err) {
		log.Fatalf("failed to install booking overlap constraint: %v", err)
	}

	return db
}
