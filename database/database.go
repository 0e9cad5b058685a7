package database

import (
	"fmt"
	"log"
	"os"

	"timestamper-api/internal/domain/payments"
	"timestamper-api/internal/domain/plans"
	"timestamper-api/internal/domain/subscriptions"
	"timestamper-api/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&plans.Plan{},
		&subscriptions.Subscription{},
		&subscriptions.ExportRecord{},
		&payments.PaymentIntent{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	seedPlans()

	fmt.Println("✅ Connected and migrated successfully")
}

func seedPlans() {
	for _, plan := range plans.Defaults() {
		if err := DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&plan).Error; err != nil {
			log.Fatal("❌ Failed to seed plans:", err)
		}
	}
}
