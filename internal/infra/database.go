package infra

import (
	"fmt"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create or update every table.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Fournisseur{},
		&model.Produit{},
		&model.Abonne{},
		&model.Facture{},
		&model.Consommation{},
		&model.Paiement{},
		&model.MouvementStock{},
		&model.EcritureCompta{},
		&model.Utilisateur{},
		&model.JournalLog{},
		&model.Parametres{},
	)
}
