package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Parametres is the singleton row of global shop settings.
type Parametres struct {
	ID            uint   `gorm:"primaryKey"`
	NomCave       string `gorm:"not null"`
	Devise        string `gorm:"type:varchar(10);not null;default:'FCFA'"`
	TauxTVADefaut decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18"`
	UpdatedAt     time.Time
}

func (Parametres) TableName() string { return "parametres" }
