package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Paiement settles part or all of a facture.
// Mode: "especes" | "carte" | "mobile_money"
type Paiement struct {
	ID        uint `gorm:"primaryKey"`
	FactureID uint `gorm:"index;not null"`
	Montant   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Mode      string          `gorm:"type:varchar(20);not null"`
	Reference string
	RecuPar   string
	Note      string
	DatePaiement time.Time `gorm:"autoCreateTime;index"`

	Facture *Facture `gorm:"foreignKey:FactureID"`
}
