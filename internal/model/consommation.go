package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consommation is one line-item sale of a product to a subscriber, pending
// invoicing. PrixUnitaire is captured at sale time and never recomputed,
// even if the product price changes afterwards.
type Consommation struct {
	ID           uint `gorm:"primaryKey"`
	AbonneID     uint `gorm:"index;not null"`
	ProduitID    uint `gorm:"index;not null"`
	Quantite     int  `gorm:"not null"`
	PrixUnitaire decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontantTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note         string
	// FactureID stays nil until the consumption is billed.
	FactureID *uint `gorm:"index"`
	Date      time.Time `gorm:"autoCreateTime;index"`

	Abonne  *Abonne  `gorm:"foreignKey:AbonneID"`
	Produit *Produit `gorm:"foreignKey:ProduitID"`
	Facture *Facture `gorm:"foreignKey:FactureID"`
}
