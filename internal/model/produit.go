package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produit is a catalog item sold to subscribers on account.
// Categorie: "vin" | "biere" | "sucrerie" | "autre"
type Produit struct {
	ID        uint   `gorm:"primaryKey"`
	Nom       string `gorm:"index;not null"`
	Categorie string `gorm:"type:varchar(20);not null;default:'autre'"`
	PrixAchat decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrixVente decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Stock is the on-hand quantity; never goes below zero.
	Stock int `gorm:"not null;default:0"`
	// StockAlerte is the reorder threshold for the low-stock report.
	StockAlerte   int   `gorm:"not null;default:5"`
	FournisseurID *uint `gorm:"index"`
	Actif         bool  `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Fournisseur *Fournisseur `gorm:"foreignKey:FournisseurID"`
}
