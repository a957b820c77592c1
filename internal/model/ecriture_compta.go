package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accounting entry kinds.
const (
	ComptaRecette = "recette"
	ComptaDepense = "depense"
)

// EcritureCompta is one line of the cash ledger. Append-only;
// the balance is Σrecettes − Σdepenses.
type EcritureCompta struct {
	ID      uint   `gorm:"primaryKey"`
	Type    string `gorm:"type:varchar(10);not null;index"`
	Montant decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Reference links the entry back to its source, e.g. "FAC-202608-0012".
	Reference     string
	Commentaire   string
	DateOperation time.Time `gorm:"autoCreateTime;index"`
}

func (EcritureCompta) TableName() string { return "compta" }
