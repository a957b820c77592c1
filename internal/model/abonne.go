package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Abonne is a subscriber — a customer with a running account who is billed
// periodically instead of paying per transaction.
type Abonne struct {
	ID           uint   `gorm:"primaryKey"`
	NumeroAbonne string `gorm:"uniqueIndex;not null"`
	Nom          string `gorm:"index;not null"`
	Prenom       string
	Telephone    string `gorm:"not null"`
	Email        *string
	Adresse      *string
	LimiteCredit decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Actif        bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Factures []Facture `gorm:"foreignKey:AbonneID"`
}

// NomComplet joins nom and prenom for display.
func (a *Abonne) NomComplet() string {
	if a.Prenom == "" {
		return a.Nom
	}
	return a.Nom + " " + a.Prenom
}
