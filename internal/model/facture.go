package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Facture statuses. A facture moves monotonically toward "payee" as payments
// arrive; the status is always a pure function of the paid sum vs MontantTTC.
const (
	FactureEnAttente          = "en_attente"
	FacturePartiellementPayee = "partiellement_payee"
	FacturePayee              = "payee"
)

// Facture groups a subscriber's consumptions for billing.
// Invariant: MontantTTC = MontantHT + MontantTVA.
type Facture struct {
	ID            uint   `gorm:"primaryKey"`
	NumeroFacture string `gorm:"uniqueIndex;not null"`
	AbonneID      uint   `gorm:"index;not null"`
	MontantHT     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TauxTVA       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	MontantTVA    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontantTTC    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Statut        string          `gorm:"type:varchar(25);not null;default:'en_attente';index"`
	DateEmission  time.Time       `gorm:"autoCreateTime"`
	DateEcheance  *time.Time
	// PDFPath is relative to PDF_STORAGE_PATH; set by the PDF worker.
	PDFPath *string `gorm:"column:pdf_path"`
	Note    string
	CreatedAt time.Time
	UpdatedAt time.Time

	Abonne        *Abonne        `gorm:"foreignKey:AbonneID"`
	Consommations []Consommation `gorm:"foreignKey:FactureID"`
	Paiements     []Paiement     `gorm:"foreignKey:FactureID"`
}

// MontantPaye sums the linked payments. Requires Paiements to be preloaded.
func (f *Facture) MontantPaye() decimal.Decimal {
	total := decimal.Zero
	for _, p := range f.Paiements {
		total = total.Add(p.Montant)
	}
	return total
}

// ResteAPayer is the outstanding balance. Requires Paiements to be preloaded.
func (f *Facture) ResteAPayer() decimal.Decimal {
	return f.MontantTTC.Sub(f.MontantPaye())
}

// StatutPour derives the invoice status from a paid sum.
func StatutPour(paye, ttc decimal.Decimal) string {
	switch {
	case paye.IsZero():
		return FactureEnAttente
	case paye.GreaterThanOrEqual(ttc):
		return FacturePayee
	default:
		return FacturePartiellementPayee
	}
}
