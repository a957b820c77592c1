package model

import "time"

// Stock movement kinds.
const (
	MouvementEntree     = "entree"
	MouvementSortie     = "sortie"
	MouvementAjustement = "ajustement"
)

// MouvementStock records a single change to a product's on-hand quantity.
// Rows are append-only: created once per ledger call, never edited.
type MouvementStock struct {
	ID        uint   `gorm:"primaryKey"`
	ProduitID uint   `gorm:"index;not null"`
	Type      string `gorm:"type:varchar(20);not null"`
	// Quantite is the signed delta applied: positive = entrée, negative = sortie.
	Quantite    int `gorm:"not null"`
	StockAvant  int `gorm:"not null"`
	StockApres  int `gorm:"not null"`
	Utilisateur string
	Commentaire string
	Reference   string
	CreatedAt   time.Time `gorm:"index"`

	Produit *Produit `gorm:"foreignKey:ProduitID"`
}

// TableName overrides GORM's default pluralization.
func (MouvementStock) TableName() string { return "mouvements_stock" }
