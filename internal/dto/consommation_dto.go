package dto

import "github.com/shopspring/decimal"

// ConsommationFilter is bound from the query string of GET /v1/consommations.
type ConsommationFilter struct {
	AbonneID  string `form:"abonne_id"`
	ProduitID string `form:"produit_id"`
	Facturees string `form:"facturees"` // "true" | "false" | "" (toutes)
	DateDebut string `form:"date_debut"`
	DateFin   string `form:"date_fin"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type EnregistrerConsommationRequest struct {
	AbonneID  uint `json:"abonne_id"  validate:"required"`
	ProduitID uint `json:"produit_id" validate:"required"`
	Quantite  int  `json:"quantite"   validate:"required"`
	// PrixUnitaire overrides the product's current sale price when present.
	PrixUnitaire *decimal.Decimal `json:"prix_unitaire" validate:"omitempty,gt=0"`
	Note         string           `json:"note"`
}

// ActualiserConsommationRequest is the typed patch for PUT /v1/consommations/:id.
// Quantity changes adjust stock; the frozen unit price never changes.
type ActualiserConsommationRequest struct {
	Quantite *int    `json:"quantite"`
	Note     *string `json:"note"`
}

type ConsommationResponse struct {
	ID            uint            `json:"id"`
	AbonneID      uint            `json:"abonne_id"`
	Abonne        string          `json:"abonne"`
	ProduitID     uint            `json:"produit_id"`
	Produit       string          `json:"produit"`
	Quantite      int             `json:"quantite"`
	PrixUnitaire  decimal.Decimal `json:"prix_unitaire"`
	MontantTotal  decimal.Decimal `json:"montant_total"`
	Note          string          `json:"note,omitempty"`
	FactureID     *uint           `json:"facture_id"`
	FactureNumero *string         `json:"facture_numero,omitempty"`
	Date          string          `json:"date"`
	StockRestant  *int            `json:"stock_restant,omitempty"`
}

type ConsommationListResponse struct {
	Data  []ConsommationResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// ─── Statistiques ────────────────────────────────────────────────────────────

type TopProduit struct {
	ProduitID uint            `json:"produit_id"`
	Nom       string          `json:"nom"`
	Quantite  int             `json:"quantite"`
	Montant   decimal.Decimal `json:"montant"`
}

type StatsConsommationsResponse struct {
	TotalConsommations int64           `json:"total_consommations"`
	TotalItemsVendus   int64           `json:"total_items_vendus"`
	MontantTotalVentes decimal.Decimal `json:"montant_total_ventes"`
	TopProduits        []TopProduit    `json:"top_produits"`
}
