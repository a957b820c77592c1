package dto

import "github.com/shopspring/decimal"

// MouvementStockFilter is bound from the query string of GET /v1/stock/mouvements.
type MouvementStockFilter struct {
	ProduitID   string `form:"produit_id"`
	Type        string `form:"type"` // entree | sortie | ajustement
	Utilisateur string `form:"utilisateur"`
	DateDebut   string `form:"date_debut"`
	DateFin     string `form:"date_fin"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// EntreeStockRequest receives goods into stock.
type EntreeStockRequest struct {
	ProduitID   uint   `json:"produit_id" validate:"required"`
	Quantite    int    `json:"quantite"   validate:"required,min=1"`
	Commentaire string `json:"commentaire"`
	Reference   string `json:"reference"`
}

// SortieStockRequest records a non-sale stock exit (loss, breakage).
type SortieStockRequest struct {
	ProduitID   uint   `json:"produit_id" validate:"required"`
	Quantite    int    `json:"quantite"   validate:"required,min=1"`
	Commentaire string `json:"commentaire"`
	Reference   string `json:"reference"`
}

// AjustementStockRequest sets the on-hand quantity to an absolute value
// after a physical inventory count.
type AjustementStockRequest struct {
	ProduitID    uint   `json:"produit_id"    validate:"required"`
	NouveauStock *int   `json:"nouveau_stock" validate:"required"`
	Commentaire  string `json:"commentaire"`
	Reference    string `json:"reference"`
}

type MouvementStockResponse struct {
	ID          uint   `json:"id"`
	ProduitID   uint   `json:"produit_id"`
	Produit     string `json:"produit"`
	Type        string `json:"type"`
	Quantite    int    `json:"quantite"`
	StockAvant  int    `json:"stock_avant"`
	StockApres  int    `json:"stock_apres"`
	Utilisateur string `json:"utilisateur,omitempty"`
	Commentaire string `json:"commentaire,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Date        string `json:"date"`
}

type MouvementStockListResponse struct {
	Data  []MouvementStockResponse `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

type AlerteStockResponse struct {
	ProduitID   uint   `json:"produit_id"`
	Nom         string `json:"nom"`
	Stock       int    `json:"stock"`
	StockAlerte int    `json:"stock_alerte"`
	Fournisseur *string `json:"fournisseur,omitempty"`
}

// ValeurStockResponse is the stock valuation report.
type ValeurStockResponse struct {
	ValeurAchat      decimal.Decimal `json:"valeur_achat"`
	ValeurVente      decimal.Decimal `json:"valeur_vente"`
	MargePotentielle decimal.Decimal `json:"marge_potentielle"`
	TotalProduits    int             `json:"total_produits"`
	TotalItems       int             `json:"total_items"`
}
