package dto

import "github.com/shopspring/decimal"

// ProduitFilter is bound from the query string of GET /v1/produits.
type ProduitFilter struct {
	Nom           string `form:"nom"`
	Categorie     string `form:"categorie"`
	FournisseurID string `form:"fournisseur_id"`
	Actif         string `form:"actif"` // "false" = inactifs, "all" = tous, défaut = actifs
	SortBy        string `form:"sort_by"`
	Page          int    `form:"page,default=1"  validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreerProduitRequest struct {
	Nom           string          `json:"nom"            validate:"required"`
	Categorie     string          `json:"categorie"      validate:"required,oneof=vin biere sucrerie autre"`
	PrixAchat     decimal.Decimal `json:"prix_achat"     validate:"min=0"`
	PrixVente     decimal.Decimal `json:"prix_vente"     validate:"required,gt=0"`
	StockInitial  int             `json:"stock_initial"  validate:"min=0"`
	StockAlerte   int             `json:"stock_alerte"   validate:"min=0"`
	FournisseurID *uint           `json:"fournisseur_id"`
}

// ActualiserProduitRequest is the typed patch for PUT /v1/produits/:id.
// Only the listed fields may change; unknown JSON keys are rejected at bind time.
type ActualiserProduitRequest struct {
	Nom           *string          `json:"nom"`
	Categorie     *string          `json:"categorie" validate:"omitempty,oneof=vin biere sucrerie autre"`
	PrixAchat     *decimal.Decimal `json:"prix_achat"`
	PrixVente     *decimal.Decimal `json:"prix_vente"`
	StockAlerte   *int             `json:"stock_alerte"`
	FournisseurID *uint            `json:"fournisseur_id"`
}

type ProduitResponse struct {
	ID          uint            `json:"id"`
	Nom         string          `json:"nom"`
	Categorie   string          `json:"categorie"`
	PrixAchat   decimal.Decimal `json:"prix_achat"`
	PrixVente   decimal.Decimal `json:"prix_vente"`
	Stock       int             `json:"stock"`
	StockAlerte int             `json:"stock_alerte"`
	Fournisseur *string         `json:"fournisseur,omitempty"`
	Actif       bool            `json:"actif"`
	CreatedAt   string          `json:"created_at"`
}

type ProduitListResponse struct {
	Data  []ProduitResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
