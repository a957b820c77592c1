package dto

import "github.com/shopspring/decimal"

// ComptaFilter is bound from the query string of GET /v1/compta.
type ComptaFilter struct {
	Type      string `form:"type"` // recette | depense
	DateDebut string `form:"date_debut"`
	DateFin   string `form:"date_fin"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// CreerEcritureRequest records a manual ledger entry (usually a depense;
// recettes are mostly appended by the payment workflow).
type CreerEcritureRequest struct {
	Type        string          `json:"type"    validate:"required,oneof=recette depense"`
	Montant     decimal.Decimal `json:"montant" validate:"required"`
	Reference   string          `json:"reference"`
	Commentaire string          `json:"commentaire"`
}

type EcritureResponse struct {
	ID            uint            `json:"id"`
	Type          string          `json:"type"`
	Montant       decimal.Decimal `json:"montant"`
	Reference     string          `json:"reference,omitempty"`
	Commentaire   string          `json:"commentaire,omitempty"`
	DateOperation string          `json:"date_operation"`
}

type EcritureListResponse struct {
	Data  []EcritureResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type SoldeResponse struct {
	Solde  decimal.Decimal `json:"solde"`
	Devise string          `json:"devise"`
}

type RapportComptaResponse struct {
	TotalRecettes decimal.Decimal    `json:"total_recettes"`
	TotalDepenses decimal.Decimal    `json:"total_depenses"`
	Solde         decimal.Decimal    `json:"solde"`
	DernieresOps  []EcritureResponse `json:"dernieres_operations"`
}
