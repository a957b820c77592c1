package dto

import "github.com/shopspring/decimal"

// PaiementFilter is bound from the query string of GET /v1/paiements.
type PaiementFilter struct {
	FactureID string `form:"facture_id"`
	Mode      string `form:"mode"`
	DateDebut string `form:"date_debut"`
	DateFin   string `form:"date_fin"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AppliquerPaiementRequest struct {
	FactureID uint            `json:"facture_id" validate:"required"`
	Montant   decimal.Decimal `json:"montant"    validate:"required"`
	Mode      string          `json:"mode"       validate:"required,oneof=especes carte mobile_money"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
}

type PaiementResponse struct {
	ID            uint            `json:"id"`
	FactureID     uint            `json:"facture_id"`
	FactureNumero string          `json:"facture_numero,omitempty"`
	Abonne        string          `json:"abonne,omitempty"`
	Montant       decimal.Decimal `json:"montant"`
	Mode          string          `json:"mode"`
	Reference     string          `json:"reference,omitempty"`
	RecuPar       string          `json:"recu_par,omitempty"`
	Note          string          `json:"note,omitempty"`
	DatePaiement  string          `json:"date_paiement"`
	// FactureStatut and ResteAPayer reflect the invoice after this payment.
	FactureStatut string          `json:"facture_statut,omitempty"`
	ResteAPayer   decimal.Decimal `json:"reste_a_payer"`
}

type PaiementListResponse struct {
	Data  []PaiementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
