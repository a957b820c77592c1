package dto

import "github.com/shopspring/decimal"

// FactureFilter is bound from the query string of GET /v1/factures.
type FactureFilter struct {
	Statut    string `form:"statut"` // en_attente | partiellement_payee | payee | all
	AbonneID  string `form:"abonne_id"`
	DateDebut string `form:"date_debut"`
	DateFin   string `form:"date_fin"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// CreerFactureRequest bills a set of unbilled consumptions explicitly.
// (The consumption workflow also creates factures implicitly.)
type CreerFactureRequest struct {
	AbonneID         uint   `json:"abonne_id"         validate:"required"`
	ConsommationIDs  []uint `json:"consommation_ids"  validate:"required,min=1"`
	DateEcheance     string `json:"date_echeance"` // ISO date; défaut +30 jours
	Note             string `json:"note"`
}

// ActualiserFactureRequest is the typed patch for PUT /v1/factures/:id.
type ActualiserFactureRequest struct {
	DateEcheance *string `json:"date_echeance"`
	Note         *string `json:"note"`
}

type FactureLigneResponse struct {
	ID           uint            `json:"id"`
	Produit      string          `json:"produit"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	MontantTotal decimal.Decimal `json:"montant_total"`
}

type FacturePaiementResponse struct {
	ID           uint            `json:"id"`
	Montant      decimal.Decimal `json:"montant"`
	Mode         string          `json:"mode"`
	Reference    string          `json:"reference,omitempty"`
	DatePaiement string          `json:"date_paiement"`
}

type FactureResponse struct {
	ID            uint            `json:"id"`
	NumeroFacture string          `json:"numero_facture"`
	AbonneID      uint            `json:"abonne_id"`
	Abonne        string          `json:"abonne"`
	MontantHT     decimal.Decimal `json:"montant_ht"`
	TauxTVA       decimal.Decimal `json:"taux_tva"`
	MontantTVA    decimal.Decimal `json:"montant_tva"`
	MontantTTC    decimal.Decimal `json:"montant_ttc"`
	Statut        string          `json:"statut"`
	DateEmission  string          `json:"date_emission"`
	DateEcheance  *string         `json:"date_echeance,omitempty"`
	MontantPaye   decimal.Decimal `json:"montant_paye"`
	ResteAPayer   decimal.Decimal `json:"reste_a_payer"`
	Note          string          `json:"note,omitempty"`
	PDFUrl        *string         `json:"pdf_url,omitempty"`

	Consommations []FactureLigneResponse    `json:"consommations,omitempty"`
	Paiements     []FacturePaiementResponse `json:"paiements,omitempty"`
}

type FactureListItem struct {
	ID            uint            `json:"id"`
	NumeroFacture string          `json:"numero_facture"`
	Abonne        string          `json:"abonne"`
	AbonneID      uint            `json:"abonne_id"`
	MontantTTC    decimal.Decimal `json:"montant_ttc"`
	Statut        string          `json:"statut"`
	DateEmission  string          `json:"date_emission"`
	DateEcheance  *string         `json:"date_echeance,omitempty"`
	MontantPaye   decimal.Decimal `json:"montant_paye"`
	ResteAPayer   decimal.Decimal `json:"reste_a_payer"`
}

type FactureListResponse struct {
	Data  []FactureListItem `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
