package dto

import "github.com/shopspring/decimal"

// AbonneFilter is bound from the query string of GET /v1/abonnes.
type AbonneFilter struct {
	Recherche string `form:"recherche"` // numéro, nom ou téléphone
	Actif     string `form:"actif"`
	SortBy    string `form:"sort_by"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreerAbonneRequest struct {
	// NumeroAbonne is generated ("ABN00042") when absent.
	NumeroAbonne *string         `json:"numero_abonne"`
	Nom          string          `json:"nom"       validate:"required"`
	Prenom       string          `json:"prenom"`
	Telephone    string          `json:"telephone" validate:"required"`
	Email        *string         `json:"email"     validate:"omitempty,email"`
	Adresse      *string         `json:"adresse"`
	LimiteCredit decimal.Decimal `json:"limite_credit" validate:"min=0"`
}

// ActualiserAbonneRequest is the typed patch for PUT /v1/abonnes/:id.
type ActualiserAbonneRequest struct {
	Nom          *string          `json:"nom"`
	Prenom       *string          `json:"prenom"`
	Telephone    *string          `json:"telephone"`
	Email        *string          `json:"email" validate:"omitempty,email"`
	Adresse      *string          `json:"adresse"`
	LimiteCredit *decimal.Decimal `json:"limite_credit"`
}

type AbonneResponse struct {
	ID           uint            `json:"id"`
	NumeroAbonne string          `json:"numero_abonne"`
	Nom          string          `json:"nom"`
	Prenom       string          `json:"prenom"`
	NomComplet   string          `json:"nom_complet"`
	Telephone    string          `json:"telephone"`
	Email        *string         `json:"email,omitempty"`
	Adresse      *string         `json:"adresse,omitempty"`
	LimiteCredit decimal.Decimal `json:"limite_credit"`
	SoldeDu      decimal.Decimal `json:"solde_du"`
	Actif        bool            `json:"actif"`
	CreatedAt    string          `json:"created_at"`

	Factures []FactureListItem `json:"factures,omitempty"`
}

type AbonneListResponse struct {
	Data  []AbonneResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
