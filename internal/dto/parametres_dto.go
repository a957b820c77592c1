package dto

import "github.com/shopspring/decimal"

type ParametresResponse struct {
	NomCave       string          `json:"nom_cave"`
	Devise        string          `json:"devise"`
	TauxTVADefaut decimal.Decimal `json:"taux_tva_defaut"`
}

// ActualiserParametresRequest is the typed patch for PUT /v1/parametres.
type ActualiserParametresRequest struct {
	NomCave       *string          `json:"nom_cave"`
	Devise        *string          `json:"devise"`
	TauxTVADefaut *decimal.Decimal `json:"taux_tva_defaut"`
}
