package dto

type FournisseurFilter struct {
	Nom   string `form:"nom"`
	Actif string `form:"actif"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreerFournisseurRequest struct {
	Nom       string  `json:"nom" validate:"required"`
	Contact   string  `json:"contact"`
	Telephone string  `json:"telephone"`
	Adresse   *string `json:"adresse"`
	Note      *string `json:"note"`
}

// ActualiserFournisseurRequest is the typed patch for PUT /v1/fournisseurs/:id.
type ActualiserFournisseurRequest struct {
	Nom       *string `json:"nom"`
	Contact   *string `json:"contact"`
	Telephone *string `json:"telephone"`
	Adresse   *string `json:"adresse"`
	Note      *string `json:"note"`
}

type FournisseurResponse struct {
	ID        uint    `json:"id"`
	Nom       string  `json:"nom"`
	Contact   string  `json:"contact,omitempty"`
	Telephone string  `json:"telephone,omitempty"`
	Adresse   *string `json:"adresse,omitempty"`
	Note      *string `json:"note,omitempty"`
	Actif     bool    `json:"actif"`
}

type FournisseurListResponse struct {
	Data  []FournisseurResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
