package dto

// JournalFilter is bound from the query string of GET /v1/journal.
type JournalFilter struct {
	UtilisateurID string `form:"utilisateur_id"`
	Action        string `form:"action"`
	DateDebut     string `form:"date_debut"`
	DateFin       string `form:"date_fin"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type JournalEntryResponse struct {
	ID          uint    `json:"id"`
	Utilisateur *string `json:"utilisateur,omitempty"`
	Action      string  `json:"action"`
	Description string  `json:"description,omitempty"`
	Statut      string  `json:"statut"`
	Date        string  `json:"date"`
}

type JournalListResponse struct {
	Data  []JournalEntryResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
