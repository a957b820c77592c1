package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string              `json:"token"`
	TokenType string              `json:"token_type"`
	ExpiresIn int                 `json:"expires_in"` // seconds
	User      UtilisateurResponse `json:"user"`
}

type CreerUtilisateurRequest struct {
	Username   string `json:"username"    validate:"required"`
	NomComplet string `json:"nom_complet" validate:"required"`
	Password   string `json:"password"    validate:"required,min=8"`
	Role       string `json:"role"        validate:"required,oneof=admin gerant vendeur"`
}

// ActualiserUtilisateurRequest is the typed patch for PUT /v1/utilisateurs/:id.
type ActualiserUtilisateurRequest struct {
	NomComplet *string `json:"nom_complet"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
	Role       *string `json:"role"     validate:"omitempty,oneof=admin gerant vendeur"`
}

type UtilisateurResponse struct {
	ID                uint    `json:"id"`
	Username          string  `json:"username"`
	NomComplet        string  `json:"nom_complet"`
	Role              string  `json:"role"`
	Actif             bool    `json:"actif"`
	DerniereConnexion *string `json:"derniere_connexion,omitempty"`
}
