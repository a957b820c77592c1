package model

import "time"

// Utilisateur stores system users with role-based access.
// Role: "admin" | "gerant" | "vendeur"
type Utilisateur struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	NomComplet   string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'vendeur'"`
	Actif        bool   `gorm:"not null;default:true"`
	DerniereConnexion *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Utilisateur) TableName() string { return "utilisateurs" }
