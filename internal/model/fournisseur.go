package model

import "time"

// Fournisseur is a goods supplier.
type Fournisseur struct {
	ID        uint   `gorm:"primaryKey"`
	Nom       string `gorm:"index;not null"`
	Contact   string
	Telephone string
	Adresse   *string
	Note      *string
	Actif     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
