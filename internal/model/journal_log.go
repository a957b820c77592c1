package model

import "time"

// JournalLog is the audit trail: one entry per mutating workflow call.
type JournalLog struct {
	ID            uint  `gorm:"primaryKey"`
	UtilisateurID *uint `gorm:"index"`
	// Action is a short code, e.g. "VENTE", "STOCK_MVT", "FACTURE_CREATE".
	Action      string `gorm:"not null;index"`
	Description string
	Statut      string    `gorm:"type:varchar(10);not null;default:'succes'"`
	CreatedAt   time.Time `gorm:"index"`

	Utilisateur *Utilisateur `gorm:"foreignKey:UtilisateurID"`
}

func (JournalLog) TableName() string { return "journal_log" }
