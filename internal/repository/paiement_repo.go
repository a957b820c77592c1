package repository

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaiementRepository interface {
	CreateTx(tx *gorm.DB, p *model.Paiement) error
	FindByID(ctx context.Context, id uint) (*model.Paiement, error)
	List(ctx context.Context, filter dto.PaiementFilter) ([]model.Paiement, int64, error)
	DeleteTx(tx *gorm.DB, id uint) error
	// SumByFactureTx totals the payments already applied to a facture.
	SumByFactureTx(tx *gorm.DB, factureID uint) (decimal.Decimal, error)
	DB() *gorm.DB
}

type paiementRepo struct{ db *gorm.DB }

func NewPaiementRepository(db *gorm.DB) PaiementRepository {
	return &paiementRepo{db: db}
}

func (r *paiementRepo) CreateTx(tx *gorm.DB, p *model.Paiement) error {
	return tx.Create(p).Error
}

func (r *paiementRepo) FindByID(ctx context.Context, id uint) (*model.Paiement, error) {
	var p model.Paiement
	err := r.db.WithContext(ctx).Preload("Facture").First(&p, id).Error
	return &p, err
}

func (r *paiementRepo) List(ctx context.Context, filter dto.PaiementFilter) ([]model.Paiement, int64, error) {
	var paiements []model.Paiement
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Paiement{})

	if filter.FactureID != "" {
		q = q.Where("facture_id = ?", filter.FactureID)
	}
	if filter.Mode != "" {
		q = q.Where("mode = ?", filter.Mode)
	}
	if t := parseDate(filter.DateDebut); t != nil {
		q = q.Where("date_paiement >= ?", *t)
	}
	if t := parseDate(filter.DateFin); t != nil {
		q = q.Where("date_paiement <= ?", *t)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Facture").
		Order("date_paiement DESC").Offset(offset).Limit(filter.Limit).
		Find(&paiements).Error
	return paiements, total, err
}

func (r *paiementRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Paiement{}, id).Error
}

func (r *paiementRepo) SumByFactureTx(tx *gorm.DB, factureID uint) (decimal.Decimal, error) {
	var somme decimal.NullDecimal
	err := tx.Model(&model.Paiement{}).
		Where("facture_id = ?", factureID).
		Select("COALESCE(SUM(montant), 0)").
		Scan(&somme).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !somme.Valid {
		return decimal.Zero, nil
	}
	return somme.Decimal, nil
}

func (r *paiementRepo) DB() *gorm.DB { return r.db }
