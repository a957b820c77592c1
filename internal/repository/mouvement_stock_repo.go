package repository

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/gorm"
)

type MouvementStockRepository interface {
	CreateTx(tx *gorm.DB, m *model.MouvementStock) error
	List(ctx context.Context, filter dto.MouvementStockFilter) ([]model.MouvementStock, int64, error)
	DB() *gorm.DB
}

type mouvementStockRepo struct{ db *gorm.DB }

func NewMouvementStockRepository(db *gorm.DB) MouvementStockRepository {
	return &mouvementStockRepo{db: db}
}

func (r *mouvementStockRepo) CreateTx(tx *gorm.DB, m *model.MouvementStock) error {
	return tx.Create(m).Error
}

func (r *mouvementStockRepo) List(ctx context.Context, filter dto.MouvementStockFilter) ([]model.MouvementStock, int64, error) {
	var mouvements []model.MouvementStock
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MouvementStock{})

	if filter.ProduitID != "" {
		q = q.Where("produit_id = ?", filter.ProduitID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Utilisateur != "" {
		q = q.Where("utilisateur = ?", filter.Utilisateur)
	}
	if t := parseDate(filter.DateDebut); t != nil {
		q = q.Where("created_at >= ?", *t)
	}
	if t := parseDate(filter.DateFin); t != nil {
		q = q.Where("created_at <= ?", *t)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Produit").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&mouvements).Error
	return mouvements, total, err
}

func (r *mouvementStockRepo) DB() *gorm.DB { return r.db }
