package repository

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/gorm"
)

type FournisseurRepository interface {
	Create(ctx context.Context, f *model.Fournisseur) error
	FindByID(ctx context.Context, id uint) (*model.Fournisseur, error)
	List(ctx context.Context, filter dto.FournisseurFilter) ([]model.Fournisseur, int64, error)
	Update(ctx context.Context, f *model.Fournisseur) error
	SoftDelete(ctx context.Context, id uint) error
	Reactiver(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type fournisseurRepo struct{ db *gorm.DB }

func NewFournisseurRepository(db *gorm.DB) FournisseurRepository {
	return &fournisseurRepo{db: db}
}

func (r *fournisseurRepo) Create(ctx context.Context, f *model.Fournisseur) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fournisseurRepo) FindByID(ctx context.Context, id uint) (*model.Fournisseur, error) {
	var f model.Fournisseur
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *fournisseurRepo) List(ctx context.Context, filter dto.FournisseurFilter) ([]model.Fournisseur, int64, error) {
	var fournisseurs []model.Fournisseur
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Fournisseur{})

	if filter.Nom != "" {
		q = q.Where("nom ILIKE ?", "%"+filter.Nom+"%")
	}
	switch filter.Actif {
	case "all":
	case "false":
		q = q.Where("actif = ?", false)
	default:
		q = q.Where("actif = ?", true)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nom ASC").Offset(offset).Limit(filter.Limit).
		Find(&fournisseurs).Error
	return fournisseurs, total, err
}

func (r *fournisseurRepo) Update(ctx context.Context, f *model.Fournisseur) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fournisseurRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Fournisseur{}).
		Where("id = ?", id).Update("actif", false).Error
}

func (r *fournisseurRepo) Reactiver(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Fournisseur{}).
		Where("id = ?", id).Update("actif", true).Error
}

func (r *fournisseurRepo) DB() *gorm.DB { return r.db }
