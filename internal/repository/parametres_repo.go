package repository

import (
	"context"
	"errors"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ParametresRepository interface {
	Get(ctx context.Context) (*model.Parametres, error)
	Update(ctx context.Context, p *model.Parametres) error
	// Seed inserts the singleton row when the table is empty.
	Seed(ctx context.Context, nomCave, devise string, tauxTVA decimal.Decimal) error
	DB() *gorm.DB
}

type parametresRepo struct{ db *gorm.DB }

func NewParametresRepository(db *gorm.DB) ParametresRepository {
	return &parametresRepo{db: db}
}

func (r *parametresRepo) Get(ctx context.Context) (*model.Parametres, error) {
	var p model.Parametres
	err := r.db.WithContext(ctx).First(&p).Error
	return &p, err
}

func (r *parametresRepo) Update(ctx context.Context, p *model.Parametres) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *parametresRepo) Seed(ctx context.Context, nomCave, devise string, tauxTVA decimal.Decimal) error {
	var p model.Parametres
	err := r.db.WithContext(ctx).First(&p).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&model.Parametres{
		NomCave:       nomCave,
		Devise:        devise,
		TauxTVADefaut: tauxTVA,
	}).Error
}

func (r *parametresRepo) DB() *gorm.DB { return r.db }
