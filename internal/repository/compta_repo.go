package repository

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ComptaRepository interface {
	Create(ctx context.Context, e *model.EcritureCompta) error
	CreateTx(tx *gorm.DB, e *model.EcritureCompta) error
	List(ctx context.Context, filter dto.ComptaFilter) ([]model.EcritureCompta, int64, error)
	// Totaux returns (recettes, depenses) over the optional period.
	Totaux(ctx context.Context, dateDebut, dateFin string) (decimal.Decimal, decimal.Decimal, error)
	DB() *gorm.DB
}

type comptaRepo struct{ db *gorm.DB }

func NewComptaRepository(db *gorm.DB) ComptaRepository {
	return &comptaRepo{db: db}
}

func (r *comptaRepo) Create(ctx context.Context, e *model.EcritureCompta) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *comptaRepo) CreateTx(tx *gorm.DB, e *model.EcritureCompta) error {
	return tx.Create(e).Error
}

func (r *comptaRepo) List(ctx context.Context, filter dto.ComptaFilter) ([]model.EcritureCompta, int64, error) {
	var ecritures []model.EcritureCompta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.EcritureCompta{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if t := parseDate(filter.DateDebut); t != nil {
		q = q.Where("date_operation >= ?", *t)
	}
	if t := parseDate(filter.DateFin); t != nil {
		q = q.Where("date_operation <= ?", *t)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("date_operation DESC").Offset(offset).Limit(filter.Limit).
		Find(&ecritures).Error
	return ecritures, total, err
}

func (r *comptaRepo) Totaux(ctx context.Context, dateDebut, dateFin string) (decimal.Decimal, decimal.Decimal, error) {
	type ligne struct {
		Type  string
		Somme decimal.Decimal
	}
	q := r.db.WithContext(ctx).Model(&model.EcritureCompta{})
	if t := parseDate(dateDebut); t != nil {
		q = q.Where("date_operation >= ?", *t)
	}
	if t := parseDate(dateFin); t != nil {
		q = q.Where("date_operation <= ?", *t)
	}

	var lignes []ligne
	err := q.Select("type, COALESCE(SUM(montant), 0) AS somme").
		Group("type").Scan(&lignes).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	recettes, depenses := decimal.Zero, decimal.Zero
	for _, l := range lignes {
		switch l.Type {
		case model.ComptaRecette:
			recettes = l.Somme
		case model.ComptaDepense:
			depenses = l.Somme
		}
	}
	return recettes, depenses, nil
}

func (r *comptaRepo) DB() *gorm.DB { return r.db }
