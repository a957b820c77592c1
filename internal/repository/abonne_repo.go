package repository

import (
	"context"
	"fmt"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/gorm"
)

type AbonneRepository interface {
	Create(ctx context.Context, a *model.Abonne) error
	FindByID(ctx context.Context, id uint) (*model.Abonne, error)
	// FindByIDAvecFactures preloads factures and their payments so callers
	// can compute solde_du without further queries.
	FindByIDAvecFactures(ctx context.Context, id uint) (*model.Abonne, error)
	FindByNumero(ctx context.Context, numero string) (*model.Abonne, error)
	List(ctx context.Context, filter dto.AbonneFilter) ([]model.Abonne, int64, error)
	Update(ctx context.Context, a *model.Abonne) error
	SoftDelete(ctx context.Context, id uint) error
	Reactiver(ctx context.Context, id uint) error
	// NextNumero generates the next "ABN%05d" subscriber number.
	NextNumero(ctx context.Context) (string, error)
	DB() *gorm.DB
}

type abonneRepo struct{ db *gorm.DB }

func NewAbonneRepository(db *gorm.DB) AbonneRepository { return &abonneRepo{db: db} }

func (r *abonneRepo) Create(ctx context.Context, a *model.Abonne) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *abonneRepo) FindByID(ctx context.Context, id uint) (*model.Abonne, error) {
	var a model.Abonne
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *abonneRepo) FindByIDAvecFactures(ctx context.Context, id uint) (*model.Abonne, error) {
	var a model.Abonne
	err := r.db.WithContext(ctx).
		Preload("Factures", func(db *gorm.DB) *gorm.DB { return db.Order("date_emission DESC") }).
		Preload("Factures.Paiements").
		First(&a, id).Error
	return &a, err
}

func (r *abonneRepo) FindByNumero(ctx context.Context, numero string) (*model.Abonne, error) {
	var a model.Abonne
	err := r.db.WithContext(ctx).Where("numero_abonne = ?", numero).First(&a).Error
	return &a, err
}

func (r *abonneRepo) List(ctx context.Context, filter dto.AbonneFilter) ([]model.Abonne, int64, error) {
	var abonnes []model.Abonne
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Abonne{})

	switch filter.Actif {
	case "false":
		q = q.Where("actif = false")
	case "all":
	default:
		q = q.Where("actif = true")
	}

	if filter.Recherche != "" {
		pattern := "%" + filter.Recherche + "%"
		q = q.Where("numero_abonne ILIKE ? OR nom ILIKE ? OR prenom ILIKE ? OR telephone ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, err := SortColumn("abonnes", filter.SortBy, "nom")
	if err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err = q.Order(order + " ASC").Limit(filter.Limit).Offset(offset).Find(&abonnes).Error
	return abonnes, total, err
}

func (r *abonneRepo) Update(ctx context.Context, a *model.Abonne) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *abonneRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Abonne{}).Where("id = ?", id).Update("actif", false).Error
}

func (r *abonneRepo) Reactiver(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Abonne{}).Where("id = ?", id).Update("actif", true).Error
}

func (r *abonneRepo) NextNumero(ctx context.Context) (string, error) {
	var maxID *uint
	if err := r.db.WithContext(ctx).Model(&model.Abonne{}).
		Select("MAX(id)").Scan(&maxID).Error; err != nil {
		return "", err
	}
	n := uint(0)
	if maxID != nil {
		n = *maxID
	}
	return fmt.Sprintf("ABN%05d", n+1), nil
}

func (r *abonneRepo) DB() *gorm.DB { return r.db }
