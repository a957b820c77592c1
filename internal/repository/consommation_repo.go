package repository

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/gorm"
)

type ConsommationRepository interface {
	CreateTx(tx *gorm.DB, c *model.Consommation) error
	FindByID(ctx context.Context, id uint) (*model.Consommation, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Consommation, error)
	List(ctx context.Context, filter dto.ConsommationFilter) ([]model.Consommation, int64, error)
	// ListPeriode returns every consumption in [debut, fin] without pagination
	// — feeds the statistics report.
	ListPeriode(ctx context.Context, dateDebut, dateFin string) ([]model.Consommation, error)
	// ListNonFactureesByAbonne returns a subscriber's unbilled consumptions.
	ListNonFactureesByAbonne(ctx context.Context, abonneID uint) ([]model.Consommation, error)
	UpdateTx(tx *gorm.DB, c *model.Consommation) error
	DeleteTx(tx *gorm.DB, id uint) error
	// AttacherFactureTx stamps facture_id on an unbilled consumption.
	AttacherFactureTx(tx *gorm.DB, consoID, factureID uint) error
	// DetacherFactureTx clears facture_id for every line of a facture.
	DetacherFactureTx(tx *gorm.DB, factureID uint) error
	DB() *gorm.DB
}

type consommationRepo struct{ db *gorm.DB }

func NewConsommationRepository(db *gorm.DB) ConsommationRepository {
	return &consommationRepo{db: db}
}

func (r *consommationRepo) CreateTx(tx *gorm.DB, c *model.Consommation) error {
	return tx.Create(c).Error
}

func (r *consommationRepo) FindByID(ctx context.Context, id uint) (*model.Consommation, error) {
	var c model.Consommation
	err := r.db.WithContext(ctx).
		Preload("Abonne").Preload("Produit").Preload("Facture").
		First(&c, id).Error
	return &c, err
}

func (r *consommationRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Consommation, error) {
	var c model.Consommation
	err := tx.First(&c, id).Error
	return &c, err
}

func (r *consommationRepo) List(ctx context.Context, filter dto.ConsommationFilter) ([]model.Consommation, int64, error) {
	var consommations []model.Consommation
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Consommation{})

	if filter.AbonneID != "" {
		q = q.Where("abonne_id = ?", filter.AbonneID)
	}
	if filter.ProduitID != "" {
		q = q.Where("produit_id = ?", filter.ProduitID)
	}
	switch filter.Facturees {
	case "true":
		q = q.Where("facture_id IS NOT NULL")
	case "false":
		q = q.Where("facture_id IS NULL")
	}
	if t := parseDate(filter.DateDebut); t != nil {
		q = q.Where("date >= ?", *t)
	}
	if t := parseDate(filter.DateFin); t != nil {
		q = q.Where("date <= ?", *t)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Abonne").Preload("Produit").Preload("Facture").
		Order("date DESC").Offset(offset).Limit(filter.Limit).
		Find(&consommations).Error
	return consommations, total, err
}

func (r *consommationRepo) ListPeriode(ctx context.Context, dateDebut, dateFin string) ([]model.Consommation, error) {
	q := r.db.WithContext(ctx).Model(&model.Consommation{})
	if t := parseDate(dateDebut); t != nil {
		q = q.Where("date >= ?", *t)
	}
	if t := parseDate(dateFin); t != nil {
		q = q.Where("date <= ?", *t)
	}
	var consommations []model.Consommation
	err := q.Preload("Produit").Find(&consommations).Error
	return consommations, err
}

func (r *consommationRepo) ListNonFactureesByAbonne(ctx context.Context, abonneID uint) ([]model.Consommation, error) {
	var consommations []model.Consommation
	err := r.db.WithContext(ctx).
		Where("abonne_id = ? AND facture_id IS NULL", abonneID).
		Preload("Produit").Order("date DESC").
		Find(&consommations).Error
	return consommations, err
}

func (r *consommationRepo) UpdateTx(tx *gorm.DB, c *model.Consommation) error {
	return tx.Save(c).Error
}

func (r *consommationRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Consommation{}, id).Error
}

func (r *consommationRepo) AttacherFactureTx(tx *gorm.DB, consoID, factureID uint) error {
	return tx.Model(&model.Consommation{}).
		Where("id = ? AND facture_id IS NULL", consoID).
		Update("facture_id", factureID).Error
}

func (r *consommationRepo) DetacherFactureTx(tx *gorm.DB, factureID uint) error {
	return tx.Model(&model.Consommation{}).
		Where("facture_id = ?", factureID).
		Update("facture_id", nil).Error
}

func (r *consommationRepo) DB() *gorm.DB { return r.db }
