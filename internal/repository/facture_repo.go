package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/gorm"
)

type FactureRepository interface {
	CreateTx(tx *gorm.DB, f *model.Facture) error
	FindByID(ctx context.Context, id uint) (*model.Facture, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Facture, error)
	// FindOuverteByAbonneTx returns the subscriber's most recent facture
	// still en_attente with no payment, or gorm.ErrRecordNotFound.
	FindOuverteByAbonneTx(tx *gorm.DB, abonneID uint) (*model.Facture, error)
	List(ctx context.Context, filter dto.FactureFilter) ([]model.Facture, int64, error)
	// ListEchues returns unpaid factures issued before the cutoff, for the
	// reminder cron.
	ListEchues(ctx context.Context, avant time.Time, limit int) ([]model.Facture, error)
	UpdateTx(tx *gorm.DB, f *model.Facture) error
	DeleteTx(tx *gorm.DB, id uint) error
	SetPDFPath(ctx context.Context, id uint, chemin string) error
	// NextNumero allocates the next "FAC-YYYYMM-0001" number for the month.
	NextNumero(tx *gorm.DB, maintenant time.Time) (string, error)
	DB() *gorm.DB
}

type factureRepo struct{ db *gorm.DB }

func NewFactureRepository(db *gorm.DB) FactureRepository {
	return &factureRepo{db: db}
}

func (r *factureRepo) CreateTx(tx *gorm.DB, f *model.Facture) error {
	return tx.Create(f).Error
}

func (r *factureRepo) FindByID(ctx context.Context, id uint) (*model.Facture, error) {
	var f model.Facture
	err := r.db.WithContext(ctx).
		Preload("Abonne").
		Preload("Consommations").Preload("Consommations.Produit").
		Preload("Paiements").
		First(&f, id).Error
	return &f, err
}

func (r *factureRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Facture, error) {
	var f model.Facture
	err := tx.Preload("Paiements").First(&f, id).Error
	return &f, err
}

func (r *factureRepo) FindOuverteByAbonneTx(tx *gorm.DB, abonneID uint) (*model.Facture, error) {
	var f model.Facture
	err := tx.
		Where("abonne_id = ? AND statut = ?", abonneID, model.FactureEnAttente).
		Where("NOT EXISTS (SELECT 1 FROM paiements WHERE paiements.facture_id = factures.id)").
		Order("date_emission DESC").
		First(&f).Error
	return &f, err
}

func (r *factureRepo) List(ctx context.Context, filter dto.FactureFilter) ([]model.Facture, int64, error) {
	var factures []model.Facture
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Facture{})

	if filter.Statut != "" && filter.Statut != "all" {
		q = q.Where("statut = ?", filter.Statut)
	}
	if filter.AbonneID != "" {
		q = q.Where("abonne_id = ?", filter.AbonneID)
	}
	if t := parseDate(filter.DateDebut); t != nil {
		q = q.Where("date_emission >= ?", *t)
	}
	if t := parseDate(filter.DateFin); t != nil {
		q = q.Where("date_emission <= ?", *t)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Abonne").Preload("Paiements").
		Order("date_emission DESC").Offset(offset).Limit(filter.Limit).
		Find(&factures).Error
	return factures, total, err
}

func (r *factureRepo) ListEchues(ctx context.Context, avant time.Time, limit int) ([]model.Facture, error) {
	var factures []model.Facture
	err := r.db.WithContext(ctx).
		Where("statut <> ? AND date_emission < ?", model.FacturePayee, avant).
		Preload("Abonne").Preload("Paiements").
		Order("date_emission ASC").Limit(limit).
		Find(&factures).Error
	return factures, err
}

func (r *factureRepo) UpdateTx(tx *gorm.DB, f *model.Facture) error {
	return tx.Save(f).Error
}

func (r *factureRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Facture{}, id).Error
}

func (r *factureRepo) SetPDFPath(ctx context.Context, id uint, chemin string) error {
	return r.db.WithContext(ctx).Model(&model.Facture{}).
		Where("id = ?", id).Update("pdf_path", chemin).Error
}

func (r *factureRepo) NextNumero(tx *gorm.DB, maintenant time.Time) (string, error) {
	prefixe := fmt.Sprintf("FAC-%s-", maintenant.Format("200601"))
	var dernier string
	err := tx.Model(&model.Facture{}).
		Where("numero_facture LIKE ?", prefixe+"%").
		Order("numero_facture DESC").Limit(1).
		Pluck("numero_facture", &dernier).Error
	if err != nil {
		return "", err
	}
	seq := 1
	if dernier != "" {
		fmt.Sscanf(dernier, prefixe+"%04d", &seq)
		seq++
	}
	return fmt.Sprintf("%s%04d", prefixe, seq), nil
}

func (r *factureRepo) DB() *gorm.DB { return r.db }
