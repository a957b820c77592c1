package repository

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/gorm"
)

// ProduitRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProduitRepository interface {
	Create(ctx context.Context, p *model.Produit) error
	FindByID(ctx context.Context, id uint) (*model.Produit, error)
	List(ctx context.Context, filter dto.ProduitFilter) ([]model.Produit, int64, error)
	// ListActifs returns every active product — used by the valuation and
	// low-stock reports.
	ListActifs(ctx context.Context) ([]model.Produit, error)
	Update(ctx context.Context, p *model.Produit) error
	SoftDelete(ctx context.Context, id uint) error
	Reactiver(ctx context.Context, id uint) error

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, p *model.Produit) error
	FindByIDTx(tx *gorm.DB, id uint) (*model.Produit, error)
	UpdateStockTx(tx *gorm.DB, id uint, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produitRepo struct{ db *gorm.DB }

func NewProduitRepository(db *gorm.DB) ProduitRepository { return &produitRepo{db: db} }

func (r *produitRepo) Create(ctx context.Context, p *model.Produit) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produitRepo) FindByID(ctx context.Context, id uint) (*model.Produit, error) {
	var p model.Produit
	err := r.db.WithContext(ctx).Preload("Fournisseur").First(&p, id).Error
	return &p, err
}

func (r *produitRepo) List(ctx context.Context, filter dto.ProduitFilter) ([]model.Produit, int64, error) {
	var produits []model.Produit
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produit{})

	// Actif filter: "false" = inactifs, "all" = tous, défaut = actifs
	switch filter.Actif {
	case "false":
		q = q.Where("actif = false")
	case "all":
		// no filter
	default:
		q = q.Where("actif = true")
	}

	if filter.Nom != "" {
		q = q.Where("nom ILIKE ?", "%"+filter.Nom+"%")
	}
	if filter.Categorie != "" {
		q = q.Where("categorie = ?", filter.Categorie)
	}
	if filter.FournisseurID != "" {
		q = q.Where("fournisseur_id = ?", filter.FournisseurID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, err := SortColumn("produits", filter.SortBy, "nom")
	if err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err = q.Preload("Fournisseur").Order(order + " ASC").
		Limit(filter.Limit).Offset(offset).Find(&produits).Error
	return produits, total, err
}

func (r *produitRepo) ListActifs(ctx context.Context) ([]model.Produit, error) {
	var produits []model.Produit
	err := r.db.WithContext(ctx).Where("actif = true").
		Preload("Fournisseur").Order("stock ASC").Find(&produits).Error
	return produits, err
}

func (r *produitRepo) Update(ctx context.Context, p *model.Produit) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produitRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Produit{}).Where("id = ?", id).Update("actif", false).Error
}

func (r *produitRepo) Reactiver(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Produit{}).Where("id = ?", id).Update("actif", true).Error
}

func (r *produitRepo) CreateTx(tx *gorm.DB, p *model.Produit) error {
	return tx.Create(p).Error
}

func (r *produitRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Produit, error) {
	var p model.Produit
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *produitRepo) UpdateStockTx(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Produit{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *produitRepo) DB() *gorm.DB { return r.db }
