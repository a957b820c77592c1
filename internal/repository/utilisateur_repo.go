package repository

import (
	"context"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/gorm"
)

type UtilisateurRepository interface {
	Create(ctx context.Context, u *model.Utilisateur) error
	FindByID(ctx context.Context, id uint) (*model.Utilisateur, error)
	FindByUsername(ctx context.Context, username string) (*model.Utilisateur, error)
	List(ctx context.Context) ([]model.Utilisateur, error)
	Update(ctx context.Context, u *model.Utilisateur) error
	SetDerniereConnexion(ctx context.Context, id uint, quand time.Time) error
	Desactiver(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type utilisateurRepo struct{ db *gorm.DB }

func NewUtilisateurRepository(db *gorm.DB) UtilisateurRepository {
	return &utilisateurRepo{db: db}
}

func (r *utilisateurRepo) Create(ctx context.Context, u *model.Utilisateur) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *utilisateurRepo) FindByID(ctx context.Context, id uint) (*model.Utilisateur, error) {
	var u model.Utilisateur
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *utilisateurRepo) FindByUsername(ctx context.Context, username string) (*model.Utilisateur, error) {
	var u model.Utilisateur
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *utilisateurRepo) List(ctx context.Context) ([]model.Utilisateur, error) {
	var utilisateurs []model.Utilisateur
	err := r.db.WithContext(ctx).Order("username ASC").Find(&utilisateurs).Error
	return utilisateurs, err
}

func (r *utilisateurRepo) Update(ctx context.Context, u *model.Utilisateur) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *utilisateurRepo) SetDerniereConnexion(ctx context.Context, id uint, quand time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Utilisateur{}).
		Where("id = ?", id).Update("derniere_connexion", quand).Error
}

func (r *utilisateurRepo) Desactiver(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Utilisateur{}).
		Where("id = ?", id).Update("actif", false).Error
}

func (r *utilisateurRepo) DB() *gorm.DB { return r.db }
