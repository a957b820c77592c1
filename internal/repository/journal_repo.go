package repository

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"gorm.io/gorm"
)

type JournalRepository interface {
	Append(ctx context.Context, e *model.JournalLog) error
	AppendTx(tx *gorm.DB, e *model.JournalLog) error
	List(ctx context.Context, filter dto.JournalFilter) ([]model.JournalLog, int64, error)
	DB() *gorm.DB
}

type journalRepo struct{ db *gorm.DB }

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepo{db: db}
}

func (r *journalRepo) Append(ctx context.Context, e *model.JournalLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *journalRepo) AppendTx(tx *gorm.DB, e *model.JournalLog) error {
	return tx.Create(e).Error
}

func (r *journalRepo) List(ctx context.Context, filter dto.JournalFilter) ([]model.JournalLog, int64, error) {
	var entrees []model.JournalLog
	var total int64

	q := r.db.WithContext(ctx).Model(&model.JournalLog{})

	if filter.UtilisateurID != "" {
		q = q.Where("utilisateur_id = ?", filter.UtilisateurID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
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
	err := q.Preload("Utilisateur").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&entrees).Error
	return entrees, total, err
}

func (r *journalRepo) DB() *gorm.DB { return r.db }
