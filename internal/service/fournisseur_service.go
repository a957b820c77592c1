package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"

	"gorm.io/gorm"
)

type FournisseurService interface {
	Creer(ctx context.Context, acteur Acteur, req dto.CreerFournisseurRequest) (*dto.FournisseurResponse, error)
	Get(ctx context.Context, id uint) (*dto.FournisseurResponse, error)
	List(ctx context.Context, filter dto.FournisseurFilter) (*dto.FournisseurListResponse, error)
	Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserFournisseurRequest) (*dto.FournisseurResponse, error)
	Desactiver(ctx context.Context, acteur Acteur, id uint) error
	Reactiver(ctx context.Context, acteur Acteur, id uint) error
}

type fournisseurService struct {
	repo    repository.FournisseurRepository
	journal repository.JournalRepository
}

func NewFournisseurService(repo repository.FournisseurRepository, journal repository.JournalRepository) FournisseurService {
	return &fournisseurService{repo: repo, journal: journal}
}

func (s *fournisseurService) Creer(ctx context.Context, acteur Acteur, req dto.CreerFournisseurRequest) (*dto.FournisseurResponse, error) {
	f := &model.Fournisseur{
		Nom:       req.Nom,
		Contact:   req.Contact,
		Telephone: req.Telephone,
		Adresse:   req.Adresse,
		Note:      req.Note,
		Actif:     true,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "FOURNISSEUR_CREATE",
		Description:   fmt.Sprintf("fournisseur %s créé", f.Nom),
	})
	return fournisseurToResponse(f), nil
}

func (s *fournisseurService) Get(ctx context.Context, id uint) (*dto.FournisseurResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("fournisseur introuvable")
		}
		return nil, err
	}
	return fournisseurToResponse(f), nil
}

func (s *fournisseurService) List(ctx context.Context, filter dto.FournisseurFilter) (*dto.FournisseurListResponse, error) {
	fournisseurs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.FournisseurListResponse{
		Data:  make([]dto.FournisseurResponse, 0, len(fournisseurs)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range fournisseurs {
		resp.Data = append(resp.Data, *fournisseurToResponse(&fournisseurs[i]))
	}
	return resp, nil
}

func (s *fournisseurService) Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserFournisseurRequest) (*dto.FournisseurResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("fournisseur introuvable")
		}
		return nil, err
	}

	if req.Nom != nil {
		f.Nom = *req.Nom
	}
	if req.Contact != nil {
		f.Contact = *req.Contact
	}
	if req.Telephone != nil {
		f.Telephone = *req.Telephone
	}
	if req.Adresse != nil {
		f.Adresse = req.Adresse
	}
	if req.Note != nil {
		f.Note = req.Note
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "FOURNISSEUR_MODIF",
		Description:   fmt.Sprintf("fournisseur %s modifié", f.Nom),
	})
	return fournisseurToResponse(f), nil
}

func (s *fournisseurService) Desactiver(ctx context.Context, acteur Acteur, id uint) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("fournisseur introuvable")
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "FOURNISSEUR_DESACTIVATION",
		Description:   fmt.Sprintf("fournisseur %s désactivé", f.Nom),
	})
	return nil
}

func (s *fournisseurService) Reactiver(ctx context.Context, acteur Acteur, id uint) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("fournisseur introuvable")
		}
		return err
	}
	if err := s.repo.Reactiver(ctx, id); err != nil {
		return err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "FOURNISSEUR_REACTIVATION",
		Description:   fmt.Sprintf("fournisseur %s réactivé", f.Nom),
	})
	return nil
}

func fournisseurToResponse(f *model.Fournisseur) *dto.FournisseurResponse {
	return &dto.FournisseurResponse{
		ID:        f.ID,
		Nom:       f.Nom,
		Contact:   f.Contact,
		Telephone: f.Telephone,
		Adresse:   f.Adresse,
		Note:      f.Note,
		Actif:     f.Actif,
	}
}
