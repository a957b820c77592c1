package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UtilisateurService interface {
	Creer(ctx context.Context, acteur Acteur, req dto.CreerUtilisateurRequest) (*dto.UtilisateurResponse, error)
	List(ctx context.Context) ([]dto.UtilisateurResponse, error)
	Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserUtilisateurRequest) (*dto.UtilisateurResponse, error)
	Desactiver(ctx context.Context, acteur Acteur, id uint) error
}

type utilisateurService struct {
	repo    repository.UtilisateurRepository
	journal repository.JournalRepository
}

func NewUtilisateurService(repo repository.UtilisateurRepository, journal repository.JournalRepository) UtilisateurService {
	return &utilisateurService{repo: repo, journal: journal}
}

func (s *utilisateurService) Creer(ctx context.Context, acteur Acteur, req dto.CreerUtilisateurRequest) (*dto.UtilisateurResponse, error) {
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrStateConflict(fmt.Sprintf("username %s déjà utilisé", req.Username))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.Utilisateur{
		Username:     req.Username,
		NomComplet:   req.NomComplet,
		PasswordHash: string(hash),
		Role:         req.Role,
		Actif:        true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "UTILISATEUR_CREATE",
		Description:   fmt.Sprintf("utilisateur %s (%s) créé", u.Username, u.Role),
	})
	return utilisateurToResponse(u), nil
}

func (s *utilisateurService) List(ctx context.Context) ([]dto.UtilisateurResponse, error) {
	utilisateurs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UtilisateurResponse, 0, len(utilisateurs))
	for i := range utilisateurs {
		out = append(out, *utilisateurToResponse(&utilisateurs[i]))
	}
	return out, nil
}

func (s *utilisateurService) Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserUtilisateurRequest) (*dto.UtilisateurResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("utilisateur introuvable")
		}
		return nil, err
	}

	if req.NomComplet != nil {
		u.NomComplet = *req.NomComplet
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if req.Role != nil {
		u.Role = *req.Role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "UTILISATEUR_MODIF",
		Description:   fmt.Sprintf("utilisateur %s modifié", u.Username),
	})
	return utilisateurToResponse(u), nil
}

// Desactiver blocks future logins. An admin cannot disable their own account.
func (s *utilisateurService) Desactiver(ctx context.Context, acteur Acteur, id uint) error {
	if acteur.ID != nil && *acteur.ID == id {
		return ErrStateConflict("impossible de désactiver son propre compte")
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("utilisateur introuvable")
		}
		return err
	}
	if err := s.repo.Desactiver(ctx, id); err != nil {
		return err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "UTILISATEUR_DESACTIVATION",
		Description:   fmt.Sprintf("utilisateur %s désactivé", u.Username),
	})
	return nil
}
