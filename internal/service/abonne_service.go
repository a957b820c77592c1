package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AbonneService interface {
	Creer(ctx context.Context, acteur Acteur, req dto.CreerAbonneRequest) (*dto.AbonneResponse, error)
	// Get returns the subscriber with their factures and solde_du.
	Get(ctx context.Context, id uint) (*dto.AbonneResponse, error)
	List(ctx context.Context, filter dto.AbonneFilter) (*dto.AbonneListResponse, error)
	Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserAbonneRequest) (*dto.AbonneResponse, error)
	Desactiver(ctx context.Context, acteur Acteur, id uint) error
	Reactiver(ctx context.Context, acteur Acteur, id uint) error
}

type abonneService struct {
	repo    repository.AbonneRepository
	journal repository.JournalRepository
}

func NewAbonneService(repo repository.AbonneRepository, journal repository.JournalRepository) AbonneService {
	return &abonneService{repo: repo, journal: journal}
}

func (s *abonneService) Creer(ctx context.Context, acteur Acteur, req dto.CreerAbonneRequest) (*dto.AbonneResponse, error) {
	numero := ""
	if req.NumeroAbonne != nil && *req.NumeroAbonne != "" {
		numero = *req.NumeroAbonne
		if _, err := s.repo.FindByNumero(ctx, numero); err == nil {
			return nil, ErrStateConflict(fmt.Sprintf("numéro d'abonné %s déjà attribué", numero))
		}
	} else {
		var err error
		numero, err = s.repo.NextNumero(ctx)
		if err != nil {
			return nil, err
		}
	}

	abonne := &model.Abonne{
		NumeroAbonne: numero,
		Nom:          req.Nom,
		Prenom:       req.Prenom,
		Telephone:    req.Telephone,
		Email:        req.Email,
		Adresse:      req.Adresse,
		LimiteCredit: req.LimiteCredit,
		Actif:        true,
	}
	if err := s.repo.Create(ctx, abonne); err != nil {
		return nil, err
	}

	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "ABONNE_CREATE",
		Description:   fmt.Sprintf("abonné %s (%s) créé", numero, abonne.NomComplet()),
	})
	return abonneToResponse(abonne, false), nil
}

func (s *abonneService) Get(ctx context.Context, id uint) (*dto.AbonneResponse, error) {
	abonne, err := s.repo.FindByIDAvecFactures(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("abonné introuvable")
		}
		return nil, err
	}
	return abonneToResponse(abonne, true), nil
}

func (s *abonneService) List(ctx context.Context, filter dto.AbonneFilter) (*dto.AbonneListResponse, error) {
	abonnes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.AbonneListResponse{
		Data:  make([]dto.AbonneResponse, 0, len(abonnes)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range abonnes {
		resp.Data = append(resp.Data, *abonneToResponse(&abonnes[i], false))
	}
	return resp, nil
}

func (s *abonneService) Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserAbonneRequest) (*dto.AbonneResponse, error) {
	abonne, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("abonné introuvable")
		}
		return nil, err
	}

	if req.Nom != nil {
		abonne.Nom = *req.Nom
	}
	if req.Prenom != nil {
		abonne.Prenom = *req.Prenom
	}
	if req.Telephone != nil {
		abonne.Telephone = *req.Telephone
	}
	if req.Email != nil {
		abonne.Email = req.Email
	}
	if req.Adresse != nil {
		abonne.Adresse = req.Adresse
	}
	if req.LimiteCredit != nil {
		if req.LimiteCredit.IsNegative() {
			return nil, ErrInvalidInput("limite_credit ne peut pas être négative")
		}
		abonne.LimiteCredit = *req.LimiteCredit
	}

	if err := s.repo.Update(ctx, abonne); err != nil {
		return nil, err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "ABONNE_MODIF",
		Description:   fmt.Sprintf("abonné %s modifié", abonne.NumeroAbonne),
	})
	return abonneToResponse(abonne, false), nil
}

// Desactiver soft deletes: history and factures stay readable.
func (s *abonneService) Desactiver(ctx context.Context, acteur Acteur, id uint) error {
	abonne, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("abonné introuvable")
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "ABONNE_DESACTIVATION",
		Description:   fmt.Sprintf("abonné %s désactivé", abonne.NumeroAbonne),
	})
	return nil
}

func (s *abonneService) Reactiver(ctx context.Context, acteur Acteur, id uint) error {
	abonne, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("abonné introuvable")
		}
		return err
	}
	if err := s.repo.Reactiver(ctx, id); err != nil {
		return err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "ABONNE_REACTIVATION",
		Description:   fmt.Sprintf("abonné %s réactivé", abonne.NumeroAbonne),
	})
	return nil
}

// abonneToResponse computes solde_du from the preloaded factures when
// avecFactures is set.
func abonneToResponse(a *model.Abonne, avecFactures bool) *dto.AbonneResponse {
	resp := &dto.AbonneResponse{
		ID:           a.ID,
		NumeroAbonne: a.NumeroAbonne,
		Nom:          a.Nom,
		Prenom:       a.Prenom,
		NomComplet:   a.NomComplet(),
		Telephone:    a.Telephone,
		Email:        a.Email,
		Adresse:      a.Adresse,
		LimiteCredit: a.LimiteCredit,
		SoldeDu:      decimal.Zero,
		Actif:        a.Actif,
		CreatedAt:    a.CreatedAt.Format(dateFormat),
	}
	if !avecFactures {
		return resp
	}
	for i := range a.Factures {
		f := &a.Factures[i]
		resp.SoldeDu = resp.SoldeDu.Add(f.ResteAPayer())
		resp.Factures = append(resp.Factures, dto.FactureListItem{
			ID:            f.ID,
			NumeroFacture: f.NumeroFacture,
			AbonneID:      f.AbonneID,
			Abonne:        a.NomComplet(),
			MontantTTC:    f.MontantTTC,
			Statut:        f.Statut,
			DateEmission:  f.DateEmission.Format(dateFormat),
			DateEcheance:  formatDatePtr(f.DateEcheance),
			MontantPaye:   f.MontantPaye(),
			ResteAPayer:   f.ResteAPayer(),
		})
	}
	return resp
}
