package service

import (
	"context"
	"fmt"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"
)

type ComptaService interface {
	// Enregistrer appends a manual ledger entry. Recettes tied to payments
	// are written by the payment workflow, not here.
	Enregistrer(ctx context.Context, acteur Acteur, req dto.CreerEcritureRequest) (*dto.EcritureResponse, error)
	List(ctx context.Context, filter dto.ComptaFilter) (*dto.EcritureListResponse, error)
	Solde(ctx context.Context) (*dto.SoldeResponse, error)
	Rapport(ctx context.Context, dateDebut, dateFin string) (*dto.RapportComptaResponse, error)
}

type comptaService struct {
	repo       repository.ComptaRepository
	paramsRepo repository.ParametresRepository
	journal    repository.JournalRepository
}

func NewComptaService(repo repository.ComptaRepository, paramsRepo repository.ParametresRepository, journal repository.JournalRepository) ComptaService {
	return &comptaService{repo: repo, paramsRepo: paramsRepo, journal: journal}
}

func (s *comptaService) Enregistrer(ctx context.Context, acteur Acteur, req dto.CreerEcritureRequest) (*dto.EcritureResponse, error) {
	if !req.Montant.IsPositive() {
		return nil, ErrInvalidInput("montant doit être strictement positif")
	}

	e := &model.EcritureCompta{
		Type:        req.Type,
		Montant:     req.Montant,
		Reference:   req.Reference,
		Commentaire: req.Commentaire,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "COMPTA_ECRITURE",
		Description:   fmt.Sprintf("%s de %s (%s)", req.Type, req.Montant.StringFixed(2), req.Commentaire),
	})
	return ecritureToResponse(e), nil
}

func (s *comptaService) List(ctx context.Context, filter dto.ComptaFilter) (*dto.EcritureListResponse, error) {
	ecritures, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.EcritureListResponse{
		Data:  make([]dto.EcritureResponse, 0, len(ecritures)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ecritures {
		resp.Data = append(resp.Data, *ecritureToResponse(&ecritures[i]))
	}
	return resp, nil
}

func (s *comptaService) Solde(ctx context.Context) (*dto.SoldeResponse, error) {
	recettes, depenses, err := s.repo.Totaux(ctx, "", "")
	if err != nil {
		return nil, err
	}
	devise := "FCFA"
	if params, perr := s.paramsRepo.Get(ctx); perr == nil {
		devise = params.Devise
	}
	return &dto.SoldeResponse{Solde: recettes.Sub(depenses), Devise: devise}, nil
}

func (s *comptaService) Rapport(ctx context.Context, dateDebut, dateFin string) (*dto.RapportComptaResponse, error) {
	recettes, depenses, err := s.repo.Totaux(ctx, dateDebut, dateFin)
	if err != nil {
		return nil, err
	}
	dernieres, _, err := s.repo.List(ctx, dto.ComptaFilter{
		DateDebut: dateDebut, DateFin: dateFin, Page: 1, Limit: 10,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.RapportComptaResponse{
		TotalRecettes: recettes,
		TotalDepenses: depenses,
		Solde:         recettes.Sub(depenses),
	}
	for i := range dernieres {
		resp.DernieresOps = append(resp.DernieresOps, *ecritureToResponse(&dernieres[i]))
	}
	return resp, nil
}

func ecritureToResponse(e *model.EcritureCompta) *dto.EcritureResponse {
	return &dto.EcritureResponse{
		ID:            e.ID,
		Type:          e.Type,
		Montant:       e.Montant,
		Reference:     e.Reference,
		Commentaire:   e.Commentaire,
		DateOperation: e.DateOperation.Format(dateTimeFormat),
	}
}
