package service

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"
)

type ParametresService interface {
	Get(ctx context.Context) (*dto.ParametresResponse, error)
	Actualiser(ctx context.Context, acteur Acteur, req dto.ActualiserParametresRequest) (*dto.ParametresResponse, error)
}

type parametresService struct {
	repo    repository.ParametresRepository
	journal repository.JournalRepository
}

func NewParametresService(repo repository.ParametresRepository, journal repository.JournalRepository) ParametresService {
	return &parametresService{repo: repo, journal: journal}
}

func (s *parametresService) Get(ctx context.Context) (*dto.ParametresResponse, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return parametresToResponse(p), nil
}

// Actualiser changes shop settings. The TVA rate only affects factures
// opened afterwards.
func (s *parametresService) Actualiser(ctx context.Context, acteur Acteur, req dto.ActualiserParametresRequest) (*dto.ParametresResponse, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.NomCave != nil {
		p.NomCave = *req.NomCave
	}
	if req.Devise != nil {
		p.Devise = *req.Devise
	}
	if req.TauxTVADefaut != nil {
		if req.TauxTVADefaut.IsNegative() {
			return nil, ErrInvalidInput("taux_tva_defaut ne peut pas être négatif")
		}
		p.TauxTVADefaut = *req.TauxTVADefaut
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "PARAMETRES_MODIF",
		Description:   "paramètres de la cave modifiés",
	})
	return parametresToResponse(p), nil
}

func parametresToResponse(p *model.Parametres) *dto.ParametresResponse {
	return &dto.ParametresResponse{
		NomCave:       p.NomCave,
		Devise:        p.Devise,
		TauxTVADefaut: p.TauxTVADefaut,
	}
}
