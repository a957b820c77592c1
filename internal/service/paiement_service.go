package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PaiementService interface {
	Appliquer(ctx context.Context, acteur Acteur, req dto.AppliquerPaiementRequest) (*dto.PaiementResponse, error)
	Get(ctx context.Context, id uint) (*dto.PaiementResponse, error)
	List(ctx context.Context, filter dto.PaiementFilter) (*dto.PaiementListResponse, error)
	Supprimer(ctx context.Context, acteur Acteur, id uint) error
}

type paiementService struct {
	repo        repository.PaiementRepository
	factureRepo repository.FactureRepository
	comptaRepo  repository.ComptaRepository
	journalRepo repository.JournalRepository
}

func NewPaiementService(
	repo repository.PaiementRepository,
	factureRepo repository.FactureRepository,
	comptaRepo repository.ComptaRepository,
	journalRepo repository.JournalRepository,
) PaiementService {
	return &paiementService{
		repo:        repo,
		factureRepo: factureRepo,
		comptaRepo:  comptaRepo,
		journalRepo: journalRepo,
	}
}

// Appliquer settles part or all of a facture, in one transaction:
// montant must be > 0 and at most reste_a_payer (no overpayments, no change
// on account). Creates the payment, rederives the facture status and appends
// a recette to the ledger.
func (s *paiementService) Appliquer(ctx context.Context, acteur Acteur, req dto.AppliquerPaiementRequest) (*dto.PaiementResponse, error) {
	if !req.Montant.IsPositive() {
		return nil, ErrInvalidInput("montant doit être strictement positif")
	}

	var paiement model.Paiement
	var facture *model.Facture

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		facture, err = s.factureRepo.FindByIDTx(tx, req.FactureID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("facture introuvable")
			}
			return err
		}
		if facture.Statut == model.FacturePayee {
			return ErrStateConflict(fmt.Sprintf("facture %s est déjà payée", facture.NumeroFacture))
		}

		dejaPaye, err := s.repo.SumByFactureTx(tx, facture.ID)
		if err != nil {
			return err
		}
		reste := facture.MontantTTC.Sub(dejaPaye)
		if req.Montant.GreaterThan(reste) {
			return ErrOverpayment(fmt.Sprintf(
				"montant %s dépasse le reste à payer %s de la facture %s",
				req.Montant.StringFixed(2), reste.StringFixed(2), facture.NumeroFacture))
		}

		paiement = model.Paiement{
			FactureID: facture.ID,
			Montant:   req.Montant,
			Mode:      req.Mode,
			Reference: req.Reference,
			RecuPar:   acteur.Username,
			Note:      req.Note,
		}
		if err := s.repo.CreateTx(tx, &paiement); err != nil {
			return err
		}

		totalPaye := dejaPaye.Add(req.Montant)
		facture.Statut = model.StatutPour(totalPaye, facture.MontantTTC)
		if err := s.factureRepo.UpdateTx(tx, facture); err != nil {
			return err
		}

		if err := s.comptaRepo.CreateTx(tx, &model.EcritureCompta{
			Type:        model.ComptaRecette,
			Montant:     req.Montant,
			Reference:   facture.NumeroFacture,
			Commentaire: "paiement " + req.Mode,
		}); err != nil {
			return err
		}

		return s.journalRepo.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "PAIEMENT",
			Description: fmt.Sprintf("facture %s: %s en %s, statut %s",
				facture.NumeroFacture, req.Montant.StringFixed(2), req.Mode, facture.Statut),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Uint("paiement_id", paiement.ID).Str("facture", facture.NumeroFacture).
		Str("montant", req.Montant.StringFixed(2)).Str("statut", facture.Statut).
		Msg("paiement appliqué")

	paiement.Facture = facture
	resp := paiementToResponse(&paiement)
	resp.FactureStatut = facture.Statut
	resp.ResteAPayer = facture.MontantTTC.Sub(facture.MontantPaye()).Sub(paiement.Montant)
	return resp, nil
}

func (s *paiementService) Get(ctx context.Context, id uint) (*dto.PaiementResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("paiement introuvable")
		}
		return nil, err
	}
	return paiementToResponse(p), nil
}

func (s *paiementService) List(ctx context.Context, filter dto.PaiementFilter) (*dto.PaiementListResponse, error) {
	paiements, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PaiementListResponse{
		Data:  make([]dto.PaiementResponse, 0, len(paiements)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range paiements {
		resp.Data = append(resp.Data, *paiementToResponse(&paiements[i]))
	}
	return resp, nil
}

// Supprimer cancels a payment and rederives the facture status. It never
// touches stock or consumptions, and appends a compensating depense so the
// ledger stays append-only.
func (s *paiementService) Supprimer(ctx context.Context, acteur Acteur, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("paiement introuvable")
		}
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		facture, err := s.factureRepo.FindByIDTx(tx, p.FactureID)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteTx(tx, p.ID); err != nil {
			return err
		}
		restant, err := s.repo.SumByFactureTx(tx, facture.ID)
		if err != nil {
			return err
		}
		facture.Statut = model.StatutPour(restant, facture.MontantTTC)
		if err := s.factureRepo.UpdateTx(tx, facture); err != nil {
			return err
		}
		if err := s.comptaRepo.CreateTx(tx, &model.EcritureCompta{
			Type:        model.ComptaDepense,
			Montant:     p.Montant,
			Reference:   facture.NumeroFacture,
			Commentaire: "annulation de paiement",
		}); err != nil {
			return err
		}
		return s.journalRepo.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "PAIEMENT_ANNULATION",
			Description: fmt.Sprintf("paiement %d annulé sur facture %s, statut %s",
				p.ID, facture.NumeroFacture, facture.Statut),
		})
	})
}

func paiementToResponse(p *model.Paiement) *dto.PaiementResponse {
	resp := &dto.PaiementResponse{
		ID:           p.ID,
		FactureID:    p.FactureID,
		Montant:      p.Montant,
		Mode:         p.Mode,
		Reference:    p.Reference,
		RecuPar:      p.RecuPar,
		Note:         p.Note,
		DatePaiement: p.DatePaiement.Format(dateTimeFormat),
	}
	if p.Facture != nil {
		resp.FactureNumero = p.Facture.NumeroFacture
		resp.FactureStatut = p.Facture.Statut
		if p.Facture.Abonne != nil {
			resp.Abonne = p.Facture.Abonne.NomComplet()
		}
	}
	return resp
}
