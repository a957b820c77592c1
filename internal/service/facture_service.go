package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FactureService interface {
	Creer(ctx context.Context, acteur Acteur, req dto.CreerFactureRequest) (*dto.FactureResponse, error)
	Get(ctx context.Context, id uint) (*dto.FactureResponse, error)
	List(ctx context.Context, filter dto.FactureFilter) (*dto.FactureListResponse, error)
	Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserFactureRequest) (*dto.FactureResponse, error)
	Supprimer(ctx context.Context, acteur Acteur, id uint) error
	// NonFacturees lists a subscriber's consumptions awaiting billing.
	NonFacturees(ctx context.Context, abonneID uint) ([]dto.ConsommationResponse, error)
	// PDFPath returns the stored PDF path for download, or not_found when
	// the worker has not produced it yet.
	PDFPath(ctx context.Context, id uint) (string, error)
}

type factureService struct {
	repo       repository.FactureRepository
	consoRepo  repository.ConsommationRepository
	abonneRepo repository.AbonneRepository
	paramsRepo repository.ParametresRepository
	journal    repository.JournalRepository
	dispatcher *worker.Dispatcher
}

func NewFactureService(
	repo repository.FactureRepository,
	consoRepo repository.ConsommationRepository,
	abonneRepo repository.AbonneRepository,
	paramsRepo repository.ParametresRepository,
	journal repository.JournalRepository,
	dispatcher *worker.Dispatcher,
) FactureService {
	return &factureService{
		repo:       repo,
		consoRepo:  consoRepo,
		abonneRepo: abonneRepo,
		paramsRepo: paramsRepo,
		journal:    journal,
		dispatcher: dispatcher,
	}
}

// Creer bills an explicit set of unbilled consumptions onto a fresh facture.
func (s *factureService) Creer(ctx context.Context, acteur Acteur, req dto.CreerFactureRequest) (*dto.FactureResponse, error) {
	abonne, err := s.abonneRepo.FindByID(ctx, req.AbonneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("abonné introuvable")
		}
		return nil, err
	}

	tauxTVA := decimal.NewFromInt(18)
	if params, perr := s.paramsRepo.Get(ctx); perr == nil {
		tauxTVA = params.TauxTVADefaut
	}

	var echeance time.Time
	if req.DateEcheance != "" {
		echeance, err = time.Parse("2006-01-02", req.DateEcheance)
		if err != nil {
			return nil, ErrInvalidInput("date_echeance invalide, format attendu AAAA-MM-JJ")
		}
	} else {
		echeance = time.Now().AddDate(0, 0, 30)
	}

	var facture model.Facture
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		maintenant := time.Now()
		numero, err := s.repo.NextNumero(tx, maintenant)
		if err != nil {
			return err
		}

		facture = model.Facture{
			NumeroFacture: numero,
			AbonneID:      abonne.ID,
			TauxTVA:       tauxTVA,
			Statut:        model.FactureEnAttente,
			DateEmission:  maintenant,
			DateEcheance:  &echeance,
			Note:          req.Note,
		}
		if err := s.repo.CreateTx(tx, &facture); err != nil {
			return err
		}

		montantHT := decimal.Zero
		for _, consoID := range req.ConsommationIDs {
			conso, err := s.consoRepo.FindByIDTx(tx, consoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound(fmt.Sprintf("consommation %d introuvable", consoID))
				}
				return err
			}
			if conso.AbonneID != abonne.ID {
				return ErrInvalidInput(fmt.Sprintf("consommation %d n'appartient pas à l'abonné %s", consoID, abonne.NumeroAbonne))
			}
			if conso.FactureID != nil {
				return ErrStateConflict(fmt.Sprintf("consommation %d est déjà facturée", consoID))
			}
			if err := s.consoRepo.AttacherFactureTx(tx, consoID, facture.ID); err != nil {
				return err
			}
			montantHT = montantHT.Add(conso.MontantTotal)
		}

		facture.MontantHT = montantHT
		facture.MontantTVA = montantHT.Mul(tauxTVA).Div(decimal.NewFromInt(100)).Round(2)
		facture.MontantTTC = facture.MontantHT.Add(facture.MontantTVA)
		if err := s.repo.UpdateTx(tx, &facture); err != nil {
			return err
		}

		return s.journal.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "FACTURE_CREATE",
			Description: fmt.Sprintf("facture %s pour %s: %s TTC",
				numero, abonne.NumeroAbonne, facture.MontantTTC.StringFixed(2)),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.enqueuePDF(ctx, facture.ID)

	log.Info().Str("numero", facture.NumeroFacture).Uint("abonne_id", abonne.ID).
		Str("ttc", facture.MontantTTC.StringFixed(2)).Msg("facture créée")

	return s.Get(ctx, facture.ID)
}

// enqueuePDF dispatches the PDF generation job. Failure to enqueue never
// fails the billing itself.
func (s *factureService) enqueuePDF(ctx context.Context, factureID uint) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueFacturePDF(ctx, worker.FacturePDFPayload{FactureID: factureID}); err != nil {
		log.Warn().Err(err).Uint("facture_id", factureID).Msg("échec de mise en file du PDF")
	}
}

func (s *factureService) Get(ctx context.Context, id uint) (*dto.FactureResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("facture introuvable")
		}
		return nil, err
	}
	return factureToResponse(f), nil
}

func (s *factureService) List(ctx context.Context, filter dto.FactureFilter) (*dto.FactureListResponse, error) {
	factures, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.FactureListResponse{
		Data:  make([]dto.FactureListItem, 0, len(factures)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range factures {
		f := &factures[i]
		item := dto.FactureListItem{
			ID:            f.ID,
			NumeroFacture: f.NumeroFacture,
			AbonneID:      f.AbonneID,
			MontantTTC:    f.MontantTTC,
			Statut:        f.Statut,
			DateEmission:  f.DateEmission.Format(dateFormat),
			DateEcheance:  formatDatePtr(f.DateEcheance),
			MontantPaye:   f.MontantPaye(),
			ResteAPayer:   f.ResteAPayer(),
		}
		if f.Abonne != nil {
			item.Abonne = f.Abonne.NomComplet()
		}
		resp.Data = append(resp.Data, item)
	}
	return resp, nil
}

func (s *factureService) Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserFactureRequest) (*dto.FactureResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("facture introuvable")
		}
		return nil, err
	}

	if req.DateEcheance != nil {
		echeance, err := time.Parse("2006-01-02", *req.DateEcheance)
		if err != nil {
			return nil, ErrInvalidInput("date_echeance invalide, format attendu AAAA-MM-JJ")
		}
		f.DateEcheance = &echeance
	}
	if req.Note != nil {
		f.Note = *req.Note
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, f); err != nil {
			return err
		}
		return s.journal.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "FACTURE_MODIF",
			Description:   fmt.Sprintf("facture %s modifiée", f.NumeroFacture),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return factureToResponse(f), nil
}

// Supprimer removes an unpaid facture and releases its consumptions back to
// the unbilled pool. Any payment on the facture blocks deletion.
func (s *factureService) Supprimer(ctx context.Context, acteur Acteur, id uint) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("facture introuvable")
		}
		return err
	}
	if len(f.Paiements) > 0 {
		return ErrStateConflict(fmt.Sprintf("facture %s a des paiements, suppression impossible", f.NumeroFacture))
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.consoRepo.DetacherFactureTx(tx, f.ID); err != nil {
			return err
		}
		if err := s.repo.DeleteTx(tx, f.ID); err != nil {
			return err
		}
		return s.journal.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "FACTURE_SUPPR",
			Description:   fmt.Sprintf("facture %s supprimée, consommations détachées", f.NumeroFacture),
		})
	})
}

func (s *factureService) NonFacturees(ctx context.Context, abonneID uint) ([]dto.ConsommationResponse, error) {
	if _, err := s.abonneRepo.FindByID(ctx, abonneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("abonné introuvable")
		}
		return nil, err
	}
	consommations, err := s.consoRepo.ListNonFactureesByAbonne(ctx, abonneID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsommationResponse, 0, len(consommations))
	for i := range consommations {
		out = append(out, *consommationToResponse(&consommations[i]))
	}
	return out, nil
}

func (s *factureService) PDFPath(ctx context.Context, id uint) (string, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound("facture introuvable")
		}
		return "", err
	}
	if f.PDFPath == nil || *f.PDFPath == "" {
		return "", ErrNotFound("PDF non encore généré pour la facture " + f.NumeroFacture)
	}
	return *f.PDFPath, nil
}

func factureToResponse(f *model.Facture) *dto.FactureResponse {
	resp := &dto.FactureResponse{
		ID:            f.ID,
		NumeroFacture: f.NumeroFacture,
		AbonneID:      f.AbonneID,
		MontantHT:     f.MontantHT,
		TauxTVA:       f.TauxTVA,
		MontantTVA:    f.MontantTVA,
		MontantTTC:    f.MontantTTC,
		Statut:        f.Statut,
		DateEmission:  f.DateEmission.Format(dateFormat),
		DateEcheance:  formatDatePtr(f.DateEcheance),
		MontantPaye:   f.MontantPaye(),
		ResteAPayer:   f.ResteAPayer(),
		Note:          f.Note,
	}
	if f.Abonne != nil {
		resp.Abonne = f.Abonne.NomComplet()
	}
	if f.PDFPath != nil && *f.PDFPath != "" {
		url := fmt.Sprintf("/v1/factures/%d/pdf", f.ID)
		resp.PDFUrl = &url
	}
	for i := range f.Consommations {
		c := &f.Consommations[i]
		ligne := dto.FactureLigneResponse{
			ID:           c.ID,
			Quantite:     c.Quantite,
			PrixUnitaire: c.PrixUnitaire,
			MontantTotal: c.MontantTotal,
		}
		if c.Produit != nil {
			ligne.Produit = c.Produit.Nom
		}
		resp.Consommations = append(resp.Consommations, ligne)
	}
	for i := range f.Paiements {
		p := &f.Paiements[i]
		resp.Paiements = append(resp.Paiements, dto.FacturePaiementResponse{
			ID:           p.ID,
			Montant:      p.Montant,
			Mode:         p.Mode,
			Reference:    p.Reference,
			DatePaiement: p.DatePaiement.Format(dateTimeFormat),
		})
	}
	return resp
}
