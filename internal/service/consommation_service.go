package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ConsommationService interface {
	Enregistrer(ctx context.Context, acteur Acteur, req dto.EnregistrerConsommationRequest) (*dto.ConsommationResponse, error)
	Get(ctx context.Context, id uint) (*dto.ConsommationResponse, error)
	List(ctx context.Context, filter dto.ConsommationFilter) (*dto.ConsommationListResponse, error)
	Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserConsommationRequest) (*dto.ConsommationResponse, error)
	Supprimer(ctx context.Context, acteur Acteur, id uint) error
	Stats(ctx context.Context, dateDebut, dateFin string) (*dto.StatsConsommationsResponse, error)
}

type consommationService struct {
	repo           repository.ConsommationRepository
	abonneRepo     repository.AbonneRepository
	produitRepo    repository.ProduitRepository
	factureRepo    repository.FactureRepository
	parametresRepo repository.ParametresRepository
	journalRepo    repository.JournalRepository
	stock          StockService
}

func NewConsommationService(
	repo repository.ConsommationRepository,
	abonneRepo repository.AbonneRepository,
	produitRepo repository.ProduitRepository,
	factureRepo repository.FactureRepository,
	parametresRepo repository.ParametresRepository,
	journalRepo repository.JournalRepository,
	stock StockService,
) ConsommationService {
	return &consommationService{
		repo:           repo,
		abonneRepo:     abonneRepo,
		produitRepo:    produitRepo,
		factureRepo:    factureRepo,
		parametresRepo: parametresRepo,
		journalRepo:    journalRepo,
		stock:          stock,
	}
}

// Enregistrer records a sale on account, in one transaction:
//  1. validate abonné actif, produit actif, quantité > 0
//  2. check stock
//  3. freeze the unit price at the product's current prix_vente
//  4. create the consumption row
//  5. exit stock through the ledger (one sortie movement)
//  6. attach to the subscriber's open facture, or open a new one
//  7. recompute the facture's ht/tva/ttc
func (s *consommationService) Enregistrer(ctx context.Context, acteur Acteur, req dto.EnregistrerConsommationRequest) (*dto.ConsommationResponse, error) {
	if req.Quantite <= 0 {
		return nil, ErrInvalidInput("quantite doit être strictement positive")
	}

	abonne, err := s.abonneRepo.FindByID(ctx, req.AbonneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("abonné introuvable")
		}
		return nil, err
	}
	if !abonne.Actif {
		return nil, ErrStateConflict(fmt.Sprintf("abonné %s est inactif", abonne.NumeroAbonne))
	}

	var conso model.Consommation
	var facture *model.Facture
	var stockRestant int

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		produit, err := s.produitRepo.FindByIDTx(tx, req.ProduitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("produit introuvable")
			}
			return err
		}
		if !produit.Actif {
			return ErrStateConflict(fmt.Sprintf("produit %s est inactif", produit.Nom))
		}

		prixUnitaire := produit.PrixVente
		if req.PrixUnitaire != nil {
			prixUnitaire = *req.PrixUnitaire
		}
		montantTotal := prixUnitaire.Mul(decimal.NewFromInt(int64(req.Quantite)))

		facture, err = s.factureOuverteOuNouvelle(ctx, tx, abonne.ID)
		if err != nil {
			return err
		}

		conso = model.Consommation{
			AbonneID:     abonne.ID,
			ProduitID:    produit.ID,
			Quantite:     req.Quantite,
			PrixUnitaire: prixUnitaire,
			MontantTotal: montantTotal,
			Note:         req.Note,
			FactureID:    &facture.ID,
		}
		if err := s.repo.CreateTx(tx, &conso); err != nil {
			return err
		}

		mvt, err := s.stock.AjusterTx(tx, acteur, produit.ID, model.MouvementSortie,
			-req.Quantite, facture.NumeroFacture, "vente abonné "+abonne.NumeroAbonne)
		if err != nil {
			return err
		}
		stockRestant = mvt.StockApres

		if err := s.recalculerFactureTx(tx, facture, montantTotal); err != nil {
			return err
		}

		conso.Abonne = abonne
		conso.Produit = mvt.Produit
		conso.Facture = facture

		return s.journalRepo.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "VENTE",
			Description: fmt.Sprintf("abonné %s: %d x %s = %s",
				abonne.NumeroAbonne, req.Quantite, mvt.Produit.Nom, montantTotal.StringFixed(2)),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Uint("consommation_id", conso.ID).Str("facture", facture.NumeroFacture).
		Str("abonne", abonne.NumeroAbonne).Int("stock_restant", stockRestant).
		Msg("consommation enregistrée")

	resp := consommationToResponse(&conso)
	resp.StockRestant = &stockRestant
	return resp, nil
}

// factureOuverteOuNouvelle returns the subscriber's most recent en_attente
// facture without payments, or opens a fresh one.
func (s *consommationService) factureOuverteOuNouvelle(ctx context.Context, tx *gorm.DB, abonneID uint) (*model.Facture, error) {
	f, err := s.factureRepo.FindOuverteByAbonneTx(tx, abonneID)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tauxTVA := decimal.NewFromInt(18)
	if params, perr := s.parametresRepo.Get(ctx); perr == nil {
		tauxTVA = params.TauxTVADefaut
	}

	maintenant := time.Now()
	numero, err := s.factureRepo.NextNumero(tx, maintenant)
	if err != nil {
		return nil, err
	}
	echeance := maintenant.AddDate(0, 0, 30)
	facture := &model.Facture{
		NumeroFacture: numero,
		AbonneID:      abonneID,
		TauxTVA:       tauxTVA,
		Statut:        model.FactureEnAttente,
		DateEmission:  maintenant,
		DateEcheance:  &echeance,
	}
	if err := s.factureRepo.CreateTx(tx, facture); err != nil {
		return nil, err
	}
	return facture, nil
}

// recalculerFactureTx adds deltaHT to the facture and rederives tva/ttc.
func (s *consommationService) recalculerFactureTx(tx *gorm.DB, f *model.Facture, deltaHT decimal.Decimal) error {
	f.MontantHT = f.MontantHT.Add(deltaHT)
	f.MontantTVA = f.MontantHT.Mul(f.TauxTVA).Div(decimal.NewFromInt(100)).Round(2)
	f.MontantTTC = f.MontantHT.Add(f.MontantTVA)
	return s.factureRepo.UpdateTx(tx, f)
}

func (s *consommationService) Get(ctx context.Context, id uint) (*dto.ConsommationResponse, error) {
	conso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("consommation introuvable")
		}
		return nil, err
	}
	return consommationToResponse(conso), nil
}

func (s *consommationService) List(ctx context.Context, filter dto.ConsommationFilter) (*dto.ConsommationListResponse, error) {
	consommations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ConsommationListResponse{
		Data:  make([]dto.ConsommationResponse, 0, len(consommations)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range consommations {
		resp.Data = append(resp.Data, *consommationToResponse(&consommations[i]))
	}
	return resp, nil
}

// Actualiser edits quantity or note. A quantity change adjusts stock by the
// difference and rebalances the linked facture. The frozen unit price never
// moves.
func (s *consommationService) Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserConsommationRequest) (*dto.ConsommationResponse, error) {
	conso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("consommation introuvable")
		}
		return nil, err
	}
	if conso.Facture != nil && conso.Facture.Statut != model.FactureEnAttente {
		return nil, ErrStateConflict("consommation déjà facturée avec paiements, modification impossible")
	}
	if req.Quantite != nil && *req.Quantite <= 0 {
		return nil, ErrInvalidInput("quantite doit être strictement positive")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.Quantite != nil && *req.Quantite != conso.Quantite {
			// Positive deltaQte means more items sold, so more stock leaves.
			deltaQte := *req.Quantite - conso.Quantite
			if _, err := s.stock.AjusterTx(tx, acteur, conso.ProduitID, model.MouvementAjustement,
				-deltaQte, fmt.Sprintf("CONSO-%d", conso.ID), "correction de consommation"); err != nil {
				return err
			}

			ancienMontant := conso.MontantTotal
			conso.Quantite = *req.Quantite
			conso.MontantTotal = conso.PrixUnitaire.Mul(decimal.NewFromInt(int64(*req.Quantite)))

			if conso.FactureID != nil {
				f, err := s.factureRepo.FindByIDTx(tx, *conso.FactureID)
				if err != nil {
					return err
				}
				if err := s.recalculerFactureTx(tx, f, conso.MontantTotal.Sub(ancienMontant)); err != nil {
					return err
				}
			}
		}
		if req.Note != nil {
			conso.Note = *req.Note
		}
		if err := s.repo.UpdateTx(tx, conso); err != nil {
			return err
		}
		return s.journalRepo.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "CONSO_MODIF",
			Description:   fmt.Sprintf("consommation %d modifiée", conso.ID),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return consommationToResponse(conso), nil
}

// Supprimer cancels a sale and returns the goods to stock. Refused once the
// facture carries payments.
func (s *consommationService) Supprimer(ctx context.Context, acteur Acteur, id uint) error {
	conso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("consommation introuvable")
		}
		return err
	}
	if conso.Facture != nil && conso.Facture.Statut != model.FactureEnAttente {
		return ErrStateConflict("consommation liée à une facture payée, suppression impossible")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.stock.AjusterTx(tx, acteur, conso.ProduitID, model.MouvementEntree,
			conso.Quantite, fmt.Sprintf("CONSO-%d", conso.ID), "annulation de consommation"); err != nil {
			return err
		}
		if conso.FactureID != nil {
			f, err := s.factureRepo.FindByIDTx(tx, *conso.FactureID)
			if err != nil {
				return err
			}
			if err := s.recalculerFactureTx(tx, f, conso.MontantTotal.Neg()); err != nil {
				return err
			}
		}
		if err := s.repo.DeleteTx(tx, conso.ID); err != nil {
			return err
		}
		return s.journalRepo.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "CONSO_ANNULATION",
			Description:   fmt.Sprintf("consommation %d annulée, stock restauré (+%d)", conso.ID, conso.Quantite),
		})
	})
}

func (s *consommationService) Stats(ctx context.Context, dateDebut, dateFin string) (*dto.StatsConsommationsResponse, error) {
	consommations, err := s.repo.ListPeriode(ctx, dateDebut, dateFin)
	if err != nil {
		return nil, err
	}

	resp := &dto.StatsConsommationsResponse{MontantTotalVentes: decimal.Zero}
	parProduit := make(map[uint]*dto.TopProduit)
	for i := range consommations {
		c := &consommations[i]
		resp.TotalConsommations++
		resp.TotalItemsVendus += int64(c.Quantite)
		resp.MontantTotalVentes = resp.MontantTotalVentes.Add(c.MontantTotal)

		tp, ok := parProduit[c.ProduitID]
		if !ok {
			tp = &dto.TopProduit{ProduitID: c.ProduitID}
			if c.Produit != nil {
				tp.Nom = c.Produit.Nom
			}
			parProduit[c.ProduitID] = tp
		}
		tp.Quantite += c.Quantite
		tp.Montant = tp.Montant.Add(c.MontantTotal)
	}

	for _, tp := range parProduit {
		resp.TopProduits = append(resp.TopProduits, *tp)
	}
	// Highest quantity first, top 10.
	for i := 0; i < len(resp.TopProduits); i++ {
		for j := i + 1; j < len(resp.TopProduits); j++ {
			if resp.TopProduits[j].Quantite > resp.TopProduits[i].Quantite {
				resp.TopProduits[i], resp.TopProduits[j] = resp.TopProduits[j], resp.TopProduits[i]
			}
		}
	}
	if len(resp.TopProduits) > 10 {
		resp.TopProduits = resp.TopProduits[:10]
	}
	return resp, nil
}

func consommationToResponse(c *model.Consommation) *dto.ConsommationResponse {
	resp := &dto.ConsommationResponse{
		ID:           c.ID,
		AbonneID:     c.AbonneID,
		ProduitID:    c.ProduitID,
		Quantite:     c.Quantite,
		PrixUnitaire: c.PrixUnitaire,
		MontantTotal: c.MontantTotal,
		Note:         c.Note,
		FactureID:    c.FactureID,
		Date:         c.Date.Format(dateTimeFormat),
	}
	if c.Abonne != nil {
		resp.Abonne = c.Abonne.NomComplet()
	}
	if c.Produit != nil {
		resp.Produit = c.Produit.Nom
	}
	if c.Facture != nil {
		resp.FactureNumero = &c.Facture.NumeroFacture
	}
	return resp
}
