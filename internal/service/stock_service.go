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

type StockService interface {
	Entree(ctx context.Context, acteur Acteur, req dto.EntreeStockRequest) (*dto.MouvementStockResponse, error)
	Sortie(ctx context.Context, acteur Acteur, req dto.SortieStockRequest) (*dto.MouvementStockResponse, error)
	Ajustement(ctx context.Context, acteur Acteur, req dto.AjustementStockRequest) (*dto.MouvementStockResponse, error)
	Mouvements(ctx context.Context, filter dto.MouvementStockFilter) (*dto.MouvementStockListResponse, error)
	Alertes(ctx context.Context) ([]dto.AlerteStockResponse, error)
	Valeur(ctx context.Context) (*dto.ValeurStockResponse, error)

	// AjusterTx is the single entry point every workflow uses to touch stock.
	// It applies the signed delta, refuses to go negative, and appends one
	// movement row with before/after snapshots. Callers own the transaction.
	AjusterTx(tx *gorm.DB, acteur Acteur, produitID uint, typ string, delta int, reference, commentaire string) (*model.MouvementStock, error)
}

type stockService struct {
	produitRepo   repository.ProduitRepository
	mouvementRepo repository.MouvementStockRepository
	journalRepo   repository.JournalRepository
}

func NewStockService(
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementStockRepository,
	journalRepo repository.JournalRepository,
) StockService {
	return &stockService{
		produitRepo:   produitRepo,
		mouvementRepo: mouvementRepo,
		journalRepo:   journalRepo,
	}
}

func (s *stockService) AjusterTx(tx *gorm.DB, acteur Acteur, produitID uint, typ string, delta int, reference, commentaire string) (*model.MouvementStock, error) {
	p, err := s.produitRepo.FindByIDTx(tx, produitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("produit introuvable")
		}
		return nil, err
	}

	avant := p.Stock
	apres := avant + delta
	if apres < 0 {
		return nil, ErrInsufficientStock(fmt.Sprintf(
			"stock insuffisant pour %s: disponible %d, demandé %d", p.Nom, avant, -delta))
	}

	if err := s.produitRepo.UpdateStockTx(tx, produitID, delta); err != nil {
		return nil, err
	}

	mvt := &model.MouvementStock{
		ProduitID:   produitID,
		Type:        typ,
		Quantite:    delta,
		StockAvant:  avant,
		StockApres:  apres,
		Utilisateur: acteur.Username,
		Commentaire: commentaire,
		Reference:   reference,
	}
	if err := s.mouvementRepo.CreateTx(tx, mvt); err != nil {
		return nil, err
	}
	mvt.Produit = p
	return mvt, nil
}

func (s *stockService) Entree(ctx context.Context, acteur Acteur, req dto.EntreeStockRequest) (*dto.MouvementStockResponse, error) {
	return s.mouvementSimple(ctx, acteur, req.ProduitID, model.MouvementEntree, req.Quantite, req.Reference, req.Commentaire)
}

func (s *stockService) Sortie(ctx context.Context, acteur Acteur, req dto.SortieStockRequest) (*dto.MouvementStockResponse, error) {
	return s.mouvementSimple(ctx, acteur, req.ProduitID, model.MouvementSortie, -req.Quantite, req.Reference, req.Commentaire)
}

func (s *stockService) Ajustement(ctx context.Context, acteur Acteur, req dto.AjustementStockRequest) (*dto.MouvementStockResponse, error) {
	if req.NouveauStock == nil || *req.NouveauStock < 0 {
		return nil, ErrInvalidInput("nouveau_stock doit être un entier positif ou nul")
	}

	var mvt *model.MouvementStock
	err := runTx(ctx, s.produitRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.produitRepo.FindByIDTx(tx, req.ProduitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("produit introuvable")
			}
			return err
		}
		delta := *req.NouveauStock - p.Stock
		mvt, err = s.AjusterTx(tx, acteur, req.ProduitID, model.MouvementAjustement, delta, req.Reference, req.Commentaire)
		if err != nil {
			return err
		}
		return s.journalRepo.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "STOCK_AJUSTEMENT",
			Description:   fmt.Sprintf("produit %d: %d -> %d", req.ProduitID, mvt.StockAvant, mvt.StockApres),
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("produit_id", req.ProduitID).
		Int("stock_avant", mvt.StockAvant).Int("stock_apres", mvt.StockApres).
		Str("utilisateur", acteur.Username).Msg("ajustement de stock")
	return mouvementToResponse(mvt), nil
}

func (s *stockService) mouvementSimple(ctx context.Context, acteur Acteur, produitID uint, typ string, delta int, reference, commentaire string) (*dto.MouvementStockResponse, error) {
	var mvt *model.MouvementStock
	err := runTx(ctx, s.produitRepo.DB(), func(tx *gorm.DB) error {
		var err error
		mvt, err = s.AjusterTx(tx, acteur, produitID, typ, delta, reference, commentaire)
		if err != nil {
			return err
		}
		return s.journalRepo.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "STOCK_MVT",
			Description:   fmt.Sprintf("%s produit %d: %+d (%d -> %d)", typ, produitID, delta, mvt.StockAvant, mvt.StockApres),
		})
	})
	if err != nil {
		return nil, err
	}
	return mouvementToResponse(mvt), nil
}

func (s *stockService) Mouvements(ctx context.Context, filter dto.MouvementStockFilter) (*dto.MouvementStockListResponse, error) {
	mouvements, total, err := s.mouvementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.MouvementStockListResponse{
		Data:  make([]dto.MouvementStockResponse, 0, len(mouvements)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range mouvements {
		resp.Data = append(resp.Data, *mouvementToResponse(&mouvements[i]))
	}
	return resp, nil
}

func (s *stockService) Alertes(ctx context.Context) ([]dto.AlerteStockResponse, error) {
	produits, err := s.produitRepo.ListActifs(ctx)
	if err != nil {
		return nil, err
	}
	alertes := make([]dto.AlerteStockResponse, 0)
	for i := range produits {
		p := &produits[i]
		if p.Stock > p.StockAlerte {
			continue
		}
		a := dto.AlerteStockResponse{
			ProduitID:   p.ID,
			Nom:         p.Nom,
			Stock:       p.Stock,
			StockAlerte: p.StockAlerte,
		}
		if p.Fournisseur != nil {
			a.Fournisseur = &p.Fournisseur.Nom
		}
		alertes = append(alertes, a)
	}
	return alertes, nil
}

func (s *stockService) Valeur(ctx context.Context) (*dto.ValeurStockResponse, error) {
	produits, err := s.produitRepo.ListActifs(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.ValeurStockResponse{}
	for i := range produits {
		p := &produits[i]
		qte := int64(p.Stock)
		resp.ValeurAchat = resp.ValeurAchat.Add(p.PrixAchat.Mul(decimalFromInt(qte)))
		resp.ValeurVente = resp.ValeurVente.Add(p.PrixVente.Mul(decimalFromInt(qte)))
		resp.TotalProduits++
		resp.TotalItems += p.Stock
	}
	resp.MargePotentielle = resp.ValeurVente.Sub(resp.ValeurAchat)
	return resp, nil
}

func mouvementToResponse(m *model.MouvementStock) *dto.MouvementStockResponse {
	resp := &dto.MouvementStockResponse{
		ID:          m.ID,
		ProduitID:   m.ProduitID,
		Type:        m.Type,
		Quantite:    m.Quantite,
		StockAvant:  m.StockAvant,
		StockApres:  m.StockApres,
		Utilisateur: m.Utilisateur,
		Commentaire: m.Commentaire,
		Reference:   m.Reference,
		Date:        m.CreatedAt.Format(dateTimeFormat),
	}
	if m.Produit != nil {
		resp.Produit = m.Produit.Nom
	}
	return resp
}
