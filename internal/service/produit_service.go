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

type ProduitService interface {
	Creer(ctx context.Context, acteur Acteur, req dto.CreerProduitRequest) (*dto.ProduitResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProduitResponse, error)
	List(ctx context.Context, filter dto.ProduitFilter) (*dto.ProduitListResponse, error)
	Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserProduitRequest) (*dto.ProduitResponse, error)
	Desactiver(ctx context.Context, acteur Acteur, id uint) error
	Reactiver(ctx context.Context, acteur Acteur, id uint) error
}

type produitService struct {
	repo    repository.ProduitRepository
	journal repository.JournalRepository
	stock   StockService
}

func NewProduitService(repo repository.ProduitRepository, journal repository.JournalRepository, stock StockService) ProduitService {
	return &produitService{repo: repo, journal: journal, stock: stock}
}

// Creer registers the product, then records the opening stock through the
// ledger so even the initial quantity has a movement row.
func (s *produitService) Creer(ctx context.Context, acteur Acteur, req dto.CreerProduitRequest) (*dto.ProduitResponse, error) {
	if req.PrixVente.LessThan(req.PrixAchat) {
		return nil, ErrInvalidInput("prix_vente ne peut pas être inférieur au prix_achat")
	}

	produit := &model.Produit{
		Nom:           req.Nom,
		Categorie:     req.Categorie,
		PrixAchat:     req.PrixAchat,
		PrixVente:     req.PrixVente,
		Stock:         0,
		StockAlerte:   req.StockAlerte,
		FournisseurID: req.FournisseurID,
		Actif:         true,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, produit); err != nil {
			return err
		}
		if req.StockInitial > 0 {
			if _, err := s.stock.AjusterTx(tx, acteur, produit.ID, model.MouvementEntree,
				req.StockInitial, "", "stock initial"); err != nil {
				return err
			}
			produit.Stock = req.StockInitial
		}
		return s.journal.AppendTx(tx, &model.JournalLog{
			UtilisateurID: acteur.ID,
			Action:        "PRODUIT_CREATE",
			Description:   fmt.Sprintf("produit %s créé, stock initial %d", produit.Nom, req.StockInitial),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return produitToResponse(produit), nil
}

func (s *produitService) Get(ctx context.Context, id uint) (*dto.ProduitResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("produit introuvable")
		}
		return nil, err
	}
	return produitToResponse(p), nil
}

func (s *produitService) List(ctx context.Context, filter dto.ProduitFilter) (*dto.ProduitListResponse, error) {
	produits, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProduitListResponse{
		Data:  make([]dto.ProduitResponse, 0, len(produits)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range produits {
		resp.Data = append(resp.Data, *produitToResponse(&produits[i]))
	}
	return resp, nil
}

// Actualiser edits catalog fields only. Stock changes go through the stock
// endpoints so every change leaves a movement row.
func (s *produitService) Actualiser(ctx context.Context, acteur Acteur, id uint, req dto.ActualiserProduitRequest) (*dto.ProduitResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("produit introuvable")
		}
		return nil, err
	}

	if req.Nom != nil {
		p.Nom = *req.Nom
	}
	if req.Categorie != nil {
		p.Categorie = *req.Categorie
	}
	if req.PrixAchat != nil {
		if req.PrixAchat.IsNegative() {
			return nil, ErrInvalidInput("prix_achat ne peut pas être négatif")
		}
		p.PrixAchat = *req.PrixAchat
	}
	if req.PrixVente != nil {
		if !req.PrixVente.IsPositive() {
			return nil, ErrInvalidInput("prix_vente doit être strictement positif")
		}
		p.PrixVente = *req.PrixVente
	}
	if req.StockAlerte != nil {
		if *req.StockAlerte < 0 {
			return nil, ErrInvalidInput("stock_alerte ne peut pas être négatif")
		}
		p.StockAlerte = *req.StockAlerte
	}
	if req.FournisseurID != nil {
		p.FournisseurID = req.FournisseurID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "PRODUIT_MODIF",
		Description:   fmt.Sprintf("produit %s modifié", p.Nom),
	})
	return produitToResponse(p), nil
}

func (s *produitService) Desactiver(ctx context.Context, acteur Acteur, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("produit introuvable")
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "PRODUIT_DESACTIVATION",
		Description:   fmt.Sprintf("produit %s désactivé", p.Nom),
	})
	return nil
}

func (s *produitService) Reactiver(ctx context.Context, acteur Acteur, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("produit introuvable")
		}
		return err
	}
	if err := s.repo.Reactiver(ctx, id); err != nil {
		return err
	}
	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: acteur.ID,
		Action:        "PRODUIT_REACTIVATION",
		Description:   fmt.Sprintf("produit %s réactivé", p.Nom),
	})
	return nil
}

func produitToResponse(p *model.Produit) *dto.ProduitResponse {
	resp := &dto.ProduitResponse{
		ID:          p.ID,
		Nom:         p.Nom,
		Categorie:   p.Categorie,
		PrixAchat:   p.PrixAchat,
		PrixVente:   p.PrixVente,
		Stock:       p.Stock,
		StockAlerte: p.StockAlerte,
		Actif:       p.Actif,
		CreatedAt:   p.CreatedAt.Format(dateFormat),
	}
	if p.Fournisseur != nil {
		resp.Fournisseur = &p.Fournisseur.Nom
	}
	return resp
}
