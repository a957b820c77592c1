package service_test

import (
	"context"
	"testing"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProduitSvc() (service.ProduitService, *stubProduitRepo, *stubMouvementRepo, *stubJournalRepo) {
	produitRepo := newStubProduitRepo()
	mouvementRepo := &stubMouvementRepo{}
	journalRepo := &stubJournalRepo{}
	stockSvc := service.NewStockService(produitRepo, mouvementRepo, journalRepo)
	svc := service.NewProduitService(produitRepo, journalRepo, stockSvc)
	return svc, produitRepo, mouvementRepo, journalRepo
}

func TestCreerProduit_StockInitialTraceParLedger(t *testing.T) {
	svc, _, mouvementRepo, journalRepo := buildProduitSvc()

	resp, err := svc.Creer(context.Background(), testActeur(), dto.CreerProduitRequest{
		Nom:          "Bordeaux 750ml",
		Categorie:    "vin",
		PrixAchat:    decimal.NewFromInt(250),
		PrixVente:    decimal.NewFromInt(500),
		StockInitial: 24,
		StockAlerte:  6,
	})
	require.NoError(t, err)
	assert.Equal(t, 24, resp.Stock)
	assert.True(t, resp.Actif)

	// Opening stock leaves an entree movement, 0 -> 24.
	require.Len(t, mouvementRepo.mouvements, 1)
	mvt := mouvementRepo.mouvements[0]
	assert.Equal(t, model.MouvementEntree, mvt.Type)
	assert.Equal(t, 0, mvt.StockAvant)
	assert.Equal(t, 24, mvt.StockApres)
	assert.Equal(t, "stock initial", mvt.Commentaire)

	require.NotEmpty(t, journalRepo.entrees)
	assert.Equal(t, "PRODUIT_CREATE", journalRepo.entrees[len(journalRepo.entrees)-1].Action)
}

func TestCreerProduit_PrixVenteInferieurAchat(t *testing.T) {
	svc, _, _, _ := buildProduitSvc()

	_, err := svc.Creer(context.Background(), testActeur(), dto.CreerProduitRequest{
		Nom:       "Erreur",
		Categorie: "autre",
		PrixAchat: decimal.NewFromInt(500),
		PrixVente: decimal.NewFromInt(300),
	})
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidInput, service.KindOf(err))
}

func TestActualiserProduit_ChampsCatalogueSeulement(t *testing.T) {
	svc, produitRepo, mouvementRepo, _ := buildProduitSvc()
	p := seedProduit(produitRepo, "Fanta 50cl", 10, 300)

	nouveauPrix := decimal.NewFromInt(350)
	resp, err := svc.Actualiser(context.Background(), testActeur(), p.ID, dto.ActualiserProduitRequest{
		PrixVente: &nouveauPrix,
	})
	require.NoError(t, err)
	assert.Equal(t, "350", resp.PrixVente.String())
	// No stock movement for a catalog edit.
	assert.Equal(t, 10, p.Stock)
	assert.Empty(t, mouvementRepo.mouvements)
}

func TestDesactiverReactiverProduit(t *testing.T) {
	svc, produitRepo, _, _ := buildProduitSvc()
	p := seedProduit(produitRepo, "Ancien vin", 3, 800)

	require.NoError(t, svc.Desactiver(context.Background(), testActeur(), p.ID))
	assert.False(t, p.Actif)

	require.NoError(t, svc.Reactiver(context.Background(), testActeur(), p.ID))
	assert.True(t, p.Actif)
}

func TestGetProduit_Introuvable(t *testing.T) {
	svc, _, _, _ := buildProduitSvc()
	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}
